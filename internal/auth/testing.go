package auth

import "context"

// ContextWithPrincipal stores an authenticated principal the way Middleware
// does, for handler tests that bypass token parsing.
func ContextWithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// ContextWithActor stores an acting user id, as the Actor middleware would.
func ContextWithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}
