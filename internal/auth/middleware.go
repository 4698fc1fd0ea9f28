package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/envelope"
)

type ctxKey string

const (
	principalKey ctxKey = "auth_principal"
	actorKey     ctxKey = "auth_actor"
)

const (
	// HeaderActor carries the acting user id on every backend call.
	HeaderActor = "X-User-Id"
	// SystemActor is used when no acting user is supplied.
	SystemActor = "SYSTEM"
)

var tracer = otel.Tracer("github.com/WailSalutem-Health-Care/hospital-console/auth")

// MetricsRecorder interface for recording auth metrics
type MetricsRecorder interface {
	RecordAuthFailure(ctx context.Context, reason string)
}

// NormalizeActor trims the header value and falls back to SystemActor.
func NormalizeActor(raw string) string {
	if a := strings.TrimSpace(raw); a != "" {
		return a
	}
	return SystemActor
}

// Actor stores the X-User-Id header (or SYSTEM) in the request context.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), actorKey, NormalizeActor(r.Header.Get(HeaderActor)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the authenticated subject when present, then the
// X-User-Id value, then SYSTEM.
func ActorFromContext(ctx context.Context) string {
	if pr, ok := FromContext(ctx); ok && pr.UserID != "" {
		return pr.UserID
	}
	if a, ok := ctx.Value(actorKey).(string); ok && a != "" {
		return a
	}
	return SystemActor
}

// Middleware validates the bearer token and injects the Principal into the
// request context. metrics may be nil.
func Middleware(ver *Verifier, metrics MetricsRecorder, logger zerolog.Logger) func(http.Handler) http.Handler {
	fail := func(ctx context.Context, w http.ResponseWriter, span trace.Span, reason, msg string) {
		span.SetStatus(codes.Error, msg)
		span.SetAttributes(attribute.String("error.type", reason))
		if metrics != nil {
			metrics.RecordAuthFailure(ctx, reason)
		}
		envelope.Fail(w, http.StatusUnauthorized, msg, nil)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), "auth.Middleware",
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			authz := r.Header.Get("Authorization")
			if authz == "" {
				fail(ctx, w, span, "missing_authorization", "missing authorization")
				return
			}

			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				fail(ctx, w, span, "invalid_header_format", "invalid authorization header")
				return
			}

			pr, err := ver.ParseAndVerifyToken(parts[1])
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("token validation failed")
				span.SetAttributes(attribute.String("error.message", err.Error()))
				fail(ctx, w, span, "invalid_token", "invalid token")
				return
			}

			span.SetAttributes(
				attribute.String("user.id", pr.UserID),
				attribute.StringSlice("user.roles", pr.Roles),
			)
			span.SetStatus(codes.Ok, "authentication successful")

			ctx = context.WithValue(ctx, principalKey, pr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PermissionMetricsRecorder interface for recording permission check metrics
type PermissionMetricsRecorder interface {
	RecordPermissionCheck(ctx context.Context, permission string, durationMs float64, allowed bool)
}

// RequirePermission returns middleware that ensures the principal has permission.
// metrics may be nil.
func RequirePermission(per string, perms Permissions, metrics PermissionMetricsRecorder, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx, span := tracer.Start(r.Context(), "auth.RequirePermission",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attribute.String("permission.required", per)),
			)
			defer span.End()

			pr, ok := FromContext(ctx)
			if !ok {
				span.SetStatus(codes.Error, "unauthenticated")
				if metrics != nil {
					metrics.RecordPermissionCheck(ctx, per, float64(time.Since(start).Milliseconds()), false)
				}
				envelope.Fail(w, http.StatusUnauthorized, "unauthenticated", nil)
				return
			}

			allowed := HasPermission(pr, per, perms)
			span.SetAttributes(
				attribute.Bool("permission.allowed", allowed),
				attribute.String("user.id", pr.UserID),
				attribute.StringSlice("user.roles", pr.Roles),
			)
			if metrics != nil {
				metrics.RecordPermissionCheck(ctx, per, float64(time.Since(start).Milliseconds()), allowed)
			}

			if !allowed {
				logger.Warn().
					Str("user_id", pr.UserID).
					Strs("roles", pr.Roles).
					Str("permission", per).
					Msg("permission denied")
				span.SetStatus(codes.Error, "forbidden")
				envelope.Fail(w, http.StatusForbidden, "forbidden", nil)
				return
			}

			span.SetStatus(codes.Ok, "permission granted")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext extracts Principal from context.
func FromContext(ctx context.Context) (*Principal, bool) {
	pr, ok := ctx.Value(principalKey).(*Principal)
	return pr, ok
}

// HasPermission reports whether any of the principal's roles grants
// permission, either directly or through resource:*. Roles compare
// case-insensitively, so a realm role "doctor" matches DOCTOR.
func HasPermission(pr *Principal, permission string, perms Permissions) bool {
	resource, _, _ := strings.Cut(permission, ":")
	for _, role := range pr.Roles {
		for _, p := range perms[strings.ToUpper(role)] {
			if p == permission || p == resource+":*" {
				return true
			}
		}
	}
	return false
}
