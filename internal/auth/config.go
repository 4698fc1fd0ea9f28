package auth

// Config holds the token verification settings. When Audience is set the
// client roles granted under resource_access.<Audience> count alongside
// realm roles.
type Config struct {
	Issuer   string
	Audience string
}
