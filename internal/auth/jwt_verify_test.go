package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testIssuer = "https://idp.hospital.test/realms/hospital"

// staticKeys is a KeySource backed by a fixed map.
type staticKeys map[string]*rsa.PublicKey

func (s staticKeys) Get(kid string) (*rsa.PublicKey, error) {
	if k, ok := s[kid]; ok {
		return k, nil
	}
	return nil, errors.New("key not found")
}

func generateTestKeyPair(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}
	return privateKey, &privateKey.PublicKey
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	s, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return s
}

func validClaims(roles ...interface{}) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": "user-123",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
		"realm_access": map[string]interface{}{
			"roles": roles,
		},
	}
}

func TestVerifier_ParseAndVerifyToken_Success(t *testing.T) {
	priv, pub := generateTestKeyPair(t)
	v := NewVerifier(Config{Issuer: testIssuer}, staticKeys{"k1": pub})

	principal, err := v.ParseAndVerifyToken(signToken(t, priv, "k1", validClaims("ADMIN", "DOCTOR")))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if principal.UserID != "user-123" {
		t.Errorf("Expected UserID 'user-123', got '%s'", principal.UserID)
	}
	if len(principal.Roles) != 2 || principal.Roles[0] != "ADMIN" {
		t.Errorf("Unexpected roles: %v", principal.Roles)
	}
}

func TestVerifier_ParseAndVerifyToken_Failures(t *testing.T) {
	priv, pub := generateTestKeyPair(t)
	otherPriv, _ := generateTestKeyPair(t)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	wrongIssuer := validClaims()
	wrongIssuer["iss"] = "https://evil.test"

	noSub := validClaims()
	delete(noSub, "sub")

	wrongAud := validClaims()
	wrongAud["aud"] = "billing"

	tests := []struct {
		name     string
		token    string
		audience string
		want     error
	}{
		{"empty", "", "", ErrNoToken},
		{"whitespace", "   ", "", ErrNoToken},
		{"garbage", "not.a.jwt", "", ErrInvalidToken},
		{"missing kid", signToken(t, priv, "", validClaims()), "", ErrInvalidToken},
		{"unknown kid", signToken(t, priv, "k2", validClaims()), "", ErrInvalidToken},
		{"wrong signature", signToken(t, otherPriv, "k1", validClaims()), "", ErrInvalidToken},
		{"expired", signToken(t, priv, "k1", expired), "", ErrInvalidToken},
		{"wrong issuer", signToken(t, priv, "k1", wrongIssuer), "", ErrInvalidIssuer},
		{"missing sub", signToken(t, priv, "k1", noSub), "", ErrMissingSub},
		{"wrong audience", signToken(t, priv, "k1", wrongAud), "hospital-console", ErrInvalidAudience},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(Config{Issuer: testIssuer, Audience: tt.audience}, staticKeys{"k1": pub})
			principal, err := v.ParseAndVerifyToken(tt.token)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if principal != nil {
				t.Errorf("Expected nil principal, got %+v", principal)
			}
		})
	}
}

func TestVerifier_Audience(t *testing.T) {
	priv, pub := generateTestKeyPair(t)
	claims := validClaims()
	claims["aud"] = []interface{}{"account", "hospital-console"}

	v := NewVerifier(Config{Issuer: testIssuer, Audience: "hospital-console"}, staticKeys{"k1": pub})
	if _, err := v.ParseAndVerifyToken(signToken(t, priv, "k1", claims)); err != nil {
		t.Errorf("Expected audience to match, got %v", err)
	}
}

func TestVerifier_ClientRoles(t *testing.T) {
	priv, pub := generateTestKeyPair(t)
	claims := validClaims()
	claims["aud"] = "hospital-console"
	claims["realm_access"] = map[string]interface{}{"roles": []interface{}{"offline_access"}}
	claims["resource_access"] = map[string]interface{}{
		"hospital-console": map[string]interface{}{"roles": []interface{}{"RECEPTIONIST", 7}},
		"other-client":     map[string]interface{}{"roles": []interface{}{"ADMIN"}},
	}

	v := NewVerifier(Config{Issuer: testIssuer, Audience: "hospital-console"}, staticKeys{"k1": pub})
	pr, err := v.ParseAndVerifyToken(signToken(t, priv, "k1", claims))
	if err != nil {
		t.Fatalf("Expected valid token, got %v", err)
	}
	if len(pr.Roles) != 2 || pr.Roles[0] != "offline_access" || pr.Roles[1] != "RECEPTIONIST" {
		t.Errorf("Expected realm then audience client roles, got %v", pr.Roles)
	}
}

func TestVerifier_RejectsHMAC(t *testing.T) {
	_, pub := generateTestKeyPair(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
	token.Header["kid"] = "k1"
	s, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	v := NewVerifier(Config{Issuer: testIssuer}, staticKeys{"k1": pub})
	if _, err := v.ParseAndVerifyToken(s); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}
