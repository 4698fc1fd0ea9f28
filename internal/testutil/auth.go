package testutil

import (
	"crypto/rsa"
	"errors"
	"testing"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/auth"
)

// StaticKeys is an auth.KeySource over a fixed key set.
type StaticKeys map[string]*rsa.PublicKey

func (s StaticKeys) Get(kid string) (*rsa.PublicKey, error) {
	if k, ok := s[kid]; ok {
		return k, nil
	}
	return nil, errors.New("jwks: key not found")
}

// CreateTestVerifier returns a verifier that accepts tokens from
// GenerateTestJWT, and the private key to sign them with.
func CreateTestVerifier(t *testing.T) (*auth.Verifier, *rsa.PrivateKey) {
	t.Helper()

	privateKey, publicKey := GenerateTestKeyPair(t)
	verifier := auth.NewVerifier(auth.Config{Issuer: TestIssuer}, StaticKeys{TestKeyID: publicKey})
	return verifier, privateKey
}
