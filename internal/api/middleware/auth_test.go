package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestKey(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubDER,
	})
	return key, string(pubPEM)
}

func signTestToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAuthenticateAPIKey(t *testing.T) {
	cfg := AuthConfig{APIKeys: []string{"valid-key"}}

	result := Authenticate("APIKey valid-key", cfg)
	assert.True(t, result.Success)
	assert.Equal(t, "apikey", result.AuthType)

	result = Authenticate("APIKey wrong-key", cfg)
	assert.False(t, result.Success)
}

func TestAuthenticateJWT(t *testing.T) {
	key, pubPEM := generateTestKey(t)
	cfg := AuthConfig{JWTPublicKey: pubPEM}

	token := signTestToken(t, key, jwt.RegisteredClaims{
		Subject:   "operator-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	result := Authenticate("Bearer "+token, cfg)
	assert.True(t, result.Success)
	assert.Equal(t, "jwt", result.AuthType)
	assert.Equal(t, "operator-1", result.AuthSubject)
}

func TestAuthenticateExpiredJWT(t *testing.T) {
	key, pubPEM := generateTestKey(t)
	cfg := AuthConfig{JWTPublicKey: pubPEM}

	token := signTestToken(t, key, jwt.RegisteredClaims{
		Subject:   "operator-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	result := Authenticate("Bearer "+token, cfg)
	assert.False(t, result.Success)
}

func TestAuthenticateWrongKeyJWT(t *testing.T) {
	key, _ := generateTestKey(t)
	_, otherPubPEM := generateTestKey(t)
	cfg := AuthConfig{JWTPublicKey: otherPubPEM}

	token := signTestToken(t, key, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	result := Authenticate("Bearer "+token, cfg)
	assert.False(t, result.Success)
}

func TestAuthenticateMalformedHeaders(t *testing.T) {
	cfg := AuthConfig{APIKeys: []string{"valid-key"}}

	assert.False(t, Authenticate("", cfg).Success)
	assert.False(t, Authenticate("valid-key", cfg).Success)
	assert.False(t, Authenticate("Basic dXNlcjpwYXNz", cfg).Success)
	assert.False(t, Authenticate("Bearer sometoken", AuthConfig{}).Success)
}
