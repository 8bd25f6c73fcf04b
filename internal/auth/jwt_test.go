package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-with-enough-length!!"

func newTestResolver(t *testing.T) *JWTResolver {
	t.Helper()
	r, err := NewJWTResolver(JWTConfig{Secret: testSecret})
	require.NoError(t, err)
	return r
}

func bearerRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/courts", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestResolve_BearerToken(t *testing.T) {
	resolver := newTestResolver(t)
	token, err := IssueDevToken(testSecret, "user_2abc", time.Hour)
	require.NoError(t, err)

	sub, err := resolver.Resolve(bearerRequest(token))
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", sub)
}

func TestResolve_SessionCookie(t *testing.T) {
	resolver := newTestResolver(t)
	token, err := IssueDevToken(testSecret, "user_cookie", time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})

	sub, err := resolver.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "user_cookie", sub)
}

func TestResolve_NoIdentity(t *testing.T) {
	resolver := newTestResolver(t)
	expired, err := IssueDevToken(testSecret, "user_1", -time.Minute)
	require.NoError(t, err)
	foreign, err := IssueDevToken("another-secret-another-secret-xx", "user_1", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"no credentials", httptest.NewRequest(http.MethodGet, "/", nil)},
		{"garbage token", bearerRequest("not-a-jwt")},
		{"expired token", bearerRequest(expired)},
		{"wrong secret", bearerRequest(foreign)},
		{"non-bearer scheme", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			return r
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := resolver.Resolve(tt.req)
			assert.Empty(t, sub)
			assert.True(t, errors.Is(err, ErrNoIdentity), "got %v", err)
		})
	}
}

func TestResolve_RejectsMissingExpiry(t *testing.T) {
	resolver := newTestResolver(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_1"},
	})
	raw, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = resolver.Resolve(bearerRequest(raw))
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestResolve_RS256WithIssuerAndParty(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	// Env vars often carry PEMs with escaped newlines.
	resolver, err := NewJWTResolver(JWTConfig{
		PublicKeyPEM:      strings.ReplaceAll(pemKey, "\n", `\n`),
		Issuer:            "https://clerk.courtside.test",
		AuthorizedParties: []string{"https://courtside.test"},
	})
	require.NoError(t, err)

	sign := func(iss, azp string) string {
		claims := Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user_rs",
				Issuer:    iss,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			AuthorizedParty: azp,
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
		require.NoError(t, err)
		return raw
	}

	sub, err := resolver.Resolve(bearerRequest(sign("https://clerk.courtside.test", "https://courtside.test")))
	require.NoError(t, err)
	assert.Equal(t, "user_rs", sub)

	_, err = resolver.Resolve(bearerRequest(sign("https://evil.test", "https://courtside.test")))
	assert.ErrorIs(t, err, ErrNoIdentity)

	_, err = resolver.Resolve(bearerRequest(sign("https://clerk.courtside.test", "https://evil.test")))
	assert.ErrorIs(t, err, ErrNoIdentity)

	// An HS256 token must not verify against an RS256 resolver.
	hs, err := IssueDevToken(testSecret, "user_rs", time.Hour)
	require.NoError(t, err)
	_, err = resolver.Resolve(bearerRequest(hs))
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestNewJWTResolver_Errors(t *testing.T) {
	_, err := NewJWTResolver(JWTConfig{})
	assert.EqualError(t, err, "no jwt verification key configured")

	_, err = NewJWTResolver(JWTConfig{PublicKeyPEM: "not a pem"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse jwt public key")
}
