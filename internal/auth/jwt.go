package auth

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the cookie the hosted auth provider sets for same-site
// browser requests.
const SessionCookie = "__session"

// Claims holds the session token claims this service reads.
type Claims struct {
	jwt.RegisteredClaims
	SessionID       string `json:"sid,omitempty"`
	AuthorizedParty string `json:"azp,omitempty"`
}

// JWTConfig selects how session tokens are verified. PublicKeyPEM (RS256)
// takes precedence over Secret (HS256).
type JWTConfig struct {
	PublicKeyPEM      string
	Secret            string
	Issuer            string
	AuthorizedParties []string
	Leeway            time.Duration
}

// JWTResolver resolves the subject of a session token carried in the
// Authorization header or the session cookie.
type JWTResolver struct {
	key     interface{}
	method  string
	issuer  string
	parties []string
	leeway  time.Duration
}

// NewJWTResolver builds a resolver from cfg. It fails when no verification
// key is configured or the PEM cannot be parsed.
func NewJWTResolver(cfg JWTConfig) (*JWTResolver, error) {
	r := &JWTResolver{
		issuer:  cfg.Issuer,
		parties: cfg.AuthorizedParties,
		leeway:  cfg.Leeway,
	}

	switch {
	case cfg.PublicKeyPEM != "":
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(normalizePEM(cfg.PublicKeyPEM)))
		if err != nil {
			return nil, fmt.Errorf("parse jwt public key: %w", err)
		}
		r.key = pub
		r.method = jwt.SigningMethodRS256.Alg()
	case cfg.Secret != "":
		r.key = []byte(cfg.Secret)
		r.method = jwt.SigningMethodHS256.Alg()
	default:
		return nil, errors.New("no jwt verification key configured")
	}

	return r, nil
}

// Resolve implements IdentityResolver. Missing, malformed, expired or
// foreign tokens all resolve to ErrNoIdentity.
func (r *JWTResolver) Resolve(req *http.Request) (string, error) {
	raw := tokenFromRequest(req)
	if raw == "" {
		return "", ErrNoIdentity
	}

	claims, err := r.validate(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}
	return claims.Subject, nil
}

func (r *JWTResolver) validate(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{r.method}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(r.leeway),
	}
	if r.issuer != "" {
		opts = append(opts, jwt.WithIssuer(r.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return r.key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	if claims.AuthorizedParty != "" && len(r.parties) > 0 && !slices.Contains(r.parties, claims.AuthorizedParty) {
		return nil, fmt.Errorf("unexpected authorized party: %s", claims.AuthorizedParty)
	}
	return claims, nil
}

// IssueDevToken signs an HS256 session token for subject. It is meant for
// local development and tests; production tokens come from the provider.
func IssueDevToken(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
		SessionID: "sess_" + uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// normalizePEM restores newlines in keys passed through single-line env vars.
func normalizePEM(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
