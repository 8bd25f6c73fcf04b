package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/courtside/platform/internal/envelope"
)

// ErrNoIdentity means the request carries no usable identity. It is the
// expected outcome for anonymous requests, not a fault.
var ErrNoIdentity = errors.New("no identity")

// IdentityResolver resolves the subject of a request. It returns an error
// wrapping ErrNoIdentity when there is none; any other error is a fault.
type IdentityResolver interface {
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc adapts a function to IdentityResolver.
type ResolverFunc func(r *http.Request) (string, error)

func (f ResolverFunc) Resolve(r *http.Request) (string, error) { return f(r) }

type contextKey string

const subjectKey contextKey = "auth_subject"

// SubjectFromContext extracts the subject ID string from request context.
func SubjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(subjectKey).(string)
	return sub
}

// WithSubject returns a copy of ctx carrying subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// RequireIdentity returns middleware that admits only requests with a
// resolved subject. Anonymous requests get a 401 envelope; resolver faults
// are logged and get a generic 500 envelope. In both cases next is not
// called. Admitted requests reach next with the subject in their context
// and next's response is passed through untouched.
func RequireIdentity(resolver IdentityResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := resolver.Resolve(r)
			switch {
			case errors.Is(err, ErrNoIdentity) || (err == nil && subject == ""):
				envelope.Failure("Unauthorized").WithStatus(http.StatusUnauthorized).Write(w)
				return
			case err != nil:
				logger.Error("identity resolution failed",
					"tag", "AUTH_MIDDLEWARE",
					"path", r.URL.Path,
					"error", err,
				)
				envelope.Failure(envelope.GenericError).Write(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}
