package middleware

import (
	"context"
	"net/http"
	"regexp"

	"github.com/unais-08/blogs-fullstack/internal/apperror"
	"github.com/unais-08/blogs-fullstack/internal/auth"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/response"
)

type contextKey string

const principalKey contextKey = "principal"

var (
	bearerRe = regexp.MustCompile(`^Bearer ([^\s]+)$`)

	errNoToken      = apperror.Unauthorized("No token provided")
	errTokenRevoked = apperror.Unauthorized("Token revoked")
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Auth admits requests carrying a valid, unrevoked bearer token and attaches
// the caller to the request context.
func Auth(tokens TokenVerifier, denylist auth.Denylist, errs *response.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := bearerRe.FindStringSubmatch(r.Header.Get("Authorization"))
			if m == nil {
				errs.Error(w, r, errNoToken)
				return
			}

			claims, err := tokens.Verify(m[1])
			if err != nil {
				errs.Error(w, r, err)
				return
			}

			p, err := claims.Principal()
			if err != nil {
				errs.Error(w, r, err)
				return
			}

			revoked, err := denylist.IsRevoked(r.Context(), p.TokenID)
			if err != nil {
				errs.Error(w, r, err)
				return
			}
			if revoked {
				errs.Error(w, r, errTokenRevoked)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns the authenticated caller. ok is false outside Auth.
func GetPrincipal(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(auth.Principal)
	return p, ok
}
