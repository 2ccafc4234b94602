package middleware

import (
	"context"
	"net/http"
	"strings"

	tokenAuth "github.com/MrEthical07/tokenAuth"
)

// Authenticator resolves a bearer token. *tokenAuth.Engine implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (tokenAuth.Principal, bool)
}

type principalContextKey struct{}

// PrincipalFromContext returns the principal attached by [Authenticate].
func PrincipalFromContext(ctx context.Context) (tokenAuth.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(tokenAuth.Principal)
	return p, ok
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p tokenAuth.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// Authenticate attaches the principal of a valid bearer token to the request
// context. It never rejects: requests without a usable token continue
// anonymously and authorization is left to [RequireAuthenticated].
func Authenticate(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth == nil {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			p, ok := auth.Authenticate(r.Context(), token)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
