package middleware

import (
	"encoding/json"
	"net/http"

	tokenAuth "github.com/MrEthical07/tokenAuth"
)

// RequireAuthenticated rejects anonymous requests and disabled accounts with
// 401, and locked accounts with 403.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		switch {
		case !ok:
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		case p.Locked:
			writeError(w, http.StatusForbidden, "ACCOUNT_LOCKED", "account is locked")
			return
		case !p.Enabled:
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "account is disabled")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole allows only principals holding role. It must run after
// [RequireAuthenticated]; an anonymous request gets 401.
func RequireRole(role tokenAuth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
				return
			}
			if !p.HasRole(role) {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"error_message"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: code, Message: msg})
}
