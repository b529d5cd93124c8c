package middleware

import (
	"net/http"
	"strings"

	"portfolio/internal/auth"
	"portfolio/internal/httputil"
)

const adminPrefix = "/api/admin/"
const loginPath = "/api/admin/login"

// Auth guards every admin route with bearer-token verification. Login is the
// only admin route that passes through unauthenticated; everything outside
// the admin prefix is public by design. All failure modes get the same
// generic 401 so callers cannot tell a malformed token from an expired one.
func Auth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, adminPrefix) || r.URL.Path == loginPath {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			identity, err := tokens.Verify(parts[1])
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, identity))
		})
	}
}
