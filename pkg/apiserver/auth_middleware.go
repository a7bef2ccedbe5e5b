package apiserver

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// tokenAuthMiddleware guards the resolver routes with a single static
// bearer token, verified against a bcrypt hash of it. The API runs open when
// no hash is configured; the middleware is only installed when one is.
func tokenAuthMiddleware(tokenHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization := r.Header.Get("Authorization")
			token := strings.TrimPrefix(authorization, "Bearer ")
			if token == "" {
				writeError(w, http.StatusForbidden, "authorization required", nil)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
				writeError(w, http.StatusForbidden, "forbidden to use", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
