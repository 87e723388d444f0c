package middleware

import (
	"net/http"
	"strings"

	"userfiles/internal/httputil"
)

// TokenVerifier validates a bearer token and returns the embedded user id.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// publicPrefixes lists routes reachable without a token: registration, login,
// the anonymous share-link surface and the health check.
var publicPrefixes = []string{
	"/api/register",
	"/api/login",
	"/api/shared/",
	"/health",
}

func isPublic(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Auth gates every non-public route behind a bearer token: missing token is
// 401, invalid or expired token is 403. On success the decoded user id is
// attached to the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				httputil.RespondError(w, http.StatusForbidden, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
