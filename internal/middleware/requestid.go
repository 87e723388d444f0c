package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"userfiles/internal/httputil"
)

// RequestID tags every request with a correlation id, echoed in the
// X-Request-ID response header and available to log lines downstream.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, httputil.WithRequestID(r, id))
		})
	}
}
