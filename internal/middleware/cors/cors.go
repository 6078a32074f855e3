// Package cors adds the cross-origin headers browsers need to call the API.
package cors

import "net/http"

const (
	allowHeaders = "Content-Type"
	allowMethods = "GET, POST, PATCH, DELETE, OPTIONS"
)

// Middleware sets the CORS headers on every response and answers preflight
// OPTIONS requests itself with 204 and no body. An empty origin means "*".
func Middleware(allowedOrigin string) func(http.Handler) http.Handler {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Allow-Methods", allowMethods)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
