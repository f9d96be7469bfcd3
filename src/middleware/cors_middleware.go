package middleware

import (
	"net/http"
)

// CORSMiddleware echoes the request origin back when it is in allowed. A
// single "*" entry allows any origin.
func CORSMiddleware(allowed []string) func(http.Handler) http.Handler {
	allowedOrigins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		allowedOrigins[o] = true
	}
	anyOrigin := allowedOrigins["*"]

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (anyOrigin || allowedOrigins[origin]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Request-ID")
			w.Header().Set("Access-Control-Max-Age", "300") // 5 minutes

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
