package middleware

import (
	"net/http"
)

// DemoModeMiddleware makes the API read-only for everyone but super admins.
// It must run after JWTAuthMiddleware so the admin flag is known.
func DemoModeMiddleware(isDemo bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isDemo || r.Method == http.MethodGet || r.Method == http.MethodOptions || IsSuperAdmin(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}
			WriteError(w, http.StatusForbidden, "Demo mode: only GET requests are allowed")
		})
	}
}
