package httpx

import (
	"net/http"
	"slices"
)

// DetailForbidden is the 403 body for callers lacking the required role.
const DetailForbidden = "You do not have permission to perform this action."

// RequireRole lets the request through only when the caller's role claim is
// one of roles. It must run after AuthnMiddleware.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, RoleFromContext(r.Context())) {
				WriteJSON(w, http.StatusForbidden, map[string]string{"detail": DetailForbidden})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
