package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/vacation-planner-go/internal/handler/http/response"
)

// RequireManager requires the caller to hold managerRoleID
func RequireManager(managerRoleID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			if identity.RoleID != managerRoleID {
				response.Forbidden(w, "Manager access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
