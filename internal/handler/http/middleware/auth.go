package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/vacation-planner-go/internal/handler/http/response"
	"github.com/cmlabs-hris/vacation-planner-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type identityKey struct{}

// AuthRequired accepts verified access tokens carrying a complete identity
// and stores that identity on the request context.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.Unauthorized(w, "Invalid token")
			return
		}

		identity := jwt.Identity{}
		identity.EmployeeID, _ = claims["employee_id"].(string)
		identity.DepartmentID, _ = claims["department_id"].(string)
		identity.RoleID, _ = claims["role_id"].(string)
		if identity.EmployeeID == "" || identity.DepartmentID == "" || identity.RoleID == "" {
			response.Unauthorized(w, "Token is missing identity claims")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hfn)
}

// IdentityFromContext returns the identity stored by AuthRequired.
func IdentityFromContext(ctx context.Context) (jwt.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(jwt.Identity)
	return identity, ok
}
