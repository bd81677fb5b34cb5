package middleware

import (
	"fmt"
	"net/http"

	"github.com/gajihub/payroll-backend-go/internal/domain/user"
	"github.com/gajihub/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// requireRole gates a route on the role claim. failErr is the sentinel the
// response maps to 403 when the claim is absent or the check fails.
func requireRole(check func(user.Role) bool, failErr error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, failErr)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok || !check(user.Role(roleStr)) {
				response.HandleError(w, failErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwner admits owner tokens only.
var RequireOwner = requireRole(user.Role.IsOwner, user.ErrOwnerAccessRequired)

// RequireManager admits manager and owner tokens.
var RequireManager = requireRole(user.Role.IsManager, user.ErrManagerAccessRequired)

// RequirePermission gates a route on the permission table instead of a
// role name, so the route states intent: owners mark runs paid, managers
// calculate them.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			role := user.Role(roleStr)
			if !user.HasPermission(role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
