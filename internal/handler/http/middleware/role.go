package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RoleFromContext returns the role claim, or an empty role when absent
func RoleFromContext(r *http.Request) user.Role {
	_, claims, _ := jwtauth.FromContext(r.Context())
	roleStr, _ := claims["role"].(string)
	return user.Role(roleStr)
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if role := RoleFromContext(r); !user.HasPermission(role, permission) {
				response.HandleError(w, fmt.Errorf("%w: role %q lacks %q", user.ErrInsufficientPermissions, role, permission))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
