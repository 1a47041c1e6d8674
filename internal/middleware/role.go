package middleware

import (
	"net/http"

	"github.com/recyclerewards/backend/internal/models"
)

// RoleMiddleware allows the request only when the authenticated user has exactly the required role.
// It must run after SessionMiddleware.
func RoleMiddleware(required models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if !hasRole(user.Role, required) {
				writeMessage(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hasRole compares roles without any hierarchy; unknown roles never pass
func hasRole(actual, required models.Role) bool {
	switch actual {
	case models.RoleAdmin:
		return required == models.RoleAdmin
	case models.RoleUser:
		return required == models.RoleUser
	default:
		return false
	}
}
