package middleware

import (
	"net/http"

	"github.com/TheLMNTRIX/Sangath/internal/domain/entity"
	"github.com/TheLMNTRIX/Sangath/pkg/response"
)

// RequireRole gates a route on the principal's role. There is no
// implicit hierarchy: a role passes only if it is named in allowed.
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if !principal.Role.OneOf(allowed...) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSupervisor gates supervisor-only endpoints.
func RequireSupervisor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleSupervisor)(next)
}

// RequireWorker gates worker-only endpoints.
func RequireWorker(next http.Handler) http.Handler {
	return RequireRole(entity.RoleASHA)(next)
}

// RequireAdmin gates admin-only endpoints.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireSupervisorOrAdmin gates endpoints shared by the two elevated
// roles.
func RequireSupervisorOrAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleSupervisor, entity.RoleAdmin)(next)
}
