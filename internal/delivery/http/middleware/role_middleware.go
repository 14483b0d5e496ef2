package middleware

import (
	"net/http"

	"cosmetic-platform-dataset/internal/domain/entity"
	"cosmetic-platform-dataset/pkg/response"
)

// RequireRole creates a middleware that checks if the requester runs as any of the given roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester, ok := GetRequesterFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Requester not found")
				return
			}

			for _, role := range allowed {
				if requester.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			if requester.Role == entity.RoleAnon {
				response.Unauthorized(w, "Authorization header is required")
				return
			}
			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireServiceRole guards endpoints that read the live database or the audit log
func RequireServiceRole(next http.Handler) http.Handler {
	return RequireRole(entity.RoleServiceRole)(next)
}
