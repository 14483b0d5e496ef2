package middleware

import (
	"context"
	"net/http"
	"strings"

	"cosmetic-platform-dataset/internal/domain/entity"
	"cosmetic-platform-dataset/internal/domain/policy"
	"cosmetic-platform-dataset/pkg/jwt"
	"cosmetic-platform-dataset/pkg/response"
)

type contextKey string

const RequesterKey contextKey = "requester"

type AuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAuthMiddleware(jwtService *jwt.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate resolves the requester from a Supabase-style bearer token.
// A request without Authorization header runs as anon.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r.WithContext(WithRequester(r.Context(), policy.Anonymous())))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		role := entity.Role(claims.Role)
		if !role.Valid() {
			response.Unauthorized(w, "Unknown role in token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.Unauthorized(w, "Invalid subject in token")
			return
		}
		if role == entity.RoleAuthenticated && userID == nil {
			response.Unauthorized(w, "Authenticated token has no subject")
			return
		}

		ctx := WithRequester(r.Context(), policy.Requester{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithRequester stores the requester on ctx
func WithRequester(ctx context.Context, requester policy.Requester) context.Context {
	return context.WithValue(ctx, RequesterKey, requester)
}

// GetRequesterFromContext extracts the requester from context
func GetRequesterFromContext(ctx context.Context) (policy.Requester, bool) {
	requester, ok := ctx.Value(RequesterKey).(policy.Requester)
	return requester, ok
}
