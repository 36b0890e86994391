package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/baejw0111/review-server/internal/domain"
	domainerrors "github.com/baejw0111/review-server/internal/errors"
	"github.com/baejw0111/review-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const (
	userIDKey   ctxKey = "userID"
	roleKey     ctxKey = "role"
	clientIPKey ctxKey = "clientIP"
)

// GetUserID returns the authenticated user ID from context.
// Returns a 401 error if the request is not authenticated.
func GetUserID(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return userID, nil
}

// GetRole returns the authenticated user's role from context, defaulting
// to the regular user role.
func GetRole(ctx context.Context) domain.Role {
	if role, ok := ctx.Value(roleKey).(domain.Role); ok {
		return role
	}
	return domain.RoleUser
}

func setAuthContext(ctx context.Context, userID string, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// GetClientIP returns the client IP captured by the middleware stack, or
// an empty string when unavailable.
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// clientIPMiddleware stores the resolved client IP in the request context
// so handlers behind the huma adapter can attach it to sessions.
func clientIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), clientIPKey, getClientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authMiddleware validates Bearer tokens and stores the user identity in
// the request context. An absent or invalid token passes through without
// identity; handlers reject via GetUserID when auth is required.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.VerifyAccessToken(authHeader[7:])
			if err != nil {
				// Invalid token - continue without identity.
				next.ServeHTTP(w, r)
				return
			}

			ctx := setAuthContext(r.Context(), claims.UserID, domain.Role(claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser returns the authenticated user, fetched fresh from the
// store so role changes and withdrawals take effect before token expiry.
func (s *Server) RequireUser(ctx context.Context) (*domain.User, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, huma.Error401Unauthorized("User not found")
	}
	return user, nil
}

// RequireAdmin validates the user is authenticated and has the admin
// role. Returns the user ID if successful.
func (s *Server) RequireAdmin(ctx context.Context) (string, error) {
	user, err := s.RequireUser(ctx)
	if err != nil {
		return "", err
	}
	if !user.IsAdmin() {
		return "", domainerrors.Forbidden("Admin access required")
	}
	return user.ID, nil
}
