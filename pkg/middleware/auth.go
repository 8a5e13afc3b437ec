package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"eventmate/internal/usecase"
	"eventmate/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator verifies a bearer token and returns its claims
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.TokenClaims, error)
}

// AdminChecker reports whether a user holds the admin role
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Auth requires a valid, unrevoked bearer token and stores its claims in the context
func Auth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or malformed authorization header. Use: Bearer <token>")
				return
			}

			claims, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, usecase.ErrUnauthorized) {
					logger.Warn("Rejected token",
						zap.Error(err),
						zap.String("path", r.URL.Path),
						zap.String("request_id", utils.GetRequestID(r.Context())))
					utils.ResponseUnauthorized(w, "Invalid or expired token")
					return
				}

				logger.Error("Failed to authenticate token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetAuthContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin lets only admins through. Must run after Auth.
func Admin(checker AdminChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. User ID from Auth
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			// 2. Role lookup
			isAdmin, err := checker.IsAdmin(r.Context(), userID)
			if err != nil {
				if errors.Is(err, usecase.ErrUnauthorized) {
					utils.ResponseUnauthorized(w, "Authentication required")
					return
				}
				logger.Error("Admin check: failed to get user",
					zap.Error(err), zap.String("user_id", userID))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			// 3. Check role
			if !isAdmin {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
