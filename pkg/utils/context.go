package utils

import (
	"context"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	ClaimsKey    contextKey = "claims"
	RequestIDKey contextKey = "request_id"
)

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", false
	}

	return userID, true
}

// SetAuthContext stores the authenticated user and the verified token claims
func SetAuthContext(ctx context.Context, claims *TokenClaims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.Subject)
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return ctx
}

// GetClaimsFromContext returns the claims of the token that authenticated the request
func GetClaimsFromContext(ctx context.Context) (*TokenClaims, bool) {
	claimsVal := ctx.Value(ClaimsKey)
	if claimsVal == nil {
		return nil, false
	}

	claims, ok := claimsVal.(*TokenClaims)
	return claims, ok
}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return requestID
}
