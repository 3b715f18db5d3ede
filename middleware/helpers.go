package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// Определяем константы для имен JWT claims
const (
	jwtClaimOwner  = "sub"
	jwtClaimUserID = "user_id" // старые токены несут числовой user_id
)

func GetOwnerFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}
	return ownerFromClaims(claims)
}

// WithOwner returns a context that carries owner the way Authenticate does.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, userContextKey, jwt.MapClaims{jwtClaimOwner: owner})
}

func ownerFromClaims(claims jwt.MapClaims) (string, error) {
	if sub, ok := claims[jwtClaimOwner].(string); ok {
		if sub = strings.TrimSpace(sub); sub != "" {
			return sub, nil
		}
	}

	userIDClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimOwner)
	}
	switch v := userIDClaim.(type) {
	case float64:
		if v != float64(int64(v)) || v <= 0 {
			return "", fmt.Errorf("invalid '%s' claim: %v", jwtClaimUserID, v)
		}
		return strconv.FormatInt(int64(v), 10), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return "", fmt.Errorf("empty '%s' claim", jwtClaimUserID)
		}
		return v, nil
	default:
		return "", fmt.Errorf("invalid type for '%s' claim: expected float64 or string, got %T", jwtClaimUserID, userIDClaim)
	}
}
