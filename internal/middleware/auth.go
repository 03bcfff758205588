package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/volt-ev/fleet-console/internal/config"
	"github.com/volt-ev/fleet-console/internal/fleetapi"
)

// contextKey is a type for context keys
type contextKey string

const (
	OperatorIDKey   contextKey = "operatorID"
	OperatorRoleKey contextKey = "operatorRole"
)

// Claims are the operator token claims the console cares about. Tokens are
// issued elsewhere; the console only validates and forwards them.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates the bearer token, puts the operator identity on the context,
// and stashes the raw token so the fleet client can forward it.
func Auth(cfg config.JWT) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}
			tokenString := parts[1]

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(cfg.Secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), OperatorIDKey, claims.UserID)
			ctx = context.WithValue(ctx, OperatorRoleKey, claims.Role)
			ctx = fleetapi.WithToken(ctx, tokenString)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOperatorID extracts the authenticated operator's ID from the context.
func GetOperatorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(OperatorIDKey).(string)
	return id, ok
}

// GetOperatorRole extracts the authenticated operator's role from the context.
func GetOperatorRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(OperatorRoleKey).(string)
	return role, ok
}
