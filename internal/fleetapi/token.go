package fleetapi

import "context"

type contextKey string

const tokenKey contextKey = "fleetToken"

// WithToken returns a context carrying the operator's bearer token. The auth
// middleware sets it; the client forwards it on every backend request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext extracts the operator's bearer token, if present.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}
