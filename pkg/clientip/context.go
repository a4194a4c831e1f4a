package clientip

import "context"

// clientIPContextKey is the key for storing the client IP in context.
type clientIPContextKey struct{}

// SetIPToContext stores the client IP in context.
func SetIPToContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// GetIPFromContext retrieves the client IP from context.
// Returns an empty string when the middleware did not run.
func GetIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}
