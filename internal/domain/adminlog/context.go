package adminlog

import "context"

type contextKey struct{}

// WithClientIP stores the request's client address for later audit logging.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// ClientIPFromContext returns the stored client address, if any.
func ClientIPFromContext(ctx context.Context) *string {
	ip, ok := ctx.Value(contextKey{}).(string)
	if !ok || ip == "" {
		return nil
	}
	return &ip
}
