package bridgetoken

import "context"

// contextKey is an unexported type for context keys to prevent collisions
type contextKey string

const requestIDContextKey contextKey = "github.com/Wang-tianhao/bridge-tokengen/bridgetoken:request_id"

// WithRequestID stores a request ID in context for correlating issuance events
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok
}
