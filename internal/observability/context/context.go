// Package context carries request-scoped correlation values for logs and traces.
package context

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	accountIDKey
)

// WithRequestID stores the inbound request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id or "".
func RequestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithAccountID stores the account being resolved.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// AccountIDFromContext returns the account id or "".
func AccountIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(accountIDKey).(string)
	return value
}
