package middleware

import "context"

// ContextKey is the type of keys this package stores in request contexts.
type ContextKey string

// RequestIDCtxKey holds the request id set by RequestID.
const RequestIDCtxKey = ContextKey("request_id")

// RequestIDHeader is read from and written to by RequestID.
const RequestIDHeader = "X-Request-ID"

// GetRequestID returns the request id stored in ctx, if any.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDCtxKey).(string)
	return id
}
