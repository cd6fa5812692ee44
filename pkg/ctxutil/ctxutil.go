// Package ctxutil carries per-request values (request id, authenticated user)
// through context.Context and fiber locals.
package ctxutil

import "context"

type ctxKey string

const (
	RequestIDKey ctxKey = "request_id"
	UserIDKey    ctxKey = "user_id"
)

func value[T any](ctx context.Context, key ctxKey) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, reqID)
}

// GetRequestID returns "" when the request went through no request id middleware.
func GetRequestID(ctx context.Context) string {
	id, _ := value[string](ctx, RequestIDKey)
	return id
}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) (int64, bool) {
	return value[int64](ctx, UserIDKey)
}
