package logger

import (
	"context"

	"go.uber.org/zap"
)

// ключи должны совпадать с middleware, но без импорта middleware — иначе цикл
type ctxKey string

const (
	ctxRequestID ctxKey = "request_id"
	ctxUserID    ctxKey = "user_id"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestID, id)
}

func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, ctxUserID, id)
}

// WithCtx возвращает логгер, обогащённый request_id и user_id из контекста.
func WithCtx(ctx context.Context) *zap.Logger {
	l := Log
	if l == nil {
		l = zap.NewNop()
	}
	if ctx == nil {
		return l
	}
	if rid, ok := ctx.Value(ctxRequestID).(string); ok && rid != "" {
		l = l.With(zap.String("request_id", rid))
	}
	if uid, ok := ctx.Value(ctxUserID).(int); ok {
		l = l.With(zap.Int("user_id", uid))
	}
	return l
}
