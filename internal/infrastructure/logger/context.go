package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	clubIDKey    contextKey = "club_id"
	userIDKey    contextKey = "user_id"
)

// WithContext stores a logger in the context
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithRequestID stores the request ID in the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithClubID stores the acting club ID in the context
func WithClubID(ctx context.Context, clubID string) context.Context {
	return context.WithValue(ctx, clubIDKey, clubID)
}

// WithUserID stores the acting user ID in the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetRequestID returns the request ID from the context
func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// GetClubID returns the club ID from the context
func GetClubID(ctx context.Context) string {
	return stringValue(ctx, clubIDKey)
}

// GetUserID returns the user ID from the context
func GetUserID(ctx context.Context) string {
	return stringValue(ctx, userIDKey)
}

// L returns the request logger stored in ctx, or fallback outside a
// request, tagged with the club and user set by the auth middleware
func L(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	var fields []zap.Field
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok || l == nil {
		l = fallback
		if v := GetRequestID(ctx); v != "" {
			fields = append(fields, zap.String("request_id", v))
		}
	}
	if v := GetClubID(ctx); v != "" {
		fields = append(fields, zap.String("club_id", v))
	}
	if v := GetUserID(ctx); v != "" {
		fields = append(fields, zap.String("user_id", v))
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
