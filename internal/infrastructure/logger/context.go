package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

// Context keys under which the logger and correlation identifiers travel.
const (
	LoggerKey    contextKey = "logger"
	RequestIDKey contextKey = "request_id"
	BranchIDKey  contextKey = "branch_id"
	UserIDKey    contextKey = "user_id"
)

// WithContext stores the logger in the context.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the logger stored by WithContext, or a no-op logger
// when the context carries none.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// tag stores value under key and returns a logger carrying it as a field.
// The enriched logger replaces any previously stored one so later
// FromContext calls keep the accumulated correlation fields.
func tag(ctx context.Context, logger *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	logger = logger.With(zap.String(string(key), value))
	return WithContext(ctx, logger), logger
}

// WithRequestID tags the context and logger with the request identifier.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return tag(ctx, logger, RequestIDKey, requestID)
}

// WithBranchID tags the context and logger with the acting branch.
func WithBranchID(ctx context.Context, logger *zap.Logger, branchID string) (context.Context, *zap.Logger) {
	return tag(ctx, logger, BranchIDKey, branchID)
}

// WithUserID tags the context and logger with the acting user.
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	return tag(ctx, logger, UserIDKey, userID)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// GetRequestID returns the request identifier, or "" when absent.
func GetRequestID(ctx context.Context) string { return stringValue(ctx, RequestIDKey) }

// GetBranchID returns the branch identifier, or "" when absent.
func GetBranchID(ctx context.Context) string { return stringValue(ctx, BranchIDKey) }

// GetUserID returns the user identifier, or "" when absent.
func GetUserID(ctx context.Context) string { return stringValue(ctx, UserIDKey) }

// ContextLogger stamps every entry with the request, branch and user
// identifiers found in the context, so service-layer logs line up with the
// access log without each call site threading the fields through.
type ContextLogger struct {
	ctx    context.Context
	logger *zap.Logger
}

// L wraps the context's logger:
//
//	logger.L(ctx).Warn("stock below reorder point", zap.Int("stock", n))
func L(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: FromContext(ctx)}
}

// WithLogger is L with an explicit logger, for callers that hold their own
// configured instance and only want the context correlation fields.
func WithLogger(ctx context.Context, logger *zap.Logger) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: logger}
}

// With returns a child ContextLogger carrying the extra fields.
func (cl *ContextLogger) With(fields ...zap.Field) *ContextLogger {
	return &ContextLogger{ctx: cl.ctx, logger: cl.logger.With(fields...)}
}

func (cl *ContextLogger) enriched() *zap.Logger {
	l := cl.logger
	if l == nil {
		l = zap.NewNop()
	}
	var fields []zap.Field
	for _, key := range []contextKey{RequestIDKey, BranchIDKey, UserIDKey} {
		if v := stringValue(cl.ctx, key); v != "" {
			fields = append(fields, zap.String(string(key), v))
		}
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func (cl *ContextLogger) Debug(msg string, fields ...zap.Field) { cl.enriched().Debug(msg, fields...) }
func (cl *ContextLogger) Info(msg string, fields ...zap.Field)  { cl.enriched().Info(msg, fields...) }
func (cl *ContextLogger) Warn(msg string, fields ...zap.Field)  { cl.enriched().Warn(msg, fields...) }
func (cl *ContextLogger) Error(msg string, fields ...zap.Field) { cl.enriched().Error(msg, fields...) }
func (cl *ContextLogger) Fatal(msg string, fields ...zap.Field) { cl.enriched().Fatal(msg, fields...) }
func (cl *ContextLogger) Panic(msg string, fields ...zap.Field) { cl.enriched().Panic(msg, fields...) }

// Zap returns the underlying logger with the correlation fields applied,
// for APIs that want a plain *zap.Logger.
func (cl *ContextLogger) Zap() *zap.Logger { return cl.enriched() }

// Sugar returns the enriched logger's sugared form.
func (cl *ContextLogger) Sugar() *zap.SugaredLogger { return cl.enriched().Sugar() }
