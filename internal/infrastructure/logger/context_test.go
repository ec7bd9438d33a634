package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	retrieved := FromContext(ctx)
	assert.Equal(t, logger, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	retrieved := FromContext(context.Background())
	require.NotNil(t, retrieved)
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	newCtx, newLogger := WithRequestID(ctx, logger, "req-123")

	assert.NotNil(t, newLogger)
	assert.Equal(t, "req-123", GetRequestID(newCtx))
}

func TestWithBranchID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	newCtx, newLogger := WithBranchID(ctx, logger, "branch-456")

	assert.NotNil(t, newLogger)
	assert.Equal(t, "branch-456", GetBranchID(newCtx))
}

func TestWithUserID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	newCtx, newLogger := WithUserID(ctx, logger, "user-789")

	assert.NotNil(t, newLogger)
	assert.Equal(t, "user-789", GetUserID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetBranchID_NotFound(t *testing.T) {
	assert.Empty(t, GetBranchID(context.Background()))
}

func TestContextKeys_AreDistinct(t *testing.T) {
	assert.NotEqual(t, RequestIDKey, BranchIDKey)
	assert.NotEqual(t, BranchIDKey, UserIDKey)
	assert.NotEqual(t, RequestIDKey, UserIDKey)
}

func TestChainedEnrichment(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx, logger = WithBranchID(ctx, logger, "branch-1")
	ctx, _ = WithUserID(ctx, logger, "user-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "branch-1", GetBranchID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
}

func TestContextLogger_InjectsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx := WithContext(context.Background(), logger)
	ctx = context.WithValue(ctx, RequestIDKey, "req-abc")
	ctx = context.WithValue(ctx, BranchIDKey, "branch-bbb")
	ctx = context.WithValue(ctx, UserIDKey, "user-ccc")

	L(ctx).Info("stock adjusted")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-abc", fields["request_id"])
	assert.Equal(t, "branch-bbb", fields["branch_id"])
	assert.Equal(t, "user-ccc", fields["user_id"])
}

func TestContextLogger_WithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithLogger(context.Background(), logger).Info("using explicit logger")

	require.Len(t, logs.All(), 1)
	assert.Equal(t, "using explicit logger", logs.All()[0].Message)
}

func TestContextLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithLogger(context.Background(), logger).
		With(zap.String("module", "stock")).
		Info("threshold updated")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "stock", entries[0].ContextMap()["module"])
}

func TestContextLogger_NilLogger(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}
	// Must not panic
	cl.Info("message on nil logger")
}
