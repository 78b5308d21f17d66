package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// observedLogger returns a logger writing to an in-memory sink.
func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(zap.DebugLevel)
	return zap.New(core), recorded
}

// noopSpanContext starts a span through the noop tracer; its span
// context is deliberately invalid.
func noopSpanContext(t *testing.T) (context.Context, trace.Span) {
	t.Helper()
	tracer := noop.NewTracerProvider().Tracer("test")
	return tracer.Start(context.Background(), "test-span")
}

func TestContextRoundTrips(t *testing.T) {
	base, err := NewForEnvironment("development")
	require.NoError(t, err)

	t.Run("logger", func(t *testing.T) {
		ctx := WithContext(context.Background(), base)
		assert.NotNil(t, FromContext(ctx))
	})

	t.Run("request ID", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), base, "req-123")
		assert.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("user ID", func(t *testing.T) {
		ctx, enriched := WithUserID(context.Background(), base, "user-789")
		assert.NotNil(t, enriched)
		assert.Equal(t, "user-789", GetUserID(ctx))
	})

	t.Run("chained enrichment", func(t *testing.T) {
		ctx := context.Background()
		log := base
		ctx, log = WithRequestID(ctx, log, "req-1")
		ctx, log = WithUserID(ctx, log, "user-1")

		assert.Equal(t, "req-1", GetRequestID(ctx))
		assert.Equal(t, "user-1", GetUserID(ctx))
		assert.NotNil(t, log)
	})

	t.Run("later request ID wins", func(t *testing.T) {
		ctx := context.Background()
		ctx, _ = WithRequestID(ctx, base, "first-id")
		ctx, _ = WithRequestID(ctx, base, "second-id")
		assert.Equal(t, "second-id", GetRequestID(ctx))
	})

	t.Run("WithRequestID stores the enriched logger", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), base, "req-test")
		assert.NotNil(t, FromContext(ctx))
		assert.NotEqual(t, base, enriched)
	})
}

func TestContextAccessors_Missing(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
}

func TestContextKeysAreDistinct(t *testing.T) {
	assert.NotEqual(t, LoggerKey, RequestIDKey)
	assert.NotEqual(t, RequestIDKey, UserIDKey)
	assert.NotEqual(t, LoggerKey, UserIDKey)
}

func TestFromContext_Fallback(t *testing.T) {
	t.Run("empty context yields usable no-op", func(t *testing.T) {
		log := FromContext(context.Background())
		require.NotNil(t, log)
		assert.NotPanics(t, func() {
			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")
			log.Error("error message")
			log.With(zap.String("key", "value")).Info("with field")
		})
	})

	t.Run("wrong value type yields no-op", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
		log := FromContext(ctx)
		require.NotNil(t, log)
		log.Info("test")
	})
}

func TestTraceAccessors(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		assert.Empty(t, GetTraceID(context.Background()))
		assert.Empty(t, GetSpanID(context.Background()))
	})

	t.Run("noop span has no valid IDs", func(t *testing.T) {
		ctx, span := noopSpanContext(t)
		defer span.End()

		require.False(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
		assert.Empty(t, GetTraceID(ctx))
		assert.Empty(t, GetSpanID(ctx))
	})
}

func TestWithTraceContext(t *testing.T) {
	base := zap.NewNop()

	t.Run("no span passes the logger through", func(t *testing.T) {
		assert.Equal(t, base, WithTraceContext(context.Background(), base))
	})

	t.Run("invalid span context passes the logger through", func(t *testing.T) {
		ctx, span := noopSpanContext(t)
		defer span.End()
		assert.Equal(t, base, WithTraceContext(ctx, base))
	})
}

func TestL(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		cl := L(context.Background())
		require.NotNil(t, cl)
		assert.NotNil(t, cl.ctx)
		assert.NotNil(t, cl.logger)
	})

	t.Run("picks up the context logger", func(t *testing.T) {
		base, err := NewForEnvironment("development")
		require.NoError(t, err)

		cl := L(WithContext(context.Background(), base))
		require.NotNil(t, cl)
		assert.NotNil(t, cl.logger)
	})
}

func TestWithLogger(t *testing.T) {
	base, err := NewForEnvironment("development")
	require.NoError(t, err)

	cl := WithLogger(context.Background(), base)
	require.NotNil(t, cl)
	assert.Equal(t, base, cl.logger)
}

func TestContextLogger(t *testing.T) {
	t.Run("With derives a child logger", func(t *testing.T) {
		base, _ := observedLogger()
		ctx := context.Background()

		child := WithLogger(ctx, base).With(zap.String("key", "value"))
		require.NotNil(t, child)
		assert.Equal(t, ctx, child.ctx)
		assert.NotEqual(t, base, child.logger)
	})

	t.Run("With chains", func(t *testing.T) {
		cl := WithLogger(context.Background(), zap.NewNop()).
			With(zap.String("field1", "value1")).
			With(zap.String("field2", "value2"))

		assert.NotPanics(t, func() { cl.Info("chained test") })
	})

	t.Run("all levels are safe on a nop logger", func(t *testing.T) {
		cl := WithLogger(context.Background(), zap.NewNop())
		assert.NotPanics(t, func() {
			cl.Debug("debug message")
			cl.Info("info message")
			cl.Warn("warn message")
			cl.Error("error message")
		})
	})

	t.Run("nil logger falls back to no-op", func(t *testing.T) {
		cl := &ContextLogger{ctx: context.Background()}
		assert.NotPanics(t, func() { cl.Info("test") })
	})

	t.Run("Zap and Sugar expose usable loggers", func(t *testing.T) {
		cl := WithLogger(context.Background(), zap.NewNop())

		require.NotNil(t, cl.Zap())
		require.NotNil(t, cl.Sugar())
		assert.NotPanics(t, func() {
			cl.Zap().Info("test")
			cl.Sugar().Infof("test %s", "message")
		})
	})
}

func TestContextLogger_Enrichment(t *testing.T) {
	t.Run("context fields appear on every entry", func(t *testing.T) {
		base, recorded := observedLogger()

		ctx := context.Background()
		ctx, _ = WithRequestID(ctx, base, "req-123")
		ctx, _ = WithUserID(ctx, base, "user-789")
		ctx = WithContext(ctx, base)

		L(ctx).Info("test message", zap.String("extra_field", "extra_value"))

		entries := recorded.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "test message", entries[0].Message)

		fields := entries[0].ContextMap()
		assert.Equal(t, "req-123", fields["request_id"])
		assert.Equal(t, "user-789", fields["user_id"])
		assert.Equal(t, "extra_value", fields["extra_field"])
	})

	t.Run("raw context values are picked up", func(t *testing.T) {
		base, recorded := observedLogger()

		ctx := context.WithValue(context.Background(), RequestIDKey, "req-aaa")
		ctx = context.WithValue(ctx, UserIDKey, "user-ccc")

		WithLogger(ctx, base).Info("test")

		entries := recorded.All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-aaa", fields["request_id"])
		assert.Equal(t, "user-ccc", fields["user_id"])
	})

	t.Run("absent fields stay absent", func(t *testing.T) {
		base, recorded := observedLogger()

		WithLogger(context.Background(), base).Info("test")

		entries := recorded.All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.NotContains(t, fields, "request_id")
		assert.NotContains(t, fields, "user_id")
	})
}
