package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// newSpanRecorder swaps the global tracer provider for one backed by
// an in-memory recorder and restores the original on cleanup.
func newSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	return sr
}

// singleSpan asserts exactly one span ended and returns it.
func singleSpan(t *testing.T, sr *tracetest.SpanRecorder) sdktrace.ReadOnlySpan {
	t.Helper()
	spans := sr.Ended()
	require.Len(t, spans, 1)
	return spans[0]
}

func spanAttrMap(s sdktrace.ReadOnlySpan) map[string]interface{} {
	m := make(map[string]interface{}, len(s.Attributes()))
	for _, attr := range s.Attributes() {
		m[string(attr.Key)] = attr.Value.AsInterface()
	}
	return m
}

func TestStartSpan(t *testing.T) {
	t.Run("defaults to an internal span", func(t *testing.T) {
		sr := newSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "test.operation")
		require.NotNil(t, span)
		span.End()

		got := singleSpan(t, sr)
		assert.Equal(t, "test.operation", got.Name())
		assert.Equal(t, trace.SpanKindInternal, got.SpanKind())
	})

	t.Run("options set kind and start attributes", func(t *testing.T) {
		sr := newSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "test.operation",
			telemetry.WithAttribute("test_key", "test_value"),
			telemetry.WithSpanKind(trace.SpanKindClient),
		)
		span.End()

		got := singleSpan(t, sr)
		assert.Equal(t, trace.SpanKindClient, got.SpanKind())
		assert.Equal(t, "test_value", spanAttrMap(got)["test_key"])
	})
}

func TestStartServiceSpan(t *testing.T) {
	sr := newSpanRecorder(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "sales_order", "create")
	span.End()

	assert.Equal(t, "sales_order.create", singleSpan(t, sr).Name())
}

func TestSetAttributes(t *testing.T) {
	t.Run("typed values survive conversion", func(t *testing.T) {
		sr := newSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "test.operation")
		telemetry.SetAttributes(span,
			"string_attr", "value",
			"int_attr", 42,
			"bool_attr", true,
		)
		span.End()

		attrs := spanAttrMap(singleSpan(t, sr))
		assert.Equal(t, "value", attrs["string_attr"])
		assert.Equal(t, int64(42), attrs["int_attr"])
		assert.Equal(t, true, attrs["bool_attr"])
	})

	t.Run("all supported types are recorded", func(t *testing.T) {
		sr := newSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "test.operation")
		telemetry.SetAttributes(span,
			"string", "value",
			"int", 42,
			"int64", int64(100),
			"float64", 3.14,
			"bool", true,
			"string_slice", []string{"a", "b"},
			"int_slice", []int{1, 2, 3},
			"int64_slice", []int64{10, 20},
			"float64_slice", []float64{1.1, 2.2},
			"bool_slice", []bool{true, false},
		)
		span.End()

		assert.GreaterOrEqual(t, len(singleSpan(t, sr).Attributes()), 10)
	})

	t.Run("trailing unpaired key is dropped", func(t *testing.T) {
		sr := newSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "test.operation")
		telemetry.SetAttributes(span,
			"key1", "value1",
			"key2", "value2",
			"orphan_key",
		)
		span.End()

		assert.Len(t, singleSpan(t, sr).Attributes(), 2)
	})

	t.Run("non-string key skips the pair", func(t *testing.T) {
		sr := newSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "test.operation")
		telemetry.SetAttributes(span,
			"valid_key", "value",
			123, "ignored",
		)
		span.End()

		assert.Len(t, singleSpan(t, sr).Attributes(), 1)
	})
}

func TestSetAttribute(t *testing.T) {
	t.Run("string value", func(t *testing.T) {
		sr := newSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "test.operation")
		telemetry.SetAttribute(span, "order_id", "12345")
		span.End()

		assert.Equal(t, "12345", spanAttrMap(singleSpan(t, sr))["order_id"])
	})

	t.Run("uuid renders through Stringer", func(t *testing.T) {
		sr := newSpanRecorder(t)
		orderID := uuid.New()

		_, span := telemetry.StartSpan(context.Background(), "test.operation")
		telemetry.SetAttribute(span, "order_id", orderID)
		span.End()

		assert.Equal(t, orderID.String(), spanAttrMap(singleSpan(t, sr))["order_id"])
	})
}

func TestRecordError(t *testing.T) {
	t.Run("sets error status and exception event", func(t *testing.T) {
		sr := newSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "test.operation")
		telemetry.RecordError(span, errors.New("test error"))
		span.End()

		got := singleSpan(t, sr)
		assert.Equal(t, codes.Error, got.Status().Code)
		assert.Equal(t, "test error", got.Status().Description)

		events := got.Events()
		require.NotEmpty(t, events)
		assert.Equal(t, "exception", events[0].Name)
	})

	t.Run("nil error leaves the span untouched", func(t *testing.T) {
		sr := newSpanRecorder(t)

		_, span := telemetry.StartSpan(context.Background(), "test.operation")
		telemetry.RecordError(span, nil)
		span.End()

		assert.NotEqual(t, codes.Error, singleSpan(t, sr).Status().Code)
	})
}

func TestSetOK(t *testing.T) {
	sr := newSpanRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "test.operation")
	telemetry.SetOK(span)
	span.End()

	assert.Equal(t, codes.Ok, singleSpan(t, sr).Status().Code)
}

func TestAddEvent(t *testing.T) {
	sr := newSpanRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "test.operation")
	telemetry.AddEvent(span, "stock_locked",
		"product_id", "prod-123",
		"quantity", 10,
	)
	span.End()

	events := singleSpan(t, sr).Events()
	require.Len(t, events, 1)
	assert.Equal(t, "stock_locked", events[0].Name)

	attrs := make(map[string]interface{}, len(events[0].Attributes))
	for _, attr := range events[0].Attributes {
		attrs[string(attr.Key)] = attr.Value.AsInterface()
	}
	assert.Equal(t, "prod-123", attrs["product_id"])
	assert.Equal(t, int64(10), attrs["quantity"])
}

func TestSpanContextHelpers(t *testing.T) {
	newSpanRecorder(t)
	background := context.Background()

	t.Run("SpanFromContext without a span returns no-op", func(t *testing.T) {
		assert.NotNil(t, telemetry.SpanFromContext(background))
	})

	t.Run("SpanFromContext round-trips the active span", func(t *testing.T) {
		ctx, span := telemetry.StartSpan(background, "test.operation")
		defer span.End()

		got := telemetry.SpanFromContext(ctx)
		assert.Equal(t, span.SpanContext().SpanID(), got.SpanContext().SpanID())
	})

	t.Run("ContextWithSpan embeds the span", func(t *testing.T) {
		_, span := telemetry.StartSpan(background, "test.operation")
		defer span.End()

		ctx := telemetry.ContextWithSpan(background, span)
		got := telemetry.SpanFromContext(ctx)
		assert.Equal(t, span.SpanContext().SpanID(), got.SpanContext().SpanID())
	})

	t.Run("trace and span IDs", func(t *testing.T) {
		assert.Empty(t, telemetry.GetTraceID(background))
		assert.Empty(t, telemetry.GetSpanID(background))

		ctx, span := telemetry.StartSpan(background, "test.operation")
		defer span.End()

		assert.Len(t, telemetry.GetTraceID(ctx), 32)
		assert.Len(t, telemetry.GetSpanID(ctx), 16)
	})
}

func TestNestedSpans(t *testing.T) {
	sr := newSpanRecorder(t)

	ctx, parentSpan := telemetry.StartSpan(context.Background(), "parent.operation")
	_, childSpan := telemetry.StartSpan(ctx, "child.operation")
	childSpan.End()
	parentSpan.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)

	byName := make(map[string]sdktrace.ReadOnlySpan, 2)
	for _, s := range spans {
		byName[s.Name()] = s
	}
	parent, ok := byName["parent.operation"]
	require.True(t, ok, "parent span not recorded")
	child, ok := byName["child.operation"]
	require.True(t, ok, "child span not recorded")

	assert.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())
	assert.Equal(t, parent.SpanContext().SpanID(), child.Parent().SpanID())
}

func TestNilSpanSafety(t *testing.T) {
	// None of these may panic on a nil span.
	telemetry.SetAttributes(nil, "key", "value")
	telemetry.SetAttribute(nil, "key", "value")
	telemetry.SetOK(nil)
	telemetry.AddEvent(nil, "event_name", "key", "value")
	telemetry.RecordError(nil, errors.New("test error"))
}
