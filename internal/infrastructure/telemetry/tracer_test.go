package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// newDisabledTracerProvider builds a provider that never dials a
// collector; tests use it to exercise the no-op paths.
func newDisabledTracerProvider(t *testing.T, serviceName string) *telemetry.TracerProvider {
	t.Helper()
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1.0,
		ServiceName:       serviceName,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tp)
	return tp
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	tp := newDisabledTracerProvider(t, "test-service")

	assert.False(t, tp.IsEnabled())

	cfg := tp.GetConfig()
	assert.Equal(t, "test-service", cfg.ServiceName)
	assert.False(t, cfg.Enabled)

	t.Run("tracer is a usable no-op", func(t *testing.T) {
		tracer := tp.Tracer("test-tracer")
		require.NotNil(t, tracer)
		_, span := tracer.Start(ctx, "test-span")
		span.End()
	})

	t.Run("force flush is a no-op", func(t *testing.T) {
		assert.NoError(t, tp.ForceFlush(ctx))
	})

	t.Run("shutdown ignores cancelled contexts", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.NoError(t, tp.Shutdown(cancelled))
	})
}

func TestNewTracerProvider_SamplingRatios(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	// Provider construction must accept the whole sampling range even
	// when export is off.
	for _, ratio := range []float64{0.0, 0.5, 1.0} {
		tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
			Enabled:           false,
			CollectorEndpoint: "localhost:14317",
			SamplingRatio:     ratio,
			ServiceName:       "test-service",
		}, logger)
		require.NoError(t, err)
		assert.False(t, tp.IsEnabled())
		assert.NoError(t, tp.Shutdown(ctx))
	}
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	// Needs a collector listening on localhost:14317.
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1.0,
		ServiceName:       "test-service",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.True(t, tp.IsEnabled())

	_, span := tp.Tracer("test").Start(ctx, "test-span")
	span.End()

	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_InvalidEndpoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "invalid-host:99999",
		SamplingRatio:     1.0,
		ServiceName:       "test-service",
	}, zaptest.NewLogger(t, zaptest.Level(zap.ErrorLevel)))
	if err != nil {
		// The gRPC exporter may fail fast on an unreachable endpoint.
		t.Logf("connection error: %v", err)
		return
	}
	_ = tp.Shutdown(context.Background())
}

func TestConfig_ZeroValue(t *testing.T) {
	var cfg telemetry.Config
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.CollectorEndpoint)
	assert.Zero(t, cfg.SamplingRatio)
	assert.Empty(t, cfg.ServiceName)
}

func TestTracerProvider_SpanProfiles(t *testing.T) {
	ctx := context.Background()

	t.Run("off by default", func(t *testing.T) {
		tp := newDisabledTracerProvider(t, "test-service")
		assert.False(t, tp.IsSpanProfilesEnabled())
		assert.NoError(t, tp.Shutdown(ctx))
	})

	t.Run("enable is a no-op on a disabled provider", func(t *testing.T) {
		tp := newDisabledTracerProvider(t, "test-service")
		assert.NoError(t, tp.EnableSpanProfiles())
		assert.False(t, tp.IsSpanProfilesEnabled())
		assert.NoError(t, tp.Shutdown(ctx))
	})

	t.Run("concurrent enable and query stay consistent", func(t *testing.T) {
		tp := newDisabledTracerProvider(t, "test-service-concurrent")
		defer func() { _ = tp.Shutdown(ctx) }()

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = tp.EnableSpanProfiles()
				_ = tp.IsSpanProfilesEnabled()
			}()
		}
		wg.Wait()

		assert.False(t, tp.IsSpanProfilesEnabled())
	})
}

func TestTracerProvider_SpanProfilesIntegration(t *testing.T) {
	// Needs a collector listening on localhost:14317.
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1.0,
		ServiceName:       "test-service-span-profiles",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer func() { _ = tp.Shutdown(ctx) }()

	assert.False(t, tp.IsSpanProfilesEnabled())

	require.NoError(t, tp.EnableSpanProfiles())
	assert.True(t, tp.IsSpanProfilesEnabled())

	// Second call is idempotent.
	require.NoError(t, tp.EnableSpanProfiles())
	assert.True(t, tp.IsSpanProfilesEnabled())

	// Spans started through the wrapped provider carry span_id as a
	// pprof label; keep the span alive long enough for a CPU sample.
	_, span := tp.Tracer("test-span-profiles").Start(ctx, "test-span-with-profile")
	time.Sleep(15 * time.Millisecond)
	span.End()

	assert.NoError(t, tp.ForceFlush(ctx))
}
