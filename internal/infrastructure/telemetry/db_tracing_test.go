package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type queryRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100"`
	CreatedAt time.Time
}

func openTracingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&queryRecord{}))
	return db
}

func newRecordingTracer(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, recorder
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL, "full SQL logging must be off by default")
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
	assert.True(t, cfg.WithoutVariables, "bind parameters must be stripped by default")
}

func TestNewDBTracingPlugin(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	require.NotNil(t, plugin)
	assert.Equal(t, cfg, plugin.config)
}

func TestDBTracingPlugin_RegisterOtelGorm(t *testing.T) {
	t.Run("no-op when disabled", func(t *testing.T) {
		plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())
		assert.NoError(t, plugin.RegisterOtelGorm(openTracingTestDB(t)))
	})

	t.Run("registers with variables stripped", func(t *testing.T) {
		plugin := NewDBTracingPlugin(DBTracingConfig{
			Enabled:          true,
			SlowQueryThresh:  200 * time.Millisecond,
			DBSystem:         "sqlite",
			WithoutVariables: true,
		}, zap.NewNop())
		assert.NoError(t, plugin.RegisterOtelGorm(openTracingTestDB(t)))
	})

	t.Run("registers with full SQL", func(t *testing.T) {
		plugin := NewDBTracingPlugin(DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      true,
			SlowQueryThresh: 200 * time.Millisecond,
			DBSystem:        "sqlite",
		}, zap.NewNop())
		assert.NoError(t, plugin.RegisterOtelGorm(openTracingTestDB(t)))
	})

	t.Run("second registration fails on duplicate callbacks", func(t *testing.T) {
		db := openTracingTestDB(t)
		plugin := NewDBTracingPlugin(DBTracingConfig{
			Enabled:          true,
			SlowQueryThresh:  200 * time.Millisecond,
			DBSystem:         "sqlite",
			WithoutVariables: true,
		}, zap.NewNop())

		require.NoError(t, plugin.RegisterOtelGorm(db))
		assert.Error(t, plugin.RegisterOtelGorm(db))
	})
}

func TestDBTracingCallback_AfterCallback(t *testing.T) {
	t.Run("records rows affected", func(t *testing.T) {
		db := openTracingTestDB(t)
		tp, recorder := newRecordingTracer(t)

		ctx, span := tp.Tracer("test").Start(context.Background(), "rows-affected")
		db = db.WithContext(ctx)

		records := []queryRecord{{Name: "a"}, {Name: "b"}, {Name: "c"}}
		result := db.Create(&records)
		require.NoError(t, result.Error)

		callback := NewDBTracingCallback(200 * time.Millisecond)
		callback.AfterCallback(result.Statement.DB)
		span.End()

		spans := recorder.Ended()
		require.NotEmpty(t, spans)

		foundRows := false
		for _, attr := range spans[0].Attributes() {
			if attr.Key == "db.rows_affected" {
				foundRows = true
				assert.Equal(t, int64(3), attr.Value.AsInt64())
			}
		}
		assert.True(t, foundRows, "db.rows_affected attribute should be present")
	})

	t.Run("records table name", func(t *testing.T) {
		db := openTracingTestDB(t)
		tp, recorder := newRecordingTracer(t)

		ctx, span := tp.Tracer("test").Start(context.Background(), "table-name")
		db = db.WithContext(ctx)

		result := db.Create(&queryRecord{Name: "x"})
		require.NoError(t, result.Error)

		NewDBTracingCallback(200 * time.Millisecond).AfterCallback(result.Statement.DB)
		span.End()

		spans := recorder.Ended()
		require.NotEmpty(t, spans)

		for _, attr := range spans[0].Attributes() {
			if attr.Key == "db.sql.table" {
				assert.Equal(t, "query_records", attr.Value.AsString())
			}
		}
	})

	t.Run("record-not-found is not a span error", func(t *testing.T) {
		db := openTracingTestDB(t)
		tp, recorder := newRecordingTracer(t)

		ctx, span := tp.Tracer("test").Start(context.Background(), "not-found")
		db = db.WithContext(ctx)

		var rec queryRecord
		tx := db.First(&rec, 99999)

		NewDBTracingCallback(200 * time.Millisecond).AfterCallback(tx)
		span.End()

		spans := recorder.Ended()
		require.NotEmpty(t, spans)
		assert.NotEqual(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("marks slow queries with event", func(t *testing.T) {
		db := openTracingTestDB(t)
		tp, recorder := newRecordingTracer(t)

		ctx, span := tp.Tracer("test").Start(context.Background(), "slow-query")
		ctx = WithQueryStartTime(ctx)
		time.Sleep(time.Millisecond)

		db = db.WithContext(ctx)
		var rec queryRecord
		db.First(&rec)

		// 1ns threshold guarantees the slow path
		NewDBTracingCallback(time.Nanosecond).AfterCallback(db.Statement.DB)
		span.End()

		spans := recorder.Ended()
		require.NotEmpty(t, spans)

		for _, event := range spans[0].Events() {
			if event.Name == "slow_query_warning" {
				for _, attr := range event.Attributes {
					if attr.Key == "duration_ms" {
						assert.Greater(t, attr.Value.AsInt64(), int64(0))
					}
				}
			}
		}
	})
}

func TestDBTracingCallback_RegisterCallbacks(t *testing.T) {
	db := openTracingTestDB(t)
	callback := NewDBTracingCallback(200 * time.Millisecond)

	assert.NoError(t, callback.RegisterCallbacks(db))
}

func TestSlowQueryCallback_NoActiveSpan(t *testing.T) {
	plugin := NewDBTracingPlugin(DBTracingConfig{
		Enabled:          true,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "sqlite",
		WithoutVariables: true,
	}, zap.NewNop())

	db := openTracingTestDB(t)

	// No span, no statement context: must not panic
	assert.NotPanics(t, func() {
		plugin.slowQueryCallback(db)
		plugin.slowQueryCallback(db.WithContext(context.Background()))
	})
}

func TestWithQueryStartTime(t *testing.T) {
	ctx := WithQueryStartTime(context.Background())

	startTime, ok := ctx.Value(queryStartTimeKey).(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), startTime, time.Second)
}

func TestDBTracingPlugin_EndToEnd(t *testing.T) {
	db := openTracingTestDB(t)
	tp, recorder := newRecordingTracer(t)

	plugin := NewDBTracingPlugin(DBTracingConfig{
		Enabled:         true,
		LogFullSQL:      true,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "sqlite",
	}, zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))

	ctx, span := tp.Tracer("test").Start(context.Background(), "end-to-end")
	db = db.WithContext(ctx)

	require.NoError(t, db.Create(&queryRecord{Name: "end-to-end"}).Error)

	var found queryRecord
	require.NoError(t, db.First(&found, "name = ?", "end-to-end").Error)
	assert.Equal(t, "end-to-end", found.Name)

	span.End()
	assert.NotEmpty(t, recorder.Ended())
}

func BenchmarkDBTracingCallback(b *testing.B) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		b.Fatal(err)
	}
	if err := db.AutoMigrate(&queryRecord{}); err != nil {
		b.Fatal(err)
	}

	callback := NewDBTracingCallback(200 * time.Millisecond)
	db = db.WithContext(context.Background())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		callback.AfterCallback(db)
	}
}
