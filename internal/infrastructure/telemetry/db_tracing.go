package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig configures database span generation.
type DBTracingConfig struct {
	Enabled bool
	// LogFullSQL includes full SQL statements with parameters in spans.
	// Keep off outside development.
	LogFullSQL bool
	// SlowQueryThresh marks queries slower than this on the span (default 200ms).
	SlowQueryThresh time.Duration
	// DBSystem names the backing database (default "postgresql").
	DBSystem string
	// WithoutVariables strips bind parameters from the recorded SQL.
	WithoutVariables bool
}

// DefaultDBTracingConfig returns the default, parameter-stripping configuration.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:          false,
		LogFullSQL:       false,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}
}

// DBTracingPlugin layers slow-query and error annotations on top of the
// otelgorm spans.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{
		config: cfg,
		logger: logger,
	}
}

// RegisterOtelGorm installs the otelgorm plugin plus timing callbacks for
// slow query detection and error marking. No-op when tracing is disabled.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(p.config.DBSystem),
	}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := p.registerBeforeCallbacks(db); err != nil {
		return err
	}
	if err := p.registerSlowQueryCallback(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)

	return nil
}

func (p *DBTracingPlugin) registerBeforeCallbacks(db *gorm.DB) error {
	before := func(db *gorm.DB) {
		if db.Statement.Context != nil {
			db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
		}
	}

	registrations := []func() error{
		func() error { return db.Callback().Create().Before("gorm:create").Register("otel_timing:before_create", before) },
		func() error { return db.Callback().Query().Before("gorm:query").Register("otel_timing:before_query", before) },
		func() error { return db.Callback().Update().Before("gorm:update").Register("otel_timing:before_update", before) },
		func() error { return db.Callback().Delete().Before("gorm:delete").Register("otel_timing:before_delete", before) },
		func() error { return db.Callback().Row().Before("gorm:row").Register("otel_timing:before_row", before) },
		func() error { return db.Callback().Raw().Before("gorm:raw").Register("otel_timing:before_raw", before) },
	}
	for _, reg := range registrations {
		if err := reg(); err != nil {
			return err
		}
	}
	return nil
}

func (p *DBTracingPlugin) registerSlowQueryCallback(db *gorm.DB) error {
	registrations := []func() error{
		func() error {
			return db.Callback().Create().After("gorm:create").Register("otel_slow_query:create", p.slowQueryCallback)
		},
		func() error {
			return db.Callback().Query().After("gorm:query").Register("otel_slow_query:query", p.slowQueryCallback)
		},
		func() error {
			return db.Callback().Update().After("gorm:update").Register("otel_slow_query:update", p.slowQueryCallback)
		},
		func() error {
			return db.Callback().Delete().After("gorm:delete").Register("otel_slow_query:delete", p.slowQueryCallback)
		},
		func() error { return db.Callback().Row().After("gorm:row").Register("otel_slow_query:row", p.slowQueryCallback) },
		func() error { return db.Callback().Raw().After("gorm:raw").Register("otel_slow_query:raw", p.slowQueryCallback) },
	}
	for _, reg := range registrations {
		if err := reg(); err != nil {
			return err
		}
	}
	return nil
}

// slowQueryCallback runs after each operation and annotates the active span.
func (p *DBTracingPlugin) slowQueryCallback(db *gorm.DB) {
	annotateQuerySpan(db, p.config.SlowQueryThresh)
}

// annotateQuerySpan adds rows affected, table name, error status and
// slow-query markers to the span on the statement context, if any.
func annotateQuerySpan(db *gorm.DB, slowThresh time.Duration) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	// ErrRecordNotFound is an expected outcome, not a span error
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if startTime, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(startTime)
		if elapsed > slowThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", slowThresh.Milliseconds()),
			))
		}
	}
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// WithQueryStartTime stamps the query start time onto the context for later
// slow-query elapsed time calculation.
func WithQueryStartTime(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryStartTimeKey, time.Now())
}

// DBTracingCallback is a standalone before/after callback pair for query
// timing, usable without the otelgorm plugin.
type DBTracingCallback struct {
	slowQueryThresh time.Duration
}

// NewDBTracingCallback creates a timing callback with the given slow threshold.
func NewDBTracingCallback(slowQueryThresh time.Duration) *DBTracingCallback {
	return &DBTracingCallback{
		slowQueryThresh: slowQueryThresh,
	}
}

// BeforeCallback records the query start time on the statement context.
func (c *DBTracingCallback) BeforeCallback(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// AfterCallback annotates the active span with query outcome attributes.
func (c *DBTracingCallback) AfterCallback(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}
	annotateQuerySpan(db, c.slowQueryThresh)
}

// RegisterCallbacks installs the before and after callbacks on a GORM DB.
func (c *DBTracingCallback) RegisterCallbacks(db *gorm.DB) error {
	registrations := []func() error{
		func() error {
			return db.Callback().Create().Before("gorm:create").Register("otel_timing:before_create", c.BeforeCallback)
		},
		func() error {
			return db.Callback().Query().Before("gorm:query").Register("otel_timing:before_query", c.BeforeCallback)
		},
		func() error {
			return db.Callback().Update().Before("gorm:update").Register("otel_timing:before_update", c.BeforeCallback)
		},
		func() error {
			return db.Callback().Delete().Before("gorm:delete").Register("otel_timing:before_delete", c.BeforeCallback)
		},
		func() error { return db.Callback().Row().Before("gorm:row").Register("otel_timing:before_row", c.BeforeCallback) },
		func() error { return db.Callback().Raw().Before("gorm:raw").Register("otel_timing:before_raw", c.BeforeCallback) },
		func() error {
			return db.Callback().Create().After("gorm:create").Register("otel_timing:after_create", c.AfterCallback)
		},
		func() error { return db.Callback().Query().After("gorm:query").Register("otel_timing:after_query", c.AfterCallback) },
		func() error {
			return db.Callback().Update().After("gorm:update").Register("otel_timing:after_update", c.AfterCallback)
		},
		func() error {
			return db.Callback().Delete().After("gorm:delete").Register("otel_timing:after_delete", c.AfterCallback)
		},
		func() error { return db.Callback().Row().After("gorm:row").Register("otel_timing:after_row", c.AfterCallback) },
		func() error { return db.Callback().Raw().After("gorm:raw").Register("otel_timing:after_raw", c.AfterCallback) },
	}
	for _, reg := range registrations {
		if err := reg(); err != nil {
			return err
		}
	}
	return nil
}
