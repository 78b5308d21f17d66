package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// serviceResource merges the default SDK resource with the service
// identity. Shared by the metric, trace, and log pipelines so exported
// signals correlate on the same service.name.
func serviceResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// shutdownPipeline runs a provider shutdown bounded to shutdownTimeout,
// logging the outcome. name is the human-readable pipeline name used in
// log lines and error text, e.g. "meter provider".
func shutdownPipeline(ctx context.Context, logger *zap.Logger, name string, shutdown func(context.Context) error) error {
	logger.Info("Shutting down OpenTelemetry pipeline", zap.String("pipeline", name))

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := shutdown(shutdownCtx); err != nil {
		logger.Error("Telemetry pipeline shutdown failed", zap.String("pipeline", name), zap.Error(err))
		return fmt.Errorf("failed to shutdown %s: %w", name, err)
	}

	logger.Info("Telemetry pipeline shutdown complete", zap.String("pipeline", name))
	return nil
}
