package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// ServiceVersion is reported on every exported resource
const ServiceVersion = "1.0.0"

const shutdownTimeout = 10 * time.Second

// Collector is the OTLP gRPC endpoint shared by traces, metrics and logs
type Collector struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

func (c Collector) resource() (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(c.ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// lifecycle holds the shutdown hook of an SDK provider. A zero lifecycle
// belongs to a disabled signal and shuts down as a no-op.
type lifecycle struct {
	signal   string
	logger   *zap.Logger
	shutdown func(context.Context) error
}

func (l lifecycle) enabled() bool { return l.shutdown != nil }

func (l lifecycle) stop(ctx context.Context) error {
	if l.shutdown == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := l.shutdown(ctx); err != nil {
		l.logger.Error("OpenTelemetry provider shutdown failed", zap.String("signal", l.signal), zap.Error(err))
		return fmt.Errorf("failed to shutdown %s provider: %w", l.signal, err)
	}
	l.logger.Info("OpenTelemetry provider stopped", zap.String("signal", l.signal))
	return nil
}
