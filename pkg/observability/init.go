package observability

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	promclient "github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// meterName is the instrumentation scope for hierpart instruments.
const meterName = "hierpart"

// Config selects logging and metrics behavior.
type Config struct {
	// ServiceName is attached to the OTel resource.
	ServiceName string
	// ServiceVersion is attached to the OTel resource.
	ServiceVersion string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is "text" or "json".
	LogFormat string
}

// Providers holds the initialized observability handles.
type Providers struct {
	// Meter is the named meter for creating instruments.
	Meter metric.Meter

	// Logger is the structured logger, writing to stderr.
	Logger *slog.Logger

	// Registry is the Prometheus registry metrics are exported through;
	// serve it with promhttp to expose a scrape endpoint.
	Registry *promclient.Registry

	// Shutdown flushes pending telemetry. Must be called before process exit.
	Shutdown func(ctx context.Context) error
}

// Init initializes structured logging and a metrics pipeline exported through
// a Prometheus registry.
func Init(cfg Config) (Providers, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	))
	if err != nil {
		return Providers{}, fmt.Errorf("build resource: %w", err)
	}

	registry := promclient.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return Providers{}, fmt.Errorf("build prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	return Providers{
		Meter:    provider.Meter(meterName),
		Logger:   NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat),
		Registry: registry,
		Shutdown: provider.Shutdown,
	}, nil
}
