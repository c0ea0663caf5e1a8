// Package telemetry provides OpenTelemetry metrics for the refpin server.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds the telemetry initialization parameters.
type Config struct {
	ServiceName string
	Enabled     bool
}

// Providers bundles the OpenTelemetry providers created at startup.
// When telemetry is disabled, Providers is inert and all methods are no-ops.
type Providers struct {
	serviceName string
	enabled     bool

	meterProvider *sdkmetric.MeterProvider

	// Meter creates instruments for custom metrics.
	Meter metric.Meter
}

// Init sets up the OpenTelemetry metrics pipeline with a Prometheus exporter.
// Metrics become scrapeable via promhttp once the HTTP server mounts it.
func Init(_ context.Context, cfg *Config) (*Providers, error) {
	p := &Providers{
		serviceName: cfg.ServiceName,
		enabled:     cfg.Enabled,
	}
	if !cfg.Enabled {
		return p, nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	)
	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(p.meterProvider)
	p.Meter = p.meterProvider.Meter(cfg.ServiceName)

	return p, nil
}

// IsEnabled reports whether telemetry was enabled at init time.
func (p *Providers) IsEnabled() bool {
	return p.enabled
}

// ServiceName returns the service name providers were initialized with.
func (p *Providers) ServiceName() string {
	return p.serviceName
}

// Shutdown flushes and stops the providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
