package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Config holds instrumentation settings.
type Config struct {
	// Enabled turns metric collection on. Off by default for stdio-only
	// runs where nothing scrapes the metrics endpoint.
	Enabled bool

	// ServiceName identifies this service in exported metrics.
	ServiceName string

	// ServiceVersion is the build version.
	ServiceVersion string
}

// DefaultConfig returns the default instrumentation configuration.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "drivescout",
		ServiceVersion: "dev",
	}
}

// Provider owns the meter provider and the Prometheus exporter feeding the
// metrics endpoint.
type Provider struct {
	meterProvider *sdkmetric.MeterProvider
	metrics       *Metrics
	enabled       bool
}

// NewProvider creates an instrumentation provider. With Enabled false it
// returns an inert provider whose Metrics() is nil, so callers can wire it
// unconditionally.
func NewProvider(_ context.Context, cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}

	exporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)

	metrics, err := NewMetrics(mp.Meter(cfg.ServiceName))
	if err != nil {
		shutdownErr := mp.Shutdown(context.Background())
		if shutdownErr != nil {
			return nil, fmt.Errorf("failed to create metrics: %w (shutdown also failed: %v)", err, shutdownErr)
		}
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	return &Provider{
		meterProvider: mp,
		metrics:       metrics,
		enabled:       true,
	}, nil
}

// Enabled reports whether metrics are being collected.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Metrics returns the metric recorders, or nil when disabled.
func (p *Provider) Metrics() *Metrics {
	return p.metrics
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
