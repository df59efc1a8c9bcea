package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/ruwler/ruwler-go/version"
)

// Metric names.
const (
	MetricRequests = "ruwler.client.requests"
	MetricDuration = "ruwler.client.duration"
	MetricInFlight = "ruwler.client.in_flight"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string `yaml:"service_name" mapstructure:"service_name"`
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	Environment    string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetShortVersion(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs a global meter provider exporting over OTLP/HTTP.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the client's instruments.
type Metrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

// NewMetrics creates the client instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requests, err := meter.Int64Counter(MetricRequests,
		metric.WithDescription("Requests sent to the Ruwler API"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRequests, err)
	}

	duration, err := meter.Float64Histogram(MetricDuration,
		metric.WithDescription("Duration of Ruwler API calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDuration, err)
	}

	inFlight, err := meter.Int64UpDownCounter(MetricInFlight,
		metric.WithDescription("Ruwler API calls currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricInFlight, err)
	}

	return &Metrics{requests: requests, duration: duration, inFlight: inFlight}, nil
}

// RecordStart marks a call as in flight.
func (m *Metrics) RecordStart(ctx context.Context) {
	m.inFlight.Add(ctx, 1)
}

// RecordEnd records a finished call. code is empty on success.
func (m *Metrics) RecordEnd(ctx context.Context, method string, status int, code string, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.Int(AttrStatus, status),
		attribute.String(AttrErrorCode, code),
	)
	m.inFlight.Add(ctx, -1)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}
