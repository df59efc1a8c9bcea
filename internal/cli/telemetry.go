package cli

import (
	"context"
	"errors"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ruwler/ruwler-go/component"
	"github.com/ruwler/ruwler-go/config"
	"github.com/ruwler/ruwler-go/observability"
)

// telemetry exports traces and metrics over OTLP/HTTP while a command
// runs. It does nothing when no endpoint is configured.
type telemetry struct {
	cfg config.Telemetry
	tp  *sdktrace.TracerProvider
	mp  *sdkmetric.MeterProvider
}

func newTelemetry(cfg config.Telemetry) *telemetry {
	return &telemetry{cfg: cfg}
}

func (t *telemetry) Name() string { return "telemetry" }

func (t *telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled() {
		return nil
	}
	tc := observability.DefaultTracerConfig(t.cfg.ServiceName)
	tc.Endpoint, tc.Insecure, tc.SampleRate = t.cfg.Endpoint, t.cfg.Insecure, t.cfg.SampleRate
	tp, err := observability.InitTracer(ctx, tc)
	if err != nil {
		return err
	}

	mc := observability.DefaultMeterConfig(t.cfg.ServiceName)
	mc.Endpoint, mc.Insecure = t.cfg.Endpoint, t.cfg.Insecure
	mp, err := observability.InitMeter(ctx, mc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}
	t.tp, t.mp = tp, mp
	return nil
}

// Stop flushes and shuts down both providers.
func (t *telemetry) Stop(ctx context.Context) error {
	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
	}
	t.tp, t.mp = nil, nil
	return errors.Join(errs...)
}

func (t *telemetry) Health(_ context.Context) component.Health {
	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	if t.cfg.Enabled() && t.tp == nil {
		h.Status, h.Message = component.StatusUnhealthy, "exporter not running"
	}
	return h
}

func (t *telemetry) Describe() component.Description {
	d := component.Description{Name: "OpenTelemetry", Type: "exporter", Details: "disabled"}
	if t.cfg.Enabled() {
		d.Details = "otlp/http " + t.cfg.Endpoint
	}
	return d
}

// instrumentation returns the client instrumentation backed by the running
// providers, or the global (no-op by default) ones when export is off.
func (t *telemetry) instrumentation() *observability.Instrumentation {
	if t.tp == nil || t.mp == nil {
		return observability.NewInstrumentation(nil, nil)
	}
	return observability.NewInstrumentation(t.tp, t.mp)
}
