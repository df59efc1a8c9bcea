// Package observability wires OpenTelemetry tracing and metrics into the
// Ruwler client.
//
// Every call made through httpclient.Client is wrapped by an
// Instrumentation: one client span named "ruwler.send", one increment of
// ruwler.client.requests and one ruwler.client.duration sample. With no
// providers configured the global otel providers are used, which are
// no-ops until an application installs real ones.
//
// Exporting:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("ruwler-cli"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("ruwler-cli"))
//	defer mp.Shutdown(ctx)
package observability
