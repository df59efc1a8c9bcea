package cli

import (
	"context"
	"fmt"

	"github.com/ruwler/ruwler-go"
	"github.com/ruwler/ruwler-go/component"
	"github.com/ruwler/ruwler-go/config"
	"github.com/ruwler/ruwler-go/logger"
)

// session holds what one command invocation needs: the running client and
// the components that must be stopped on exit.
type session struct {
	client   *ruwler.Client
	registry *component.Registry
}

func (o *Options) loaderOptions() []config.LoaderOption {
	var lo []config.LoaderOption
	if o.ConfigFile != "" {
		lo = append(lo, config.WithConfigFile(o.ConfigFile))
	}
	if o.EnvFile != "" {
		lo = append(lo, config.WithEnvFile(o.EnvFile))
	}
	overrides := map[string]string{
		"host":               o.Host,
		"format":             o.Format,
		"auth_mode":          o.AuthMode,
		"logging.level":      o.LogLevel,
		"telemetry.endpoint": o.OTLPEndpoint,
	}
	for k, v := range overrides {
		if v != "" {
			lo = append(lo, config.WithOverride(k, v))
		}
	}
	if o.Debug {
		lo = append(lo, config.WithOverride("debug", true))
	}
	return lo
}

// open loads settings, starts telemetry and the client, in that order.
func (o *Options) open(ctx context.Context) (*session, error) {
	settings, err := config.Load(o.loaderOptions()...)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(&settings.Logging, settings.Telemetry.ServiceName)
	reg := component.NewRegistry(log.WithComponent("cli"))

	tel := newTelemetry(settings.Telemetry)
	client := ruwler.NewComponent(func() (*ruwler.Client, error) {
		return ruwler.NewFromSettings(settings,
			ruwler.WithLogger(log),
			ruwler.WithInstrumentation(tel.instrumentation()),
		)
	})
	for _, c := range []component.Component{tel, client} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	if err := reg.StartAll(ctx); err != nil {
		_ = reg.StopAll(ctx)
		return nil, err
	}
	return &session{client: client.Client(), registry: reg}, nil
}

func (s *session) close(ctx context.Context) error {
	if err := s.registry.StopAll(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
