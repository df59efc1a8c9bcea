package ruwler

import (
	"context"
	"time"

	"github.com/ruwler/ruwler-go/config"
	"github.com/ruwler/ruwler-go/errors"
	"github.com/ruwler/ruwler-go/httpclient"
	"github.com/ruwler/ruwler-go/logger"
	"github.com/ruwler/ruwler-go/observability"
)

// ComponentName tags every log entry written by the client.
const ComponentName = "ruwler"

// Client exposes the Ruwler REST resources as method calls. All resources
// share one request pipeline, so a Client serializes its calls.
type Client struct {
	http      *httpclient.Client
	resources map[string]*ReadOnly

	Tokens           *Collection
	Projects         *Projects
	Campaigns        *Reported
	Channels         *Collection
	CampaignChannels *Collection
	CampaignMessages *Collection
	Providers        *ReadOnly
	Templates        *Reported
	Messages         *ReadOnly
	Contacts         *ReadOnly
	Transactional    *Transactional
	Mail             *Mail
}

type options struct {
	configure []func(*httpclient.Config)
	log       logger.Sink
	inst      *observability.Instrumentation
}

// Option customizes a Client at construction.
type Option func(*options)

// WithLogger sets the log sink. Entries are tagged with the "ruwler"
// component.
func WithLogger(s logger.Sink) Option {
	return func(o *options) { o.log = s }
}

// WithInstrumentation sets the tracer and meter recorded for every call.
func WithInstrumentation(inst *observability.Instrumentation) Option {
	return func(o *options) { o.inst = inst }
}

// WithEndpoint points the client at another API host.
func WithEndpoint(scheme, host string, port int) Option {
	return withConfig(func(c *httpclient.Config) {
		c.Scheme, c.Host, c.Port = scheme, host, port
	})
}

// WithFormat selects the content format sent in Content-Type and Accept.
func WithFormat(f httpclient.Format) Option {
	return withConfig(func(c *httpclient.Config) { c.Format = f })
}

// WithAuthMode selects how the credential is rendered in Authorization.
func WithAuthMode(m httpclient.AuthMode) Option {
	return withConfig(func(c *httpclient.Config) { c.AuthMode = m })
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return withConfig(func(c *httpclient.Config) { c.Timeout = d })
}

// WithDebug turns on transport-level request and response dumps.
func WithDebug(debug bool) Option {
	return withConfig(func(c *httpclient.Config) { c.Debug = debug })
}

// WithTransportOptions replaces the transport overrides.
func WithTransportOptions(t httpclient.TransportOptions) Option {
	return withConfig(func(c *httpclient.Config) { c.Transport = t })
}

func withConfig(fn func(*httpclient.Config)) Option {
	return func(o *options) { o.configure = append(o.configure, fn) }
}

// New creates a client authenticating with apiKey and the default
// configuration. An empty key fails with a MISSING_ARGUMENT error.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := httpclient.DefaultConfig()
	cfg.APIKey = apiKey
	return NewWithConfig(cfg, opts...)
}

// NewFromOptions creates a client from an option map using the keys
// scheme, host, port, timeout, debug, format, auth_mode and
// transport_options. Unknown keys are ignored. A non-empty apiKey wins over
// an api_key entry.
func NewFromOptions(apiKey string, options map[string]any, opts ...Option) (*Client, error) {
	cfg := httpclient.DefaultConfig()
	if err := config.FromMap(options, &cfg); err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	return NewWithConfig(cfg, opts...)
}

// NewFromEnv loads ruwler.yml, .env files and RUWLER_* variables and
// builds a client from them.
func NewFromEnv(loadOpts []config.LoaderOption, opts ...Option) (*Client, error) {
	settings, err := config.Load(loadOpts...)
	if err != nil {
		return nil, err
	}
	return NewFromSettings(settings, opts...)
}

// NewFromSettings builds a client from loaded settings. Unless WithLogger
// is given, logs go to a zerolog logger configured by settings.Logging.
func NewFromSettings(s *config.Settings, opts ...Option) (*Client, error) {
	if s == nil {
		return nil, errors.MissingArgument("settings")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	log := logger.New(&s.Logging, s.Telemetry.ServiceName)
	return NewWithConfig(s.Client, append([]Option{WithLogger(log)}, opts...)...)
}

// NewWithConfig creates a client from a full configuration.
func NewWithConfig(cfg httpclient.Config, opts ...Option) (*Client, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	for _, fn := range o.configure {
		fn(&cfg)
	}

	hc, err := httpclient.New(cfg,
		httpclient.WithLogger(logger.Tagged(o.log, ComponentName)),
		httpclient.WithInstrumentation(o.inst),
	)
	if err != nil {
		return nil, err
	}
	c := &Client{http: hc}
	c.bind()
	return c, nil
}

// Send issues an arbitrary request through the shared pipeline. Resource
// methods are thin wrappers around it.
func (c *Client) Send(ctx context.Context, method, path string, body any, filters httpclient.Filters, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	return c.http.Send(ctx, method, path, body, filters, opts...)
}

// HTTP returns the underlying pipeline.
func (c *Client) HTTP() *httpclient.Client { return c.http }

// Config returns a copy of the effective configuration.
func (c *Client) Config() httpclient.Config { return c.http.Config() }

// SetAPIKey replaces the credential, keeping the current auth mode.
func (c *Client) SetAPIKey(key string) error {
	return c.http.SetCredential(key, c.http.Credential().Mode())
}

// SetCredential replaces both the credential and the auth mode.
func (c *Client) SetCredential(key string, mode httpclient.AuthMode) error {
	return c.http.SetCredential(key, mode)
}

// SetLogger replaces the log sink.
func (c *Client) SetLogger(s logger.Sink) {
	c.http.SetLogger(logger.Tagged(s, ComponentName))
}

// Close releases the transport. Calls made afterwards fail with a
// CONFIGURATION error.
func (c *Client) Close() error { return c.http.Close() }
