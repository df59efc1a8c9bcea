package httpclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ruwler/ruwler-go/errors"
	"github.com/ruwler/ruwler-go/logger"
	"github.com/ruwler/ruwler-go/observability"
)

// Client sends requests to the Ruwler API. It is safe for concurrent use;
// calls are serialized over one transport handle.
type Client struct {
	mu      sync.Mutex
	cfg     Config
	cred    Credential
	builder *Builder
	log     logger.Sink
	inst    *observability.Instrumentation
	handle  *handle
	closed  bool
}

// Option configures a Client at construction.
type Option func(*Client)

// WithLogger sets the log sink. Nil discards logs.
func WithLogger(s logger.Sink) Option {
	return func(c *Client) { c.log = logger.OrNop(s) }
}

// WithInstrumentation sets the tracer and meter used for every call.
func WithInstrumentation(inst *observability.Instrumentation) Option {
	return func(c *Client) {
		if inst != nil {
			c.inst = inst
		}
	}
}

// New validates cfg and creates a Client. No connection is opened until
// the first Send.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Transport = cfg.Transport.clone()

	c := &Client{
		cfg:  cfg,
		cred: NewCredential(cfg.APIKey, cfg.AuthMode),
		log:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.inst == nil {
		c.inst = observability.NewInstrumentation(nil, nil)
	}
	c.builder = NewBuilder(c.cfg, c.cred, c.log)
	return c, nil
}

// Config returns a copy of the effective configuration.
func (c *Client) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg := c.cfg
	cfg.Transport = cfg.Transport.clone()
	return cfg
}

// Credential returns the credential in use.
func (c *Client) Credential() Credential {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cred
}

// Builder returns the request builder bound to the current credential.
func (c *Client) Builder() *Builder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builder
}

// SetCredential replaces the credential for subsequent calls.
func (c *Client) SetCredential(key string, mode AuthMode) error {
	cred := NewCredential(key, mode)
	if _, err := cred.Header(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cred = cred
	c.cfg.APIKey = key
	c.cfg.AuthMode = mode
	c.builder = NewBuilder(c.cfg, c.cred, c.log)
	return nil
}

// SetLogger replaces the log sink.
func (c *Client) SetLogger(s logger.Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = logger.OrNop(s)
	c.builder = NewBuilder(c.cfg, c.cred, c.log)
	if c.handle != nil {
		c.handle.client.SetLogger(newRestyLogger(c.log))
	}
}

// Send builds and executes one request. A 2xx/3xx answer with a JSON (or
// empty) body yields a Response; everything else yields a typed error.
func (c *Client) Send(ctx context.Context, method, path string, body any, filters Filters, opts ...CallOption) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out, err := c.builder.Build(method, path, body, filters)
	if err != nil {
		return nil, err
	}

	ctx, end := c.inst.Start(ctx, out.Method, path)
	resp, err := c.execute(ctx, out, newCallOptions(opts))

	outcome := observability.Outcome{RequestID: out.RequestID(), Err: err}
	if resp != nil {
		outcome.Status = resp.StatusCode
	} else if e, ok := errors.As(err); ok {
		outcome.Status = e.StatusCode
		outcome.ErrorCode = string(e.Code)
	}
	end(outcome)
	return resp, err
}

// Do executes a request built elsewhere, for example by a Builder bound
// to a different credential.
func (c *Client) Do(ctx context.Context, out *OutboundRequest, opts ...CallOption) (*Response, error) {
	if out == nil {
		return nil, errors.MissingArgument("request")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.execute(ctx, out, newCallOptions(opts))
}

func (c *Client) execute(ctx context.Context, out *OutboundRequest, call callOptions) (*Response, error) {
	h, err := c.acquire()
	if err != nil {
		return nil, err
	}
	h.reset(c.cfg)
	req := h.configure(ctx, c.cfg, out, call)

	start := time.Now()
	resp, err := req.Execute(out.Method, out.URL)
	fields := logger.Fields(
		logger.FieldMethod, out.Method,
		logger.FieldURL, sanitizeURL(out.URL),
		logger.FieldRequestID, out.RequestID(),
	)
	if err != nil {
		c.log.Log(logger.LevelWarn, "request failed", logger.MergeWithDuration(fields, time.Since(start)),
			logger.Fields(logger.FieldError, err.Error()))
		return nil, errors.Connection(err)
	}

	status := resp.StatusCode()
	if status == 0 {
		return nil, errors.Connection(fmt.Errorf("no HTTP status received from %s", sanitizeURL(out.URL)))
	}

	raw := resp.Body()
	data, err := decodeBody(c.cfg.Format, raw)
	if err != nil {
		c.log.Log(logger.LevelWarn, "response body is not JSON", fields,
			logger.Fields(logger.FieldStatus, status, logger.FieldError, err.Error()))
		return nil, errors.Connection(fmt.Errorf("invalid JSON in response (HTTP %d): %w", status, err)).
			WithDetail("status", status)
	}

	c.log.Log(logger.LevelInfo, "response received", logger.MergeWithDuration(fields, time.Since(start)),
		logger.Fields(logger.FieldStatus, status, logger.FieldBody, redactValue(data)))

	if err := classify(status, data); err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: status,
		Header:     resp.Header().Clone(),
		Data:       data,
		raw:        raw,
	}, nil
}

// acquire returns the transport handle, creating it on first use.
func (c *Client) acquire() (*handle, error) {
	if c.closed {
		return nil, errors.Configuration("client is closed")
	}
	if c.handle == nil {
		h, err := newHandle(c.cfg, c.log)
		if err != nil {
			return nil, errors.Configuration("could not create transport handle").WithCause(err)
		}
		c.handle = h
	}
	return c.handle, nil
}

// Close releases idle connections. Later calls fail with a configuration error.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle != nil {
		c.handle.close()
		c.handle = nil
	}
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Logger returns the log sink in use.
func (c *Client) Logger() logger.Sink {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log
}
