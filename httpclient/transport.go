package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/http/httpproxy"

	"github.com/ruwler/ruwler-go/logger"
)

// handle is the reusable transport. It is created on first use and keeps
// its connection pool for the life of the Client. Per-call settings live
// on the handle and are cleared by reset before every request.
type handle struct {
	client    *resty.Client
	transport *http.Transport
}

func newHandle(cfg Config, log logger.Sink) (*handle, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	opts := cfg.Transport

	tlsCfg, err := opts.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}
	if opts.Proxy != "" {
		proxy, err := proxyFunc(opts.Proxy, opts.NoProxy)
		if err != nil {
			return nil, err
		}
		transport.Proxy = proxy
	}
	transport.DisableKeepAlives = opts.DisableKeepAlives

	client := resty.NewWithClient(&http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	})
	client.SetLogger(newRestyLogger(log))
	client.SetAllowGetMethodPayload(true)
	if cfg.Debug {
		client.SetDebug(true)
		client.OnRequestLog(redactRequestLog)
		client.OnResponseLog(redactResponseLog)
	}
	return &handle{client: client, transport: transport}, nil
}

// reset clears everything a previous call may have set on the handle.
func (h *handle) reset(cfg Config) {
	h.client.Header = http.Header{}
	h.client.QueryParam = url.Values{}
	h.client.FormData = url.Values{}
	h.client.Cookies = nil
	h.client.SetTimeout(cfg.Timeout)
	h.client.GetClient().CheckRedirect = nil
}

// configure applies the built request, then the transport options and the
// per-call options, so later sources override earlier ones.
func (h *handle) configure(ctx context.Context, cfg Config, out *OutboundRequest, call callOptions) *resty.Request {
	for name, values := range out.Header {
		for _, v := range values {
			h.client.Header.Add(name, v)
		}
	}

	opts := cfg.Transport
	if opts.UserAgent != "" {
		h.client.SetHeader(HeaderUserAgent, opts.UserAgent)
	}
	for name, v := range opts.Headers {
		h.client.SetHeader(name, v)
	}
	if opts.Timeout > 0 {
		h.client.SetTimeout(opts.Timeout)
	}
	switch {
	case opts.MaxRedirects < 0:
		h.client.SetRedirectPolicy(resty.NoRedirectPolicy())
	case opts.MaxRedirects > 0:
		h.client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.MaxRedirects))
	}

	for name, v := range call.headers {
		h.client.SetHeader(name, v)
	}
	if call.timeout > 0 {
		h.client.SetTimeout(call.timeout)
	}

	req := h.client.R().SetContext(ctx)
	if out.Body != nil {
		req.SetBody(out.Body)
	}
	return req
}

func (h *handle) close() {
	h.client.GetClient().CloseIdleConnections()
}

// proxyFunc resolves the proxy per request, honoring noProxy.
func proxyFunc(proxy, noProxy string) (func(*http.Request) (*url.URL, error), error) {
	u, err := url.Parse(proxy)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy URL %q", proxy)
	}
	resolve := (&httpproxy.Config{
		HTTPProxy:  proxy,
		HTTPSProxy: proxy,
		NoProxy:    noProxy,
	}).ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return resolve(req.URL)
	}, nil
}

// callOptions are per-call overrides. They never outlive the call.
type callOptions struct {
	headers map[string]string
	timeout time.Duration
}

// CallOption customizes a single Send.
type CallOption func(*callOptions)

// WithHeader sets a header for one call, overriding built and configured values.
func WithHeader(name, value string) CallOption {
	return func(o *callOptions) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[name] = value
	}
}

// WithCallTimeout bounds one call.
func WithCallTimeout(d time.Duration) CallOption {
	return func(o *callOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func newCallOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// restyLogger forwards resty's printf-style logging to a Sink.
type restyLogger struct {
	sink logger.Sink
}

func newRestyLogger(s logger.Sink) restyLogger {
	return restyLogger{sink: logger.OrNop(s)}
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.sink.Log(logger.LevelError, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.sink.Log(logger.LevelWarn, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.sink.Log(logger.LevelDebug, strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func redactRequestLog(rl *resty.RequestLog) error {
	if rl.Header.Get(HeaderAuthorization) != "" {
		rl.Header.Set(HeaderAuthorization, redacted)
	}
	rl.Body = redactLogBody(rl.Body)
	return nil
}

// redactResponseLog hides credentials the API hands back, such as the
// login token.
func redactResponseLog(rl *resty.ResponseLog) error {
	rl.Body = redactLogBody(rl.Body)
	return nil
}
