package httpclient

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ruwler/ruwler-go/errors"
)

const (
	DefaultScheme   = "https"
	DefaultHost     = "api.ruwler.io"
	DefaultTimeout  = 30 * time.Second
	DefaultFormat   = FormatJSONLD
	DefaultAuthMode = AuthModeAPIKey
)

// Config configures a Client. It is copied on construction and never
// mutated afterwards.
type Config struct {
	// Scheme is "https" or "http". Defaults to https.
	Scheme string `yaml:"scheme" mapstructure:"scheme"`

	// Host is the API host name. A full URL such as "https://host:8443"
	// is also accepted and split into Scheme, Host and Port.
	Host string `yaml:"host" mapstructure:"host"`

	// Port is omitted from the URL when zero.
	Port int `yaml:"port" mapstructure:"port"`

	// Timeout bounds one request, including reading the body. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Debug turns on wire-level logging of requests and responses.
	Debug bool `yaml:"debug" mapstructure:"debug"`

	Format   Format   `yaml:"format" mapstructure:"format"`
	AuthMode AuthMode `yaml:"auth_mode" mapstructure:"auth_mode"`

	// APIKey is the credential. Required.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Transport holds pass-through transport settings applied on every call.
	Transport TransportOptions `yaml:"transport_options" mapstructure:"transport_options"`
}

// TransportOptions are applied after the built request and may override
// any header it carries.
type TransportOptions struct {
	// Headers are set on every request, replacing built values of the same name.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Timeout overrides Config.Timeout when positive.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRedirects limits followed redirects. Zero keeps the transport
	// default, a negative value disables redirects.
	MaxRedirects int `yaml:"max_redirects" mapstructure:"max_redirects"`

	// Proxy is an absolute proxy URL used for both schemes.
	Proxy string `yaml:"proxy" mapstructure:"proxy"`

	// NoProxy lists hosts that bypass Proxy, in NO_PROXY syntax.
	NoProxy string `yaml:"no_proxy" mapstructure:"no_proxy"`

	DisableKeepAlives bool `yaml:"disable_keep_alives" mapstructure:"disable_keep_alives"`

	TLS *TLSOptions `yaml:"tls" mapstructure:"tls"`
}

// DefaultConfig returns a Config with every default applied and no credential.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if strings.Contains(c.Host, "://") {
		c.splitHostURL()
	}
	if c.Scheme == "" {
		c.Scheme = DefaultScheme
	}
	c.Scheme = strings.ToLower(c.Scheme)
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.AuthMode == "" {
		c.AuthMode = DefaultAuthMode
	}
}

func (c *Config) splitHostURL() {
	u, err := url.Parse(c.Host)
	if err != nil || u.Hostname() == "" {
		return
	}
	if c.Scheme == "" {
		c.Scheme = u.Scheme
	}
	if p, err := strconv.Atoi(u.Port()); err == nil && c.Port == 0 {
		c.Port = p
	}
	c.Host = u.Hostname()
}

// Validate checks that the configuration is usable. A missing credential
// is reported before anything else.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.MissingArgument("api_key")
	}
	if c.Scheme != "http" && c.Scheme != "https" {
		return errors.Configuration(fmt.Sprintf("unsupported scheme %q", c.Scheme))
	}
	if c.Host == "" {
		return errors.Configuration("host must not be empty")
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.Configuration(fmt.Sprintf("port %d out of range", c.Port))
	}
	if c.Timeout <= 0 {
		return errors.Configuration("timeout must be positive")
	}
	if _, err := c.Format.ContentType(); err != nil {
		return err
	}
	if err := c.AuthMode.Validate(); err != nil {
		return err
	}
	return c.Transport.Validate()
}

// BaseURL returns scheme://host[:port] with no trailing slash.
func (c *Config) BaseURL() string {
	host := c.Host
	if c.Port != 0 {
		host = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return c.Scheme + "://" + host
}

// Validate checks the transport options.
func (o *TransportOptions) Validate() error {
	if o.Timeout < 0 {
		return errors.Configuration("transport_options.timeout must not be negative")
	}
	if o.Proxy != "" {
		u, err := url.Parse(o.Proxy)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.Configuration(fmt.Sprintf("invalid proxy URL %q", o.Proxy))
		}
	}
	if err := o.TLS.Validate(); err != nil {
		return errors.Configuration(err.Error()).WithCause(err)
	}
	return nil
}

func (o TransportOptions) clone() TransportOptions {
	out := o
	if o.Headers != nil {
		out.Headers = make(map[string]string, len(o.Headers))
		for k, v := range o.Headers {
			out.Headers[k] = v
		}
	}
	if o.TLS != nil {
		tls := *o.TLS
		out.TLS = &tls
	}
	return out
}
