package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSOptions configure the TLS client side of the transport.
type TLSOptions struct {
	// SkipVerify disables server certificate verification.
	// Not recommended for production.
	SkipVerify bool `yaml:"skip_verify" mapstructure:"skip_verify"`

	// CAFile is a PEM bundle used instead of the system roots.
	CAFile string `yaml:"ca_file" mapstructure:"ca_file"`

	// CertFile and KeyFile enable mutual TLS. Both or neither.
	CertFile string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile  string `yaml:"key_file" mapstructure:"key_file"`

	ServerName string `yaml:"server_name" mapstructure:"server_name"`

	// MinVersion is "1.2" or "1.3". Defaults to 1.2.
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
}

var tlsVersions = map[string]uint16{
	"1.2": tls.VersionTLS12,
	"1.3": tls.VersionTLS13,
}

// Build creates a *tls.Config. It returns nil when nothing is configured.
func (o *TLSOptions) Build() (*tls.Config, error) {
	if o == nil || !o.hasSettings() {
		return nil, nil
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	minVersion := uint16(tls.VersionTLS12)
	if o.MinVersion != "" {
		minVersion = tlsVersions[o.MinVersion]
	}
	cfg := &tls.Config{
		InsecureSkipVerify: o.SkipVerify,
		ServerName:         o.ServerName,
		MinVersion:         minVersion,
	}

	if o.CAFile != "" {
		ca, err := os.ReadFile(o.CAFile)
		if err != nil {
			return nil, fmt.Errorf("tls: read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(ca) {
			return nil, fmt.Errorf("tls: no certificates found in %s", o.CAFile)
		}
		cfg.RootCAs = pool
	}
	if o.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(o.CertFile, o.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("tls: load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return cfg, nil
}

// Validate checks that the options are consistent without touching the filesystem.
func (o *TLSOptions) Validate() error {
	if o == nil {
		return nil
	}
	if (o.CertFile != "") != (o.KeyFile != "") {
		return fmt.Errorf("tls: cert_file and key_file must be provided together")
	}
	if _, ok := tlsVersions[o.MinVersion]; o.MinVersion != "" && !ok {
		return fmt.Errorf("tls: unsupported min_version %q", o.MinVersion)
	}
	return nil
}

func (o *TLSOptions) hasSettings() bool {
	return o.SkipVerify || o.CAFile != "" || o.CertFile != "" || o.ServerName != "" || o.MinVersion != ""
}
