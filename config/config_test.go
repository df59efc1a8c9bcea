package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ruwler/ruwler-go/errors"
	"github.com/ruwler/ruwler-go/httpclient"
)

type mockFS struct {
	files   map[string]bool
	envVars map[string]string
	loaded  []string
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) HomeDir() (string, error) { return "/home/mock", nil }
func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	for k, v := range m.envVars {
		if _, ok := os.LookupEnv(k); !ok {
			os.Setenv(k, v)
		}
	}
	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(WithFileSystem(&mockFS{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Client.Host != httpclient.DefaultHost || s.Client.Timeout != httpclient.DefaultTimeout {
		t.Errorf("unexpected client defaults %+v", s.Client)
	}
	if s.Logging.Level != "info" {
		t.Errorf("expected logging level info, got %q", s.Logging.Level)
	}
	if s.Telemetry.Enabled() {
		t.Error("expected telemetry disabled by default")
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "ruwler.yml", `
api_key: file-key
host: sandbox.ruwler.io
port: 8443
timeout: 45
format: json
auth_mode: token
transport_options:
  timeout: 1m30s
  headers:
    X-Tenant: acme
  tls:
    server_name: sandbox.ruwler.io
logging:
  level: debug
  format: json
telemetry:
  endpoint: localhost:4318
unknown_key: ignored
`)
	s, err := Load(WithConfigFile(path), WithFileSystem(&mockFS{files: map[string]bool{path: true}}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c := s.Client
	if c.APIKey != "file-key" || c.Host != "sandbox.ruwler.io" || c.Port != 8443 {
		t.Errorf("unexpected client %+v", c)
	}
	if c.Timeout != 45*time.Second {
		t.Errorf("expected 45s timeout from plain seconds, got %v", c.Timeout)
	}
	if c.Format != httpclient.FormatJSON || c.AuthMode != httpclient.AuthModeToken {
		t.Errorf("unexpected format/auth %q %q", c.Format, c.AuthMode)
	}
	if c.Transport.Timeout != 90*time.Second {
		t.Errorf("expected 90s transport timeout, got %v", c.Transport.Timeout)
	}
	if c.Transport.Headers["x-tenant"] != "acme" && c.Transport.Headers["X-Tenant"] != "acme" {
		t.Errorf("unexpected headers %v", c.Transport.Headers)
	}
	if c.Transport.TLS == nil || c.Transport.TLS.ServerName != "sandbox.ruwler.io" {
		t.Errorf("unexpected tls %+v", c.Transport.TLS)
	}
	if s.Logging.Level != "debug" || s.Logging.Format != "json" {
		t.Errorf("unexpected logging %+v", s.Logging)
	}
	if !s.Telemetry.Enabled() || s.Telemetry.ServiceName != "ruwler" {
		t.Errorf("unexpected telemetry %+v", s.Telemetry)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "ruwler.yml", "api_key: file-key\ndebug: false\n")
	t.Setenv("RUWLER_API_KEY", "env-key")
	t.Setenv("RUWLER_DEBUG", "true")
	t.Setenv("RUWLER_TRANSPORT_OPTIONS_TIMEOUT", "5")
	t.Setenv("RUWLER_LOGGING_LEVEL", "warn")

	s, err := Load(WithConfigFile(path), WithFileSystem(&mockFS{files: map[string]bool{path: true}}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Client.APIKey != "env-key" {
		t.Errorf("expected env to win, got %q", s.Client.APIKey)
	}
	if !s.Client.Debug {
		t.Error("expected debug from env")
	}
	if s.Client.Transport.Timeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", s.Client.Transport.Timeout)
	}
	if s.Logging.Level != "warn" {
		t.Errorf("expected warn, got %q", s.Logging.Level)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	os.Unsetenv("RUWLER_API_KEY")
	t.Cleanup(func() { os.Unsetenv("RUWLER_API_KEY") })
	fs := &mockFS{
		files:   map[string]bool{".env": true},
		envVars: map[string]string{"RUWLER_API_KEY": "dotenv-key"},
	}

	s, err := Load(WithFileSystem(fs))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(fs.loaded) != 1 || fs.loaded[0] != ".env" {
		t.Errorf("expected .env to be loaded, got %v", fs.loaded)
	}
	if s.Client.APIKey != "dotenv-key" {
		t.Errorf("expected key from .env, got %q", s.Client.APIKey)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RUWLER_FORMAT", "json")
	s, err := Load(WithFileSystem(&mockFS{}), WithOverride("format", "html"), WithOverride("logging.level", "error"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Client.Format != httpclient.FormatHTML {
		t.Errorf("expected override to win, got %q", s.Client.Format)
	}
	if s.Logging.Level != "error" {
		t.Errorf("expected logging override, got %q", s.Logging.Level)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(WithConfigFile("/nonexistent/ruwler.yml"), WithFileSystem(&mockFS{}))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeFile(t, "ruwler.yml", "api_key: [unterminated\n")
	_, err := Load(WithConfigFile(path), WithFileSystem(&mockFS{files: map[string]bool{path: true}}))
	if err == nil {
		t.Error("expected parse error")
	}
}

func TestResolver_SearchOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		filepath.Join("config", "ruwler.yaml"):                         true,
		filepath.Join("/home/mock", ".config", "ruwler", "ruwler.yml"): true,
		filepath.Join("config", ".env"):                                true,
	}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles(LoaderConfig{})
	if files.ConfigFile != filepath.Join("config", "ruwler.yaml") {
		t.Errorf("unexpected config file %q", files.ConfigFile)
	}
	if files.EnvFile != filepath.Join("config", ".env") {
		t.Errorf("unexpected env file %q", files.EnvFile)
	}

	home := (&Resolver{FileSystem: &mockFS{files: map[string]bool{
		filepath.Join("/home/mock", ".config", "ruwler", "ruwler.yml"): true,
	}}}).ResolveFiles(LoaderConfig{})
	if home.ConfigFile != filepath.Join("/home/mock", ".config", "ruwler", "ruwler.yml") {
		t.Errorf("expected home config, got %q", home.ConfigFile)
	}
}

func TestResolver_ExplicitPathsWin(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"ruwler.yml": true}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles(LoaderConfig{ConfigFile: "/etc/r.yml", EnvFile: "/etc/r.env"})
	if files.ConfigFile != "/etc/r.yml" || files.EnvFile != "/etc/r.env" {
		t.Errorf("unexpected files %+v", files)
	}
}

func TestFromMap(t *testing.T) {
	cfg := httpclient.Config{}
	err := FromMap(map[string]any{
		"api_key":   "k",
		"host":      "localhost",
		"port":      "8080",
		"timeout":   10,
		"debug":     "true",
		"format":    "json",
		"auth_mode": "token",
		"transport_options": map[string]any{
			"headers":       map[string]string{"X-A": "1"},
			"timeout":       "250ms",
			"max_redirects": -1,
		},
		"bogus": "ignored",
	}, &cfg)
	if err != nil {
		t.Fatalf("FromMap failed: %v", err)
	}
	if cfg.APIKey != "k" || cfg.Host != "localhost" || cfg.Port != 8080 || !cfg.Debug {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.Timeout)
	}
	if cfg.Transport.Timeout != 250*time.Millisecond || cfg.Transport.MaxRedirects != -1 {
		t.Errorf("unexpected transport %+v", cfg.Transport)
	}
	if cfg.Transport.Headers["X-A"] != "1" {
		t.Errorf("unexpected headers %v", cfg.Transport.Headers)
	}
}

func TestFromMap_CurlOptionsAlias(t *testing.T) {
	cfg := httpclient.Config{}
	opts := map[string]any{
		"api_key":      "k",
		"curl_options": map[string]any{"timeout": "2s", "user_agent": "legacy"},
	}
	if err := FromMap(opts, &cfg); err != nil {
		t.Fatalf("FromMap failed: %v", err)
	}
	if cfg.Transport.Timeout != 2*time.Second || cfg.Transport.UserAgent != "legacy" {
		t.Errorf("curl_options not applied: %+v", cfg.Transport)
	}
	if _, ok := opts["transport_options"]; ok {
		t.Error("caller map was modified")
	}

	both := httpclient.Config{}
	err := FromMap(map[string]any{
		"curl_options":      map[string]any{"user_agent": "legacy"},
		"transport_options": map[string]any{"user_agent": "typed"},
	}, &both)
	if err != nil {
		t.Fatalf("FromMap failed: %v", err)
	}
	if both.Transport.UserAgent != "typed" {
		t.Errorf("expected transport_options to win, got %q", both.Transport.UserAgent)
	}
}

func TestFromMap_KeepsDurationValues(t *testing.T) {
	cfg := httpclient.Config{}
	if err := FromMap(map[string]any{"timeout": 3 * time.Second, "api_key": "k"}, &cfg); err != nil {
		t.Fatalf("FromMap failed: %v", err)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.Timeout)
	}
}

func TestFromMap_Errors(t *testing.T) {
	if err := FromMap(map[string]any{}, nil); !errors.IsMissingArgument(err) {
		t.Errorf("expected MissingArgument, got %v", err)
	}
	cfg := httpclient.Config{}
	if err := FromMap(map[string]any{"timeout": "soon"}, &cfg); !errors.IsConfiguration(err) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}

func TestSecondsToDuration(t *testing.T) {
	tests := []struct {
		in   interface{}
		want interface{}
	}{
		{30, 30 * time.Second},
		{uint(2), 2 * time.Second},
		{1.5, 1500 * time.Millisecond},
		{"20", 20 * time.Second},
		{"1m", "1m"},
	}
	for _, tt := range tests {
		got, err := secondsToDuration(reflectTypeOf(tt.in), durationType, tt.in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("secondsToDuration(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSettings_Validate(t *testing.T) {
	s := Settings{}
	s.ApplyDefaults()
	if err := s.Validate(); !errors.IsMissingArgument(err) {
		t.Errorf("expected MissingArgument for missing key, got %v", err)
	}
	s.Client.APIKey = "k"
	s.Telemetry.SampleRate = 2
	if err := s.Validate(); err == nil || !strings.Contains(err.Error(), "sample_rate") {
		t.Errorf("expected sample_rate error, got %v", err)
	}
}

func reflectTypeOf(v interface{}) reflect.Type { return reflect.TypeOf(v) }
