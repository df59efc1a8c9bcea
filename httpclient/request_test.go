package httpclient

import (
	"strings"
	"testing"

	"github.com/ruwler/ruwler-go/errors"
	"github.com/ruwler/ruwler-go/logger"
)

func testConfig() Config {
	cfg := Config{Host: "api.example.test", APIKey: "k-123"}
	cfg.ApplyDefaults()
	return cfg
}

func newTestBuilder(cfg Config) *Builder {
	b := NewBuilder(cfg, NewCredential(cfg.APIKey, cfg.AuthMode), nil)
	b.newID = func() string { return "req-1" }
	return b
}

func TestBuilder_Build(t *testing.T) {
	b := newTestBuilder(testConfig())

	out, err := b.Build("get", "/campaigns", nil, Filters{"page": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Method != "GET" {
		t.Errorf("expected GET, got %q", out.Method)
	}
	if out.URL != "https://api.example.test/campaigns?page=2" {
		t.Errorf("unexpected URL %q", out.URL)
	}
	if out.Body != nil {
		t.Errorf("expected no body, got %q", out.Body)
	}
	want := map[string]string{
		HeaderContentType:   "application/ld+json",
		HeaderAccept:        "application/ld+json",
		HeaderAuthorization: "k-123",
		HeaderRequestID:     "req-1",
	}
	for k, v := range want {
		if got := out.Header.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if !strings.HasPrefix(out.Header.Get(HeaderUserAgent), "ruwler-go/") {
		t.Errorf("unexpected user agent %q", out.Header.Get(HeaderUserAgent))
	}
	if out.RequestID() != "req-1" {
		t.Errorf("unexpected request id %q", out.RequestID())
	}
}

func TestBuilder_TrailingQuestionMarkWithoutFilters(t *testing.T) {
	b := newTestBuilder(testConfig())
	out, err := b.Build("GET", "/tokens", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.URL != "https://api.example.test/tokens?" {
		t.Errorf("unexpected URL %q", out.URL)
	}
}

func TestBuilder_PortAndPath(t *testing.T) {
	cfg := testConfig()
	cfg.Scheme = "http"
	cfg.Port = 8080
	out, err := newTestBuilder(cfg).Build("DELETE", "tokens/5", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.URL != "http://api.example.test:8080/tokens/5?" {
		t.Errorf("unexpected URL %q", out.URL)
	}
}

func TestBuilder_TokenMode(t *testing.T) {
	cfg := testConfig()
	cfg.AuthMode = AuthModeToken
	cfg.Format = FormatJSON
	out, err := newTestBuilder(cfg).Build("GET", "/projects", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.Header.Get(HeaderAuthorization); got != "Bearer k-123" {
		t.Errorf("unexpected authorization %q", got)
	}
	if got := out.Header.Get(HeaderAccept); got != "application/json" {
		t.Errorf("unexpected accept %q", got)
	}
}

func TestBuilder_Body(t *testing.T) {
	b := newTestBuilder(testConfig())

	out, err := b.Build("POST", "/projects", map[string]any{"name": "Spring"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out.Body) != `{"name":"Spring"}` {
		t.Errorf("unexpected body %s", out.Body)
	}

	raw, _ := b.Build("POST", "/projects", []byte(`{"raw":true}`), nil)
	if string(raw.Body) != `{"raw":true}` {
		t.Errorf("raw body altered: %s", raw.Body)
	}

	str, err := b.Build("POST", "/mail", "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(str.Body) != `"hello"` {
		t.Errorf("string body not JSON-encoded: %s", str.Body)
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    func(*Config)
		method string
		path   string
		body   any
		check  func(error) bool
	}{
		{"empty method", nil, "", "/x", nil, errors.IsMissingArgument},
		{"empty path", nil, "GET", " ", nil, errors.IsMissingArgument},
		{"bad format", func(c *Config) { c.Format = "xml" }, "GET", "/x", nil, errors.IsInvalidFormat},
		{"bad auth mode", func(c *Config) { c.AuthMode = "digest" }, "GET", "/x", nil, errors.IsInvalidAuthMode},
		{"unserializable body", nil, "POST", "/x", map[string]any{"c": make(chan int)}, errors.IsMissingArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			_, err := newTestBuilder(cfg).Build(tt.method, tt.path, tt.body, nil)
			if !tt.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestBuilder_LogsSanitizedURL(t *testing.T) {
	var logged []map[string]interface{}
	sink := logger.SinkFunc(func(_ logger.Level, _ string, fields ...map[string]interface{}) {
		logged = append(logged, fields...)
	})
	cfg := testConfig()
	b := NewBuilder(cfg, NewCredential(cfg.APIKey, cfg.AuthMode), sink)

	if _, err := b.Build("GET", "/x", nil, Filters{"token": "abc", "page": 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logged) == 0 {
		t.Fatal("expected a debug log entry")
	}
	u, _ := logged[0][logger.FieldURL].(string)
	if strings.Contains(u, "abc") || !strings.Contains(u, "page=1") {
		t.Errorf("unexpected logged URL %q", u)
	}
}
