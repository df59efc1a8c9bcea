package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "invalid-level", Format: "json"}, "test", &buf)
	l.Debug("hidden")
	l.Info("shown")
	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["message"] != "shown" {
		t.Errorf("expected info fallback level, got %v", lines)
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("RUWLER_LOG_LEVEL", "debug")
	os.Setenv("RUWLER_LOG_FORMAT", "json")
	defer os.Unsetenv("RUWLER_LOG_LEVEL")
	defer os.Unsetenv("RUWLER_LOG_FORMAT")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestLog_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "ruwler", &buf)

	l.Log(LevelDebug, "d")
	l.Log(LevelInfo, "i", Fields("status", 200))
	l.Log(LevelWarn, "w")
	l.Log(LevelError, "e")
	l.Log(Level("unknown"), "fallback")

	lines := decodeLines(t, &buf)
	want := []string{"debug", "info", "warn", "error", "info"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, w := range want {
		if lines[i]["level"] != w {
			t.Errorf("line %d: expected level %q, got %v", i, w, lines[i]["level"])
		}
		if lines[i][FieldService] != "ruwler" {
			t.Errorf("line %d: expected service field", i)
		}
	}
	if lines[1]["status"] != float64(200) {
		t.Errorf("expected status field, got %v", lines[1]["status"])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf)
	cl := l.WithComponent("transport")
	if cl.service != "test" {
		t.Errorf("service should be preserved, got %q", cl.service)
	}
	cl.Info("hello")
	lines := decodeLines(t, &buf)
	if lines[0][FieldComponent] != "transport" {
		t.Errorf("expected component field, got %v", lines[0])
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "", &buf)
	l.WithFields(map[string]interface{}{"key": "value"}).WithError(os.ErrNotExist).Warn("x")
	lines := decodeLines(t, &buf)
	if lines[0]["key"] != "value" {
		t.Errorf("expected key field, got %v", lines[0])
	}
	if lines[0]["error"] == nil {
		t.Errorf("expected error field, got %v", lines[0])
	}
}

func TestNop(t *testing.T) {
	// must not panic
	Nop().Log(LevelError, "discarded")
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) must return a usable sink")
	}
	l := NewDefault("x")
	if OrNop(l) != Sink(l) {
		t.Error("OrNop should return the given sink")
	}
}

func TestSinkFunc(t *testing.T) {
	var got []string
	s := SinkFunc(func(level Level, msg string, _ ...map[string]interface{}) {
		got = append(got, string(level)+":"+msg)
	})
	s.Log(LevelInfo, "hello")
	if len(got) != 1 || got[0] != "info:hello" {
		t.Errorf("unexpected calls %v", got)
	}
}

func TestTagged(t *testing.T) {
	var gotFields map[string]interface{}
	s := SinkFunc(func(_ Level, _ string, fields ...map[string]interface{}) {
		gotFields = fields[0]
	})
	Tagged(s, "ruwler").Log(LevelInfo, "sent", Fields(FieldStatus, 200))
	if gotFields[FieldComponent] != "ruwler" || gotFields[FieldStatus] != 200 {
		t.Errorf("unexpected fields %v", gotFields)
	}

	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "", &buf)
	Tagged(l, "ruwler").Log(LevelInfo, "hello")
	lines := decodeLines(t, &buf)
	if lines[0][FieldComponent] != "ruwler" {
		t.Errorf("expected component field, got %v", lines[0])
	}

	// must not panic
	Tagged(nil, "ruwler").Log(LevelInfo, "discarded")
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "test-svc", &buf)
	l.Info("console line")
	if !strings.Contains(buf.String(), "[INF]") || !strings.Contains(buf.String(), "console line") {
		t.Errorf("unexpected console output %q", buf.String())
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(m) != 2 || m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}
