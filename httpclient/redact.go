package httpclient

import (
	"encoding/json"
	"net/url"
	"strings"
)

const redacted = "[REDACTED]"

// sensitiveNames are matched case-insensitively as substrings of query
// parameter names and body keys.
var sensitiveNames = []string{
	"api_key",
	"apikey",
	"token",
	"password",
	"secret",
	"authorization",
	"credential",
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range sensitiveNames {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// sanitizeURL redacts sensitive query parameters. The input is returned
// untouched when nothing needs hiding, so a trailing "?" survives.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	changed := false
	for param := range q {
		if isSensitive(param) {
			q.Set(param, redacted)
			changed = true
		}
	}
	if !changed {
		return raw
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// redactValue returns a plain Go value of v for logging with sensitive
// object members replaced.
func redactValue(v Value) any {
	return redactAny(v.Interface())
}

func redactAny(x any) any {
	switch t := x.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			if isSensitive(k) {
				out[k] = redacted
				continue
			}
			out[k] = redactAny(v)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = redactAny(v)
		}
		return out
	}
	return x
}

// redactLogBody rewrites a dumped body with sensitive members replaced.
// Bodies that are not JSON are hidden entirely.
func redactLogBody(body string) string {
	if strings.TrimSpace(body) == "" {
		return body
	}
	v, err := ParseValue([]byte(body))
	if err != nil {
		return redacted
	}
	out, err := json.Marshal(redactValue(v))
	if err != nil {
		return redacted
	}
	return string(out)
}
