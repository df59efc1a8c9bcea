package httpclient

import (
	"bytes"
	"net/http"

	"github.com/ruwler/ruwler-go/errors"
)

// descriptionKeys are tried in order to find a human-readable message in
// an error body. API Platform uses the hydra form, problem+json uses detail.
var descriptionKeys = []string{
	"description",
	"hydra:description",
	"detail",
	"message",
	"error_description",
	"error",
}

// decodeBody turns a raw body into a Value. An empty body is null and the
// html format is kept as text.
func decodeBody(format Format, raw []byte) (Value, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Null(), nil
	}
	if !format.decodesJSON() {
		return StringValue(string(raw)), nil
	}
	return ParseValue(raw)
}

// classify maps a decoded answer to an error, or nil for success.
func classify(status int, data Value) error {
	switch {
	case status == http.StatusUnauthorized:
		return errors.Unauthorized(describe(data), data.Interface())
	case status >= http.StatusBadRequest:
		err := errors.API(status, describe(data), data.Interface())
		if violations, ok := data.Get("violations").AsArray(); ok {
			err = err.WithDetail("violations", violationMessages(violations))
		}
		return err
	}
	return nil
}

func describe(data Value) string {
	for _, key := range descriptionKeys {
		if s, ok := data.Get(key).AsString(); ok && s != "" {
			return s
		}
	}
	if s, ok := data.AsString(); ok {
		return s
	}
	return ""
}

// violationMessages flattens API Platform constraint violations into
// "path: message" strings.
func violationMessages(violations []Value) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		msg, _ := v.Get("message").AsString()
		if path, ok := v.Get("propertyPath").AsString(); ok && path != "" {
			msg = path + ": " + msg
		}
		out = append(out, msg)
	}
	return out
}
