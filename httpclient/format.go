package httpclient

import (
	"strings"

	"github.com/ruwler/ruwler-go/errors"
)

// Format selects the media type used for both Content-Type and Accept.
type Format string

const (
	FormatJSONLD Format = "jsonld"
	FormatJSON   Format = "json"
	FormatHTML   Format = "html"
)

var contentTypes = map[Format]string{
	FormatJSONLD: "application/ld+json",
	FormatJSON:   "application/json",
	FormatHTML:   "text/html",
}

// ParseFormat normalizes s and checks it is a known format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, err := f.ContentType(); err != nil {
		return "", err
	}
	return f, nil
}

// ContentType maps the format to its media type.
func (f Format) ContentType() (string, error) {
	ct, ok := contentTypes[f]
	if !ok {
		return "", errors.InvalidFormat(string(f))
	}
	return ct, nil
}

// decodesJSON reports whether response bodies in this format are JSON documents.
func (f Format) decodesJSON() bool { return f != FormatHTML }
