package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ruwler/ruwler-go/errors"
)

// Response is a successful answer. Data is the decoded body, null when
// the body was empty.
type Response struct {
	StatusCode int
	Header     http.Header
	Data       Value
	raw        []byte
}

// Raw returns a copy of the undecoded body.
func (r *Response) Raw() []byte {
	out := make([]byte, len(r.raw))
	copy(out, r.raw)
	return out
}

// RequestID returns the correlation id echoed by the server, if any.
func (r *Response) RequestID() string { return r.Header.Get(HeaderRequestID) }

// Decode unmarshals the response body into T.
func Decode[T any](r *Response) (T, error) {
	var out T
	if r == nil {
		return out, errors.MissingArgument("response")
	}
	if len(r.raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(r.raw, &out); err != nil {
		return out, fmt.Errorf("httpclient: decode %T: %w", out, err)
	}
	return out, nil
}

// NewResponse assembles a Response, mainly for tests and fakes.
func NewResponse(status int, header http.Header, body []byte) (*Response, error) {
	data, err := decodeBody(FormatJSON, body)
	if err != nil {
		return nil, err
	}
	if header == nil {
		header = http.Header{}
	}
	return &Response{StatusCode: status, Header: header, Data: data, raw: body}, nil
}
