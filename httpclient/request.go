package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ruwler/ruwler-go/errors"
	"github.com/ruwler/ruwler-go/logger"
	"github.com/ruwler/ruwler-go/version"
)

const (
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderUserAgent     = "User-Agent"
	HeaderRequestID     = "X-Request-Id"
)

// OutboundRequest is a fully resolved request ready for the transport.
type OutboundRequest struct {
	Method string
	URL    string
	Header http.Header
	// Body is nil when the request carries no payload.
	Body []byte
}

// RequestID returns the correlation id assigned by the Builder.
func (r *OutboundRequest) RequestID() string { return r.Header.Get(HeaderRequestID) }

// Builder resolves requests against one Config and Credential.
type Builder struct {
	baseURL    string
	format     Format
	credential Credential
	log        logger.Sink
	newID      func() string
}

// NewBuilder creates a Builder. A nil sink discards log output.
func NewBuilder(cfg Config, cred Credential, log logger.Sink) *Builder {
	return &Builder{
		baseURL:    cfg.BaseURL(),
		format:     cfg.Format,
		credential: cred,
		log:        logger.OrNop(log),
		newID:      uuid.NewString,
	}
}

// Build resolves method, path, body and filters into an OutboundRequest.
// The URL is always base + path + "?" + encoded filters, so a request
// without filters ends in a bare "?".
func (b *Builder) Build(method, path string, body any, filters Filters) (*OutboundRequest, error) {
	if strings.TrimSpace(method) == "" {
		return nil, errors.MissingArgument("method")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.MissingArgument("path")
	}
	contentType, err := b.format.ContentType()
	if err != nil {
		return nil, err
	}
	auth, err := b.credential.Header()
	if err != nil {
		return nil, err
	}
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	header := http.Header{}
	header.Set(HeaderContentType, contentType)
	header.Set(HeaderAccept, contentType)
	header.Set(HeaderAuthorization, auth)
	header.Set(HeaderUserAgent, version.UserAgent())
	header.Set(HeaderRequestID, b.newID())

	out := &OutboundRequest{
		Method: strings.ToUpper(method),
		URL:    b.baseURL + path + "?" + filters.Encode(),
		Header: header,
		Body:   payload,
	}
	b.log.Log(logger.LevelDebug, "request built", logger.Fields(
		logger.FieldMethod, out.Method,
		logger.FieldURL, sanitizeURL(out.URL),
		logger.FieldRequestID, out.RequestID(),
	))
	return out, nil
}

// encodeBody JSON-encodes body. []byte and json.RawMessage are taken as
// already encoded.
func encodeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.New(errors.ErrCodeMissingArgument,
			fmt.Sprintf("request body is not serializable: %v", err)).
			WithCause(err).
			WithDetail("argument", "body")
	}
	return payload, nil
}
