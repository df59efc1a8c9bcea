package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is the single error type returned by the Ruwler client.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// StatusCode is the HTTP status of the answer (0 when no answer was decoded).
	StatusCode int `json:"status_code,omitempty"`
	// Description is the server-provided error description, if any.
	Description string `json:"description,omitempty"`
	// Body is the decoded error body as returned by the API.
	Body any `json:"body,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Sentinels for errors.Is. Matching is by Code only.
var (
	ErrConfiguration   = &Error{Code: ErrCodeConfiguration}
	ErrMissingArgument = &Error{Code: ErrCodeMissingArgument}
	ErrInvalidFormat   = &Error{Code: ErrCodeInvalidFormat}
	ErrInvalidAuthMode = &Error{Code: ErrCodeInvalidAuthMode}
	ErrConnection      = &Error{Code: ErrCodeConnection}
	ErrUnauthorized    = &Error{Code: ErrCodeUnauthorized}
	ErrAPI             = &Error{Code: ErrCodeAPI}
)

// Error returns the string representation of the error.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("ruwler: ")
	b.WriteString(string(e.Code))
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (cause: %v)", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// --- Constructors ---

// Configuration creates an error for a client that cannot be set up.
func Configuration(message string) *Error {
	return &Error{Code: ErrCodeConfiguration, Message: message}
}

// MissingArgument creates an error for a required argument that was not supplied.
func MissingArgument(argument string) *Error {
	return &Error{
		Code:    ErrCodeMissingArgument,
		Message: fmt.Sprintf("missing required argument: %s", argument),
		Details: map[string]any{"argument": argument},
	}
}

// InvalidFormat creates an error for an unrecognized content format.
func InvalidFormat(format string) *Error {
	return &Error{
		Code:    ErrCodeInvalidFormat,
		Message: fmt.Sprintf("unsupported format %q", format),
		Details: map[string]any{"format": format},
	}
}

// InvalidAuthMode creates an error for an unrecognized authentication mode.
func InvalidAuthMode(mode string) *Error {
	return &Error{
		Code:    ErrCodeInvalidAuthMode,
		Message: fmt.Sprintf("unsupported auth mode %q", mode),
		Details: map[string]any{"auth_mode": mode},
	}
}

// Connection creates a transport-level error. The message is the transport's own.
func Connection(cause error) *Error {
	msg := "connection failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Code: ErrCodeConnection, Message: msg, Cause: cause}
}

// Unauthorized creates an error for a credential rejected by the API.
func Unauthorized(description string, body any) *Error {
	msg := description
	if msg == "" {
		msg = http.StatusText(http.StatusUnauthorized)
	}
	return &Error{
		Code:        ErrCodeUnauthorized,
		Message:     msg,
		StatusCode:  http.StatusUnauthorized,
		Description: description,
		Body:        body,
	}
}

// API creates an error for a structured 4xx/5xx answer.
func API(statusCode int, description string, body any) *Error {
	msg := description
	if msg == "" {
		msg = http.StatusText(statusCode)
	}
	return &Error{
		Code:        ErrCodeAPI,
		Message:     msg,
		StatusCode:  statusCode,
		Description: description,
		Body:        body,
	}
}

// --- Inspection ---

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// IsConfiguration checks if an error is a configuration error.
func IsConfiguration(err error) bool { return hasCode(err, ErrCodeConfiguration) }

// IsMissingArgument checks if an error is a missing-argument error.
func IsMissingArgument(err error) bool { return hasCode(err, ErrCodeMissingArgument) }

// IsInvalidFormat checks if an error is an invalid-format error.
func IsInvalidFormat(err error) bool { return hasCode(err, ErrCodeInvalidFormat) }

// IsInvalidAuthMode checks if an error is an invalid-auth-mode error.
func IsInvalidAuthMode(err error) bool { return hasCode(err, ErrCodeInvalidAuthMode) }

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }

// IsUnauthorized checks if an error is an unauthorized error.
func IsUnauthorized(err error) bool { return hasCode(err, ErrCodeUnauthorized) }

// IsAPI checks if an error is a structured API error.
func IsAPI(err error) bool { return hasCode(err, ErrCodeAPI) }
