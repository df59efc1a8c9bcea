// Package errors defines the error taxonomy returned by the Ruwler client.
//
// Every failure surfaced by the client is an *Error carrying a machine-readable
// Code. Configuration and input problems (ConfigurationError, MissingArgument,
// InvalidFormat, InvalidAuthMode) are reported before any I/O happens; transport
// failures are ConnectionError; rejected credentials are Unauthorized; any other
// 4xx/5xx answer is an API error carrying the server's description and body.
//
// Use the sentinels with the standard library:
//
//	if errors.Is(err, rwerrors.ErrUnauthorized) { ... }
//
// or the Is* helpers and As to inspect the status code and body:
//
//	if e, ok := rwerrors.As(err); ok && e.Code == rwerrors.ErrCodeAPI {
//	    log.Printf("status=%d description=%s", e.StatusCode, e.Description)
//	}
package errors
