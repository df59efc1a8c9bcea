package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Setup errors, raised before any request is sent.
const (
	// ErrCodeConfiguration indicates the client could not be constructed or its
	// transport handle could not be created.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeMissingArgument indicates the caller supplied incomplete input.
	ErrCodeMissingArgument ErrorCode = "MISSING_ARGUMENT"
	// ErrCodeInvalidFormat indicates an unrecognized content format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeInvalidAuthMode indicates an unrecognized authentication mode.
	ErrCodeInvalidAuthMode ErrorCode = "INVALID_AUTH_MODE"
)

// Request errors.
const (
	// ErrCodeConnection indicates a transport-level failure, including timeouts
	// and response bodies that could not be decoded.
	ErrCodeConnection ErrorCode = "CONNECTION_ERROR"
	// ErrCodeUnauthorized indicates the API rejected the credential (HTTP 401).
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeAPI indicates any other 4xx/5xx answer from the API.
	ErrCodeAPI ErrorCode = "API_ERROR"
)

// IsSetupCode reports whether code is raised before any I/O takes place.
func IsSetupCode(code ErrorCode) bool {
	switch code {
	case ErrCodeConfiguration, ErrCodeMissingArgument, ErrCodeInvalidFormat, ErrCodeInvalidAuthMode:
		return true
	default:
		return false
	}
}
