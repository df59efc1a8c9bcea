package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldURL       = "url"
	FieldStatus    = "status"
	FieldBody      = "body"
	FieldError     = "error"
	FieldErrorCode = "error_code"
	FieldDuration  = "duration_ms"
	FieldOperation = "operation"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	log.Info("request sent", logger.Fields("method", "GET", "status", 200))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a failed operation.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// MergeWithDuration adds a duration field to an existing map.
func MergeWithDuration(fields map[string]interface{}, d time.Duration) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldDuration] = d.Milliseconds()
	return fields
}
