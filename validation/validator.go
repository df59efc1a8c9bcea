package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/ruwler/ruwler-go/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns a MISSING_ARGUMENT error listing every collected field
// error, or nil when nothing was collected.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}
	return fieldsError(v.errors)
}

// fieldsError builds the error shared by the fluent and struct-tag paths.
func fieldsError(fields []FieldError) *errors.Error {
	messages := make([]string, len(fields))
	for i, e := range fields {
		messages[i] = e.Field + ": " + e.Message
	}
	return errors.New(errors.ErrCodeMissingArgument, strings.Join(messages, "; ")).
		WithDetail("fields", fields)
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Email checks that a non-empty string is a single bare address.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.AddError(field, "must be a valid email address")
	}
	return v
}

// Range checks if a number is within a range.
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	if value < minVal || value > maxVal {
		v.AddError(field, fmt.Sprintf("must be between %d and %d", minVal, maxVal))
	}
	return v
}

// Min checks if a number meets minimum value.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d", minVal))
	}
	return v
}
