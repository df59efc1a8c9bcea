// Package validation checks request models before they are sent to the
// Ruwler API.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Either way a failure is a
// MISSING_ARGUMENT *errors.Error whose "fields" detail is a []FieldError.
//
// # Struct Tag Validation
//
//	type Credentials struct {
//	    Email    string `json:"email" validate:"required,email"`
//	    Password string `json:"password" validate:"required"`
//	}
//	err := validation.Validate(creds)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Required("email", email).
//	    Email("email", email).
//	    Validate()
package validation
