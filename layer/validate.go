// SPDX-License-Identifier: MIT

package layer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the parameters of s against the kind's constraints.
// Returns ErrNilSpec, ErrUnknownKind for foreign implementations (such as
// pointers to spec structs), or ErrInvalidParams listing each failing field.
func Validate(s Spec) error {
	switch s.(type) {
	case nil:
		return ErrNilSpec
	case Input, Output, Dense, Conv2D, Pooling:
		// validated below
	case Flatten, Add, Concat:
		return nil
	default:
		return fmt.Errorf("%w: unsupported spec type %T", ErrUnknownKind, s)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidParams, s.Kind(), formatValidationError(err))
	}
	return nil
}

// formatValidationError joins field errors into one readable message.
func formatValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return strings.Join(msgs, "; ")
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s element(s)", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
