// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	apperrors "github.com/cooltech/credvault/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "cannot be blank"),
)

// UUID validates that a string is a parseable UUID
var UUID = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := uuid.Parse(s)
		return err == nil
	},
	validation.NewError("validation_uuid", "must be a valid UUID"),
)

// UUIDSlice validates that every element of a []string is a parseable UUID.
// Used for membership assignment payloads.
type UUIDSlice struct{}

// Validate checks every element of the slice.
func (UUIDSlice) Validate(value interface{}) error {
	ids, ok := value.([]string)
	if !ok {
		return validation.NewError("validation_uuid_slice", "must be a list of UUIDs")
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return validation.NewError("validation_uuid_slice", "must be a list of valid UUIDs")
		}
	}
	return nil
}
