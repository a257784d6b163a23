package validation

import (
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/cooltech/credvault/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(validation.NewError("validation_test", "test failed"))
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("value", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
	assert.Error(t, validation.Validate("", validation.Required, NotBlank))
}

func TestUUID(t *testing.T) {
	assert.NoError(t, validation.Validate("0190a6e2-0000-7000-8000-000000000000", UUID))
	assert.Error(t, validation.Validate("not-a-uuid", UUID))
}

func TestUUIDSlice(t *testing.T) {
	rule := UUIDSlice{}

	assert.NoError(t, rule.Validate([]string{}))
	assert.NoError(t, rule.Validate([]string{"0190a6e2-0000-7000-8000-000000000000"}))
	assert.Error(t, rule.Validate([]string{"0190a6e2-0000-7000-8000-000000000000", "nope"}))
	assert.Error(t, rule.Validate("not-a-slice"))
}
