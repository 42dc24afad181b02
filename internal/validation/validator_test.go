package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Extra    string `json:"extra,omitempty" validate:"max=4"`
}

func TestValidate_PassesValidStruct(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "a@b.com", Password: "longenough"})
	assert.NoError(t, err)
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Password: "longenough"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")
}

func TestValidate_JoinsMultipleFailures(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "not-an-email", Password: "short"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email address")
	assert.Contains(t, err.Error(), "password must be at least 8 characters")
}

func TestValidate_MaxMessage(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "a@b.com", Password: "longenough", Extra: "toolong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extra must not exceed 4 characters")
}
