package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbondapp/bookbond-server/internal/store"
)

type sampleInput struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,max=50"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=want reading finished"`
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	err := v.Validate(sampleInput{
		Email:       "reader@example.com",
		DisplayName: "Reader",
		Status:      "reading",
	})
	assert.NoError(t, err)
}

func TestValidate_InvalidInput(t *testing.T) {
	v := New()

	err := v.Validate(sampleInput{
		Email:  "not-an-email",
		Status: "abandoned",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrInvalidInput))

	var storeErr *store.Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "must be a valid email address", storeErr.Details["email"])
	assert.Equal(t, "is required", storeErr.Details["display_name"])
	assert.Equal(t, "must be one of: want reading finished", storeErr.Details["status"])
}

func TestValidate_UsesJSONTagNames(t *testing.T) {
	v := New()

	err := v.Validate(sampleInput{Email: "reader@example.com"})
	require.Error(t, err)

	var storeErr *store.Error
	require.True(t, errors.As(err, &storeErr))
	_, hasJSONName := storeErr.Details["display_name"]
	_, hasGoName := storeErr.Details["DisplayName"]
	assert.True(t, hasJSONName)
	assert.False(t, hasGoName)
}
