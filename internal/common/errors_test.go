// File: internal/common/errors_test.go
package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrConflict.WithDetails("listing already claimed")

	assert.Equal(t, "listing already claimed", detailed.Details)
	assert.Nil(t, ErrConflict.Details)
	assert.Equal(t, ErrConflict.Code, detailed.Code)
	assert.Equal(t, ErrConflict.StatusCode, detailed.StatusCode)
}

func TestIsAPIErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("handler failed: %w", ErrNotFound.WithDetails("no such food"))

	apiErr, ok := IsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestIsAPIErrorRejectsPlainErrors(t *testing.T) {
	_, ok := IsAPIError(errors.New("boom"))
	assert.False(t, ok)
}

func TestBindingErrorWrapsPlainErrors(t *testing.T) {
	apiErr := BindingError(errors.New("unexpected EOF"))

	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Equal(t, "unexpected EOF", apiErr.Details)
}
