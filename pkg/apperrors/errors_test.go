package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON_HidesInternals(t *testing.T) {
	t.Parallel()

	appErr := Wrap(errors.New("pq: connection refused"), CodeDatabaseError, "storage", "Something went wrong", http.StatusInternalServerError)

	out, err := json.Marshal(appErr)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "connection refused", "the wrapped error must stay server-side")
	assert.NotContains(t, string(out), "500")

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, "DATABASE_ERROR", parsed["code"])
	assert.Equal(t, "storage", parsed["domain"])
	assert.Equal(t, "Something went wrong", parsed["message"])
}

func TestWrapPreservesChain(t *testing.T) {
	t.Parallel()

	cause := errors.New("row not found")
	appErr := Wrap(cause, CodeNotFound, "account", "Account not found", http.StatusNotFound)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "row not found")
}

func TestAsAppError(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("handler: %w", ErrEmailExists)
	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeEmailExists, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	_, ok = AsAppError(errors.New("plain error"))
	assert.False(t, ok)
}

func TestValidationErrorDetails(t *testing.T) {
	t.Parallel()

	appErr := ValidationError(map[string]string{"email": "Must be a valid email address"})
	assert.Equal(t, CodeValidationError, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	out, err := json.Marshal(appErr)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Must be a valid email address")
}
