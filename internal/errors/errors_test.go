package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/dilvane/internal/errors"
)

func TestAppError_Wrapping(t *testing.T) {
	base := fmt.Errorf("disk full")
	err := fmt.Errorf("saving lesson: %w", errors.NewInternalError(base))

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, appErr.Error(), "disk full")
}

func TestHasCode(t *testing.T) {
	assert.True(t, errors.HasCode(errors.NewConflictError("dup"), errors.ErrCodeConflict))
	assert.False(t, errors.HasCode(errors.NewConflictError("dup"), errors.ErrCodeNotFound))
	assert.False(t, errors.HasCode(fmt.Errorf("plain"), errors.ErrCodeInternal))
}

func TestRetryable(t *testing.T) {
	assert.True(t, errors.NewUnavailableError("generator down", nil).Retryable())
	assert.False(t, errors.NewValidationError("email", "required").Retryable())
}
