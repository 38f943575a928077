package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("sentinel")

func TestAppError_UnwrapsCause(t *testing.T) {
	appErr := NewUnprocessableError("insufficient balance").WithCause(errSentinel)
	wrapped := fmt.Errorf("confirm record: %w", appErr)

	assert.True(t, errors.Is(wrapped, errSentinel))
	assert.Equal(t, http.StatusUnprocessableEntity, GetAppError(wrapped).Code)
	assert.Equal(t, ErrorTypeUnprocessable, GetAppError(wrapped).Type)
}

func TestAppError_ErrorString(t *testing.T) {
	assert.Equal(t, "not_found: record not found", NewNotFoundError("record not found").Error())
	assert.Equal(t, "conflict: exists (id 4)", NewConflictError("exists", "id 4").Error())
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsConflictError(NewConflictError("x")))
	assert.True(t, IsNotFoundError(NewNotFoundError("x")))
	assert.True(t, IsValidationError(NewValidationError("x")))
	assert.False(t, IsNotFoundError(errSentinel))
	assert.Nil(t, GetAppError(errSentinel))
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql", errors.New("Error 1062: Duplicate entry 'a' for key 'idx'"), true},
		{"postgres", errors.New("pq: duplicate key value violates unique constraint"), true},
		{"sqlite", errors.New("UNIQUE constraint failed: entitlements.household_id"), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}
