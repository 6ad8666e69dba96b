package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	testCases := []struct {
		kind   Kind
		status int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthenticated, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.status, tc.kind.Status())
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))

	// Untagged errors default to internal.
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	// Tagged errors survive wrapping.
	wrapped := fmt.Errorf("while handling request: %w", Conflict("duplicate"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal(cause, "Failed to save")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Failed to save")
	assert.Contains(t, err.Error(), "disk full")
}

func TestConstructorsFormat(t *testing.T) {
	err := Validation("amount %v is not positive", -3)
	assert.Equal(t, "amount -3 is not positive", err.Message)
	assert.True(t, Is(err, KindValidation))
}
