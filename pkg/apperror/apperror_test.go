package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad %s", "input"), http.StatusBadRequest},
		{"insufficient stock", InsufficientStock("not enough"), http.StatusBadRequest},
		{"auth", Auth("no token"), http.StatusUnauthorized},
		{"forbidden", Forbidden("admins only"), http.StatusForbidden},
		{"not found", NotFound("order not found"), http.StatusNotFound},
		{"conflict", Conflict("email already exists"), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", NotFound("gone")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("create order: %w", InsufficientStock("Insufficient stock for Widget"))

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "create order: Insufficient stock for Widget", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, "failed to save order")

	assert.Equal(t, KindUnhandled, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save order: connection reset", err.Error())
}
