package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	errNotFound := NewError(http.StatusNotFound, "session not found")

	wrapped := fmt.Errorf("loading: %w", errNotFound)
	assert.ErrorIs(t, wrapped, errNotFound)
	assert.ErrorIs(t, NewError(http.StatusNotFound, "session not found"), errNotFound)
	assert.NotErrorIs(t, NewError(http.StatusBadRequest, "session not found"), errNotFound)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusCode(fmt.Errorf("x: %w", NewError(http.StatusConflict, "dup"))))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("plain")))
}
