package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound_WrapsSentinel(t *testing.T) {
	err := NotFound("document", "docs/a.txt")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceNotFound))
	assert.Equal(t, `resource not found: document "docs/a.txt"`, err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
}

func TestHTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error keeps its status", New(ErrInvalidInput, http.StatusTeapot, "odd"), http.StatusTeapot},
		{"wrapped not found", fmt.Errorf("building index: %w", ErrResourceNotFound), http.StatusNotFound},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"already built", ErrIndexBuilt, http.StatusConflict},
		{"not ready", ErrIndexNotReady, http.StatusServiceUnavailable},
		{"timeout", ErrTimeout, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusCode(tt.err))
		})
	}
}

func TestNewf_FormatsMessage(t *testing.T) {
	err := Newf(ErrInvalidInput, http.StatusBadRequest, "expected %d keywords, got %d", 2, 3)

	assert.Equal(t, "invalid input: expected 2 keywords, got 3", err.Error())
	assert.Equal(t, ErrInvalidInput, errors.Unwrap(err))
}
