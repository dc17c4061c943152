package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("Error returns message", func(t *testing.T) {
		err := &AppError{Code: "TEST_ERROR", Message: "test error message"}
		assert.Equal(t, "test error message", err.Error())
	})

	t.Run("Error includes wrapped error", func(t *testing.T) {
		err := &AppError{Code: "TEST_ERROR", Message: "outer", Err: errors.New("inner")}
		assert.Contains(t, err.Error(), "outer")
		assert.Contains(t, err.Error(), "inner")
	})

	t.Run("Unwrap returns wrapped error", func(t *testing.T) {
		wrapped := errors.New("wrapped error")
		err := &AppError{Code: "TEST_ERROR", Message: "test", Err: wrapped}
		assert.Equal(t, wrapped, err.Unwrap())
	})
}

func TestBadRequest(t *testing.T) {
	err := BadRequest("Prompt is required")

	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, map[string]any{"error": "Prompt is required"}, err.ToResponse())
}

func TestBackend(t *testing.T) {
	cause := errors.New("connection refused")
	err := Backend("model call failed", cause)

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.True(t, errors.Is(err, ErrBackend))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrRender))
}

func TestRender(t *testing.T) {
	err := Render("Rendering failed", "Traceback: boom", errors.New("exit status 1"))

	assert.Equal(t, "RENDER_ERROR", err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.True(t, errors.Is(err, ErrRender))

	body := err.WithDetails(map[string]any{"video_url": nil}).ToResponse()
	assert.Equal(t, "Rendering failed", body["error"])
	assert.Equal(t, "Traceback: boom", body["details"])
	v, ok := body["video_url"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestToResponse_ErrorKeyWins(t *testing.T) {
	err := Internal("boom", nil).WithDetails(map[string]any{"error": "shadowed"})
	assert.Equal(t, "boom", err.ToResponse()["error"])
}

func TestAppError_Is(t *testing.T) {
	a := Render("Rendering failed", "", errors.New("exit status 1"))
	assert.True(t, errors.Is(a, &AppError{Code: "RENDER_ERROR"}))
	assert.False(t, errors.Is(a, &AppError{Code: "BAD_REQUEST"}))
	assert.True(t, errors.Is(a, ErrRender))
}

func TestGetStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"app error", BadRequest("x"), http.StatusBadRequest},
		{"wrapped app error", fmt.Errorf("handler: %w", BadRequest("x")), http.StatusBadRequest},
		{"backend error", Backend("down", errors.New("eof")), http.StatusInternalServerError},
		{"app error without status", &AppError{Code: "X"}, http.StatusInternalServerError},
		{"wrapped sentinel", errors.Join(errors.New("ctx"), ErrBadRequest), http.StatusBadRequest},
		{"plain error", errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetStatusCode(tt.err))
		})
	}
}
