package lesson

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/edumate/server/internal/utils/errors"
)

// Pipeline errors.
var (
	ErrPromptRequired = errors.New("prompt is required")
	ErrCodeRequired   = errors.New("code is required")
	ErrNoCode         = errors.New("no valid code extracted")
	ErrNoScene        = errors.New("no renderable scene found")
)

// BackendError is a failed model call.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// RenderError is a failed render. It keeps what the pipeline produced
// before the render stage so the caller can still show it.
type RenderError struct {
	Sections    Sections
	Code        string
	Diagnostics string
	Err         error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// ToAppError maps pipeline errors to HTTP errors and response bodies.
func ToAppError(err error) *apperrors.AppError {
	var (
		backendErr *BackendError
		renderErr  *RenderError
		appErr     *apperrors.AppError
	)

	switch {
	case errors.Is(err, ErrPromptRequired):
		return apperrors.BadRequest("Prompt is required")
	case errors.Is(err, ErrCodeRequired):
		return apperrors.BadRequest("Code is required")
	case errors.Is(err, ErrNoCode):
		return apperrors.NewAppError("NO_CODE", "No valid code extracted", http.StatusInternalServerError, err)
	case errors.Is(err, ErrNoScene):
		return apperrors.NewAppError("NO_SCENE", "No renderable scene found", http.StatusInternalServerError, err)
	case errors.As(err, &backendErr):
		return apperrors.Backend(backendErr.Error(), backendErr.Err)
	case errors.As(err, &renderErr):
		code := renderErr.Code
		return apperrors.Render("Rendering failed", renderErr.Diagnostics, renderErr.Err).WithDetails(map[string]any{
			"code":        &code,
			"narration":   renderErr.Sections.Narration,
			"explanation": renderErr.Sections.Explanation,
			"video_url":   nil,
		})
	case errors.As(err, &appErr):
		return appErr
	default:
		return apperrors.Internal("internal server error", err)
	}
}
