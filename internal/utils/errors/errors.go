package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrInternal       = errors.New("internal error")
	ErrBackend        = errors.New("model backend error")
	ErrRender         = errors.New("render error")
)

// AppError represents an application error with HTTP status and error code.
// Details are flattened into the JSON body next to "error", so a failed
// request can still carry partial results.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	StatusCode int            `json:"-"`
	Err        error          `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(code string, message string, statusCode int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// BadRequest creates a bad request error.
func BadRequest(message string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        ErrBadRequest,
	}
}

// Internal creates an internal error.
func Internal(message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// Backend creates an error for a failed model backend call.
func Backend(message string, err error) *AppError {
	return &AppError{
		Code:       "BACKEND_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        fmt.Errorf("%w: %w", ErrBackend, err),
	}
}

// Render creates an error for a failed render. diagnostics is the
// renderer's own output and is returned to the caller as "details".
func Render(message, diagnostics string, err error) *AppError {
	return &AppError{
		Code:       "RENDER_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Details:    map[string]any{"details": diagnostics},
		Err:        fmt.Errorf("%w: %w", ErrRender, err),
	}
}

// WithDetails merges details into the error.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// Is reports whether target matches this error.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Err, target)
}

// ToResponse renders the JSON body: {"error": message, ...details}.
func (e *AppError) ToResponse() map[string]any {
	body := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		body[k] = v
	}
	body["error"] = e.Message
	return body
}

// GetStatusCode returns the HTTP status for err. Errors that are not
// AppErrors are internal.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
