// Package render turns generated Manim code into a published video. Each
// job gets its own workspace and output name, so concurrent jobs never touch
// the same files.
package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StaticRoute is the URL prefix under which locally published videos are served.
const StaticRoute = "/static/videos"

// ErrNoOutput is returned when the renderer exits cleanly without writing a video.
var ErrNoOutput = errors.New("renderer produced no video")

// Job is one render invocation.
type Job struct {
	ID    string
	Code  string
	Scene string
}

// NewJob creates a job with a fresh id.
func NewJob(code, scene string) Job {
	return Job{
		ID:    uuid.NewString(),
		Code:  code,
		Scene: scene,
	}
}

// Filename returns the video file name for the job.
func (j Job) Filename() string {
	return j.ID + ".mp4"
}

// Artifact is a published video.
type Artifact struct {
	// Path is the server-local file, empty when the video lives in object storage.
	Path     string
	URL      string
	Filename string
}

// Error is a failed render. Diagnostics holds the renderer's own output.
type Error struct {
	Diagnostics string
	TimedOut    bool
	Err         error
}

func (e *Error) Error() string {
	if e.TimedOut {
		return "render timed out"
	}
	return fmt.Sprintf("render failed: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func timeoutError(limit time.Duration, output string, err error) *Error {
	diag := fmt.Sprintf("render exceeded the %s time limit and was stopped", limit)
	if output != "" {
		diag += "\n" + output
	}
	return &Error{Diagnostics: diag, TimedOut: true, Err: err}
}
