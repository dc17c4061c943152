package render

import (
	"context"
	"os/exec"
	"time"
)

// Command is a subprocess invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// Runner executes a command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, cmd Command, limit int) ([]byte, error)
}

// ExecRunner runs commands with os/exec. The process is killed when ctx ends.
type ExecRunner struct {
	// WaitDelay bounds how long output pipes are drained after the kill.
	WaitDelay time.Duration
}

// Run implements Runner. Only the last limit bytes of output are kept.
func (r ExecRunner) Run(ctx context.Context, c Command, limit int) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env

	waitDelay := r.WaitDelay
	if waitDelay <= 0 {
		waitDelay = 5 * time.Second
	}
	cmd.WaitDelay = waitDelay
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}

	out := newTailBuffer(limit)
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	return out.Bytes(), err
}

// tailBuffer keeps the last max bytes written to it. Renderer tracebacks
// end up at the bottom of the output.
type tailBuffer struct {
	max       int
	buf       []byte
	truncated bool
}

func newTailBuffer(max int) *tailBuffer {
	if max <= 0 {
		max = 16 * 1024
	}
	return &tailBuffer{max: max}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = append(b.buf[:0], b.buf[over:]...)
		b.truncated = true
	}
	return n, nil
}

func (b *tailBuffer) Bytes() []byte {
	if !b.truncated {
		return b.buf
	}
	return append([]byte("[output truncated]\n"), b.buf...)
}
