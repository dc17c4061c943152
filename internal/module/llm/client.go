// Package llm talks to generative-language backends. Every client sends the
// fixed SystemInstruction together with the caller's prompt and returns the
// model's raw text; parsing that text is the caller's job.
package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

var (
	// ErrEmptyReply is returned when the backend answered without any text.
	ErrEmptyReply = errors.New("model returned an empty reply")

	// ErrCircuitOpen is returned while the backend breaker is open.
	ErrCircuitOpen = errors.New("model backend circuit open")

	// ErrDisabled is returned by Disabled.
	ErrDisabled = errors.New("model backend not configured")
)

// Client sends a prompt to a model backend and returns its raw reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f ClientFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Disabled is the client for render-only runs that never call a model.
var Disabled Client = ClientFunc(func(context.Context, string) (string, error) {
	return "", ErrDisabled
})

// newHTTPClient returns a client tuned for a small number of long-running
// requests to a single API host.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
