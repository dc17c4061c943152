package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Publisher makes a rendered file reachable by the caller.
type Publisher interface {
	Publish(ctx context.Context, localPath, filename string) (*Artifact, error)
}

// LocalPublisher moves videos into a directory served under StaticRoute.
type LocalPublisher struct {
	dir     string
	baseURL string
}

// NewLocalPublisher creates a publisher writing to dir. baseURL is the
// server's externally reachable origin.
func NewLocalPublisher(dir, baseURL string) *LocalPublisher {
	return &LocalPublisher{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Publish moves localPath to <dir>/<filename>.
func (p *LocalPublisher) Publish(ctx context.Context, localPath, filename string) (*Artifact, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	dst := filepath.Join(p.dir, filename)
	if err := moveFile(localPath, dst); err != nil {
		return nil, err
	}

	return &Artifact{
		Path:     dst,
		URL:      p.baseURL + StaticRoute + "/" + filename,
		Filename: filename,
	}, nil
}

// moveFile renames src to dst, copying when they sit on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open rendered file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create published file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy rendered file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close published file: %w", err)
	}

	_ = os.Remove(src)
	return nil
}
