package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/edumate/server/internal/utils/metrics"
	"github.com/edumate/server/internal/utils/requestctx"
	"go.uber.org/zap"
)

const scriptName = "scene.py"

var sceneIdent = regexp.MustCompile(`^[A-Za-z_]\w*$`)

// errRenderTimeout is the cause attached to the renderer's own deadline.
var errRenderTimeout = errors.New("render time limit reached")

// Config holds renderer settings.
type Config struct {
	Binary             string
	Quality            string
	FPS                int
	Timeout            time.Duration
	WorkDir            string
	KeepWorkspace      bool
	MaxDiagnosticBytes int
	ExtraEnv           []string
}

// Renderer runs the manim executable for a job and publishes the result.
type Renderer struct {
	cfg       Config
	runner    Runner
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewRenderer creates a renderer. A nil runner uses ExecRunner.
func NewRenderer(cfg Config, runner Runner, publisher Publisher, m *metrics.Metrics, logger *zap.Logger) *Renderer {
	if cfg.Binary == "" {
		cfg.Binary = "manim"
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = os.TempDir()
	}
	if cfg.MaxDiagnosticBytes <= 0 {
		cfg.MaxDiagnosticBytes = 16 * 1024
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		cfg:       cfg,
		runner:    runner,
		publisher: publisher,
		metrics:   m,
		logger:    logger.Named("render"),
	}
}

// Render writes job.Code to a private workspace, renders job.Scene and
// publishes the video. Failures are returned as *Error.
func (r *Renderer) Render(ctx context.Context, job Job) (*Artifact, error) {
	if job.ID == "" || filepath.Base(job.ID) != job.ID {
		return nil, fmt.Errorf("render: invalid job id %q", job.ID)
	}
	if !sceneIdent.MatchString(job.Scene) {
		return nil, fmt.Errorf("render: invalid scene name %q", job.Scene)
	}

	start := time.Now()
	if r.metrics != nil {
		r.metrics.RendersInProgress.Inc()
		defer r.metrics.RendersInProgress.Dec()
	}

	log := r.logger.With(requestctx.Field(ctx), zap.String("job_id", job.ID), zap.String("scene", job.Scene))

	artifact, err := r.render(ctx, job, log)
	elapsed := time.Since(start)

	status := "success"
	var rerr *Error
	switch {
	case errors.As(err, &rerr) && rerr.TimedOut:
		status = "timeout"
	case err != nil:
		status = "failure"
	}
	if r.metrics != nil {
		r.metrics.RecordRender(status, elapsed)
	}

	if err != nil {
		log.Warn("render failed", zap.String("status", status), zap.Duration("elapsed", elapsed), zap.Error(err))
		return nil, err
	}
	log.Info("render finished", zap.String("url", artifact.URL), zap.Duration("elapsed", elapsed))
	return artifact, nil
}

func (r *Renderer) render(ctx context.Context, job Job, log *zap.Logger) (*Artifact, error) {
	workspace := filepath.Join(r.cfg.WorkDir, job.ID)
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return nil, &Error{Diagnostics: "could not create render workspace", Err: err}
	}
	if !r.cfg.KeepWorkspace {
		defer func() {
			if err := os.RemoveAll(workspace); err != nil {
				log.Warn("remove workspace", zap.String("workspace", workspace), zap.Error(err))
			}
		}()
	}

	script := filepath.Join(workspace, scriptName)
	if err := os.WriteFile(script, []byte(job.Code), 0o644); err != nil {
		return nil, &Error{Diagnostics: "could not write scene file", Err: err}
	}

	mediaDir := filepath.Join(workspace, "media")
	cmd := Command{
		Name: r.cfg.Binary,
		Args: r.args(script, mediaDir, job),
		Dir:  workspace,
		Env:  r.env(),
	}

	runCtx, cancel := context.WithTimeoutCause(ctx, r.cfg.Timeout, errRenderTimeout)
	defer cancel()

	log.Debug("starting renderer", zap.String("binary", cmd.Name), zap.Strings("args", cmd.Args))
	out, err := r.runner.Run(runCtx, cmd, r.cfg.MaxDiagnosticBytes)
	output := string(out)
	if err != nil {
		if errors.Is(context.Cause(runCtx), errRenderTimeout) {
			return nil, timeoutError(r.cfg.Timeout, output, context.DeadlineExceeded)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			diag := "render stopped: " + context.Cause(ctx).Error()
			if output != "" {
				diag += "\n" + output
			}
			return nil, &Error{Diagnostics: diag, Err: ctxErr}
		}
		if output == "" {
			output = err.Error()
		}
		return nil, &Error{Diagnostics: output, Err: err}
	}

	video, err := findFile(mediaDir, job.Filename())
	if err != nil {
		diag := fmt.Sprintf("renderer exited successfully but %s was not found", job.Filename())
		if output != "" {
			diag += "\n" + output
		}
		return nil, &Error{Diagnostics: diag, Err: err}
	}

	artifact, err := r.publisher.Publish(ctx, video, job.Filename())
	if err != nil {
		return nil, &Error{Diagnostics: "could not publish video: " + err.Error(), Err: err}
	}
	return artifact, nil
}

// args builds: render [-q Q] --format mp4 --fps N --media_dir DIR -o ID.mp4 FILE SCENE
func (r *Renderer) args(script, mediaDir string, job Job) []string {
	args := []string{"render"}
	if r.cfg.Quality != "" {
		args = append(args, "-q", r.cfg.Quality)
	}
	return append(args,
		"--format", "mp4",
		"--fps", strconv.Itoa(r.cfg.FPS),
		"--media_dir", mediaDir,
		"-o", job.Filename(),
		script,
		job.Scene,
	)
}

// env passes through only what the renderer needs to locate its toolchain.
func (r *Renderer) env() []string {
	var env []string
	for _, key := range []string{"PATH", "HOME", "LANG"} {
		if v, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+v)
		}
	}
	return append(env, r.cfg.ExtraEnv...)
}

func findFile(root, name string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			found = p
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	if found == "" {
		return "", ErrNoOutput
	}
	return found, nil
}
