package lesson

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/edumate/server/internal/module/llm"
	"github.com/edumate/server/internal/module/render"
	"github.com/edumate/server/internal/utils/metrics"
	"github.com/edumate/server/internal/utils/requestctx"
	"go.uber.org/zap"
)

// Renderer renders a job into a published video.
type Renderer interface {
	Render(ctx context.Context, job render.Job) (*render.Artifact, error)
}

// Service runs the generation pipeline.
type Service struct {
	client       llm.Client
	renderer     Renderer
	modelTimeout time.Duration
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewService creates a new lesson service. modelTimeout bounds each model
// call; zero leaves it to the caller's context.
func NewService(client llm.Client, renderer Renderer, modelTimeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:       client,
		renderer:     renderer,
		modelTimeout: modelTimeout,
		metrics:      m,
		logger:       logger.Named("lesson"),
	}
}

// Generate turns a prompt into code, narration, explanation and a video.
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*Result, error) {
	run := s.start(ctx, "generate")

	prompt := ""
	if req != nil {
		prompt = strings.TrimSpace(req.Prompt)
	}
	if prompt == "" {
		return nil, run.fail(ErrPromptRequired)
	}
	run.advance(StageValidated)

	reply, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, run.fail(&BackendError{Err: err})
	}
	run.advance(StageModelCalled)

	sections := ParseSections(reply)
	run.advance(StageParsed, zap.Bool("has_code", sections.Code != nil),
		zap.Bool("has_narration", sections.Narration != nil),
		zap.Bool("has_explanation", sections.Explanation != nil))

	if sections.Code == nil {
		return nil, run.fail(ErrNoCode)
	}
	code := SanitizeCode(*sections.Code)
	if code == "" {
		return nil, run.fail(ErrNoCode)
	}
	run.advance(StageSanitized)

	res, err := s.renderCode(ctx, run, code)
	if err != nil {
		var renderErr *RenderError
		if errors.As(err, &renderErr) {
			renderErr.Sections = sections
		}
		return nil, err
	}
	res.Sections = sections

	run.done()
	return res, nil
}

// Render renders caller-supplied code, skipping the model. It lets a client
// retry a failed render or render edited code.
func (s *Service) Render(ctx context.Context, code string) (*Result, error) {
	run := s.start(ctx, "render")

	code = SanitizeCode(code)
	if code == "" {
		return nil, run.fail(ErrCodeRequired)
	}
	run.advance(StageValidated)
	run.advance(StageSanitized)

	res, err := s.renderCode(ctx, run, code)
	if err != nil {
		return nil, err
	}

	run.done()
	return res, nil
}

func (s *Service) renderCode(ctx context.Context, run *pipelineRun, code string) (*Result, error) {
	scene, err := ExtractSceneName(code)
	if err != nil {
		return nil, run.fail(err)
	}
	run.advance(StageSceneExtracted, zap.String("scene", scene))

	job := render.NewJob(code, scene)
	artifact, err := s.renderer.Render(ctx, job)
	if err != nil {
		renderErr := &RenderError{Code: code, Err: err}
		var rerr *render.Error
		if errors.As(err, &rerr) {
			renderErr.Diagnostics = rerr.Diagnostics
		} else {
			renderErr.Diagnostics = err.Error()
		}
		return nil, run.fail(renderErr)
	}
	run.advance(StageRendered, zap.String("job_id", job.ID), zap.String("video_url", artifact.URL))

	return &Result{
		JobID:    job.ID,
		Code:     code,
		Scene:    scene,
		VideoURL: artifact.URL,
	}, nil
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	if s.modelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.modelTimeout)
		defer cancel()
	}
	return s.client.Complete(ctx, prompt)
}

// pipelineRun tracks one pass through the stages for logs and metrics.
type pipelineRun struct {
	s      *Service
	logger *zap.Logger
	stage  Stage
	last   time.Time
}

func (s *Service) start(ctx context.Context, op string) *pipelineRun {
	r := &pipelineRun{
		s:      s,
		logger: s.logger.With(requestctx.Field(ctx), zap.String("op", op)),
		stage:  StageReceived,
		last:   time.Now(),
	}
	r.logger.Debug("pipeline stage", zap.String("stage", string(StageReceived)))
	return r
}

func (r *pipelineRun) advance(next Stage, fields ...zap.Field) {
	now := time.Now()
	elapsed := now.Sub(r.last)
	r.last = now
	r.stage = next

	if r.s.metrics != nil {
		r.s.metrics.RecordStage(string(next), elapsed)
	}
	r.logger.Debug("pipeline stage",
		append([]zap.Field{zap.String("stage", string(next)), zap.Duration("elapsed", elapsed)}, fields...)...)
}

// fail records the stage the run stopped at and returns err.
func (r *pipelineRun) fail(err error) error {
	if r.s.metrics != nil {
		r.s.metrics.RecordRun(string(r.stage), false)
	}
	r.logger.Warn("pipeline failed",
		zap.String("stage", string(r.stage)),
		zap.String("next", string(StageResponded)),
		zap.Error(err))
	return err
}

func (r *pipelineRun) done() {
	r.advance(StageResponded)
	if r.s.metrics != nil {
		r.s.metrics.RecordRun(string(StageResponded), true)
	}
	r.logger.Info("pipeline finished")
}
