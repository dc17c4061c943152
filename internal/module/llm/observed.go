package llm

import (
	"context"
	"time"

	"github.com/edumate/server/internal/utils/metrics"
	"github.com/edumate/server/internal/utils/requestctx"
	"go.uber.org/zap"
)

// ObservedClient records latency and outcome of every backend call.
type ObservedClient struct {
	next     Client
	provider string
	model    string
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewObservedClient wraps next with logging and metrics. m may be nil.
func NewObservedClient(next Client, provider, model string, m *metrics.Metrics, logger *zap.Logger) *ObservedClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObservedClient{
		next:     next,
		provider: provider,
		model:    model,
		metrics:  m,
		logger:   logger.Named("llm"),
	}
}

// Complete forwards to the wrapped client.
func (o *ObservedClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	reply, err := o.next.Complete(ctx, prompt)
	elapsed := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
	}
	if o.metrics != nil {
		o.metrics.RecordModelRequest(o.provider, o.model, status, elapsed)
	}

	fields := []zap.Field{
		requestctx.Field(ctx),
		zap.String("provider", o.provider),
		zap.String("model", o.model),
		zap.Duration("latency", elapsed),
	}
	if err != nil {
		o.logger.Warn("model call failed", append(fields, zap.Error(err))...)
	} else {
		o.logger.Debug("model call finished", append(fields, zap.Int("reply_bytes", len(reply)))...)
	}
	return reply, err
}
