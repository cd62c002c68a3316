package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CallRecord captures one backend call for the audit log.
type CallRecord struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// CallLogger persists CallRecords. The store implements this; tests use a
// no-op.
type CallLogger interface {
	AppendLLMCall(ctx context.Context, rec CallRecord) error
}

// NopCallLogger discards call records.
type NopCallLogger struct{}

func (NopCallLogger) AppendLLMCall(context.Context, CallRecord) error { return nil }

// LoggingProvider is a decorator that records every backend call, both to
// the structured log and to the persistent call log.
type LoggingProvider struct {
	inner Provider
	calls CallLogger
	log   *zap.Logger
}

// WithLogging wraps a Provider with call logging.
func WithLogging(p Provider, calls CallLogger, log *zap.Logger) Provider {
	if calls == nil {
		calls = NopCallLogger{}
	}
	return &LoggingProvider{inner: p, calls: calls, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	rec := CallRecord{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	l.log.Debug("model call",
		zap.String("purpose", purpose),
		zap.String("model", rec.Model),
		zap.Int64("latency_ms", rec.LatencyMs),
		zap.Bool("success", rec.Success),
	)

	// Log the record but never fail the request over it.
	if logErr := l.calls.AppendLLMCall(ctx, rec); logErr != nil {
		l.log.Warn("failed to persist model call record", zap.Error(logErr))
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
