package llm

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
)

// ChainProvider tries a bounded ordered list of per-model providers in
// sequence, moving to the next candidate only when the current one reports
// its model as unsupported. Once a candidate serves a request it becomes
// sticky, so the probe cost is paid at most once per process.
type ChainProvider struct {
	candidates []Provider
	active     atomic.Int32
	log        *zap.Logger
}

// WithModelFallback builds a ChainProvider over the candidate providers.
// The list must be non-empty.
func WithModelFallback(candidates []Provider, log *zap.Logger) *ChainProvider {
	return &ChainProvider{candidates: candidates, log: log}
}

func (c *ChainProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := int(c.active.Load())

	var lastErr error
	for i := start; i < len(c.candidates); i++ {
		resp, err := c.candidates[i].Generate(ctx, req)
		if err == nil {
			c.active.Store(int32(i))
			return resp, nil
		}

		var unsupported *ErrModelUnsupported
		if !errors.As(err, &unsupported) {
			return nil, err
		}

		lastErr = err
		if i+1 < len(c.candidates) {
			c.log.Warn("model unsupported, trying next candidate",
				zap.String("model", c.candidates[i].ModelID()),
				zap.String("next", c.candidates[i+1].ModelID()),
			)
		}
	}

	return nil, lastErr
}

// ModelID returns the currently active candidate's model.
func (c *ChainProvider) ModelID() string {
	return c.candidates[c.active.Load()].ModelID()
}
