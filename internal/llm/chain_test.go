package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
)

// namedMock wraps a MockProvider with a distinct model id so the chain's
// stickiness is observable.
type namedMock struct {
	*MockProvider
	model string
}

func (n *namedMock) ModelID() string { return n.model }

func TestChain_FallsToNextOnUnsupported(t *testing.T) {
	first := &namedMock{
		MockProvider: NewMockProvider(MockResponse{Err: &ErrModelUnsupported{Model: "flash"}}),
		model:        "flash",
	}
	second := &namedMock{
		MockProvider: NewMockProvider(MockResponse{Content: json.RawMessage(`{"v":1}`)}),
		model:        "pro",
	}
	chain := WithModelFallback([]Provider{first, second}, zap.NewNop())

	resp, err := chain.Generate(t.Context(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(resp.Content) != `{"v":1}` {
		t.Errorf("content %s", resp.Content)
	}
	if chain.ModelID() != "pro" {
		t.Errorf("active model %s, want pro", chain.ModelID())
	}
}

func TestChain_StickyAfterFirstSuccess(t *testing.T) {
	first := &namedMock{
		MockProvider: NewMockProvider(MockResponse{Err: &ErrModelUnsupported{Model: "flash"}}),
		model:        "flash",
	}
	second := &namedMock{
		MockProvider: NewMockProvider(
			MockResponse{Content: json.RawMessage(`{"v":1}`)},
			MockResponse{Content: json.RawMessage(`{"v":2}`)},
		),
		model: "pro",
	}
	chain := WithModelFallback([]Provider{first, second}, zap.NewNop())

	if _, err := chain.Generate(t.Context(), Request{}); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if _, err := chain.Generate(t.Context(), Request{}); err != nil {
		t.Fatalf("second generate: %v", err)
	}

	// The unsupported candidate is probed exactly once.
	if first.CallCount() != 1 {
		t.Errorf("first candidate calls %d, want 1", first.CallCount())
	}
	if second.CallCount() != 2 {
		t.Errorf("second candidate calls %d, want 2", second.CallCount())
	}
}

func TestChain_NonUnsupportedErrorsPropagate(t *testing.T) {
	first := &namedMock{
		MockProvider: NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}}),
		model:        "flash",
	}
	second := &namedMock{
		MockProvider: NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}),
		model:        "pro",
	}
	chain := WithModelFallback([]Provider{first, second}, zap.NewNop())

	_, err := chain.Generate(t.Context(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Errorf("got %v, want ErrRateLimit", err)
	}
	if second.CallCount() != 0 {
		t.Error("rate limit must not advance the chain")
	}
}

func TestChain_AllUnsupportedReturnsLastError(t *testing.T) {
	first := &namedMock{
		MockProvider: NewMockProvider(MockResponse{Err: &ErrModelUnsupported{Model: "a"}}),
		model:        "a",
	}
	second := &namedMock{
		MockProvider: NewMockProvider(MockResponse{Err: &ErrModelUnsupported{Model: "b"}}),
		model:        "b",
	}
	chain := WithModelFallback([]Provider{first, second}, zap.NewNop())

	_, err := chain.Generate(context.Background(), Request{})
	var unsupported *ErrModelUnsupported
	if !errors.As(err, &unsupported) {
		t.Fatalf("got %v, want ErrModelUnsupported", err)
	}
	if unsupported.Model != "b" {
		t.Errorf("last error model %s, want b", unsupported.Model)
	}
}
