package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/llm"
)

// generation settings; scoring and summaries are graded work, so the
// temperature stays low.
const (
	generateMaxTokens = 2048
	scoreMaxTokens    = 512
	summaryMaxTokens  = 768
	temperature       = 0.3
)

// LLMEvaluator grades interviews through a live model provider. Question
// generation degrades per slot (or wholesale, on a malformed response) to
// the deterministic fallback; scoring and summarization treat persistent
// malformed output as a hard failure of the calling action.
type LLMEvaluator struct {
	provider llm.Provider
	fallback *Fallback
	timeout  time.Duration
	log      *zap.Logger
}

// NewLLMEvaluator creates an evaluator over the given provider.
func NewLLMEvaluator(provider llm.Provider, timeout time.Duration, log *zap.Logger) *LLMEvaluator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMEvaluator{
		provider: provider,
		fallback: NewFallback(),
		timeout:  timeout,
		log:      log,
	}
}

type questionSetOutput struct {
	Questions []struct {
		Difficulty string `json:"difficulty"`
		Question   string `json:"question"`
	} `json:"questions"`
}

func (e *LLMEvaluator) GenerateQuestions(ctx context.Context, plan []interview.PlanSlot, candidate interview.Candidate) ([]QuestionDraft, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req := llm.Request{
		System: generateSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGeneratePrompt(plan, candidate)},
		},
		Schema:      questionSetSchema,
		MaxTokens:   generateMaxTokens,
		Temperature: temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		// A response the backend cannot shape correctly degrades to the
		// deterministic bank; outages and rate limits propagate.
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			e.log.Warn("malformed question generation response, using fallback bank", zap.Error(err))
			return e.fallback.GenerateQuestions(ctx, plan, candidate)
		}
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	var out questionSetOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		e.log.Warn("unparseable question generation response, using fallback bank", zap.Error(err))
		return e.fallback.GenerateQuestions(ctx, plan, candidate)
	}

	// Per-slot degradation: any slot the model left blank gets a
	// deterministically fabricated question so planning never partially fails.
	seed := e.fallback.seedFor(candidate)
	drafts := make([]QuestionDraft, len(plan))
	for i, slot := range plan {
		text := ""
		if i < len(out.Questions) {
			text = out.Questions[i].Question
		}
		if text == "" {
			text = questionFor(slot.Difficulty, seed+uint64(i))
		}
		drafts[i] = QuestionDraft{Text: text, Difficulty: slot.Difficulty}
	}
	return drafts, nil
}

type scoreOutput struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

func (e *LLMEvaluator) ScoreAnswer(ctx context.Context, in ScoreInput) (*ScoreResult, error) {
	ctx = llm.WithPurpose(ctx, "answer-scoring")
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req := llm.Request{
		System: scoreSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildScorePrompt(in)},
		},
		Schema:      scoreSchema,
		MaxTokens:   scoreMaxTokens,
		Temperature: temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("score answer: %w", err)
	}

	var out scoreOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("score answer: parse response: %w", &llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}

	feedback := out.Feedback
	if feedback == "" {
		feedback = "Score generated by AI."
	}

	return &ScoreResult{Score: out.Score, Feedback: feedback}, nil
}

type summaryOutput struct {
	Summary        string `json:"summary"`
	Recommendation string `json:"recommendation"`
}

func (e *LLMEvaluator) Summarize(ctx context.Context, in SummarizeInput) (*Summary, error) {
	ctx = llm.WithPurpose(ctx, "summary")
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req := llm.Request{
		System: summarySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSummaryPrompt(in)},
		},
		Schema:      summarySchema,
		MaxTokens:   summaryMaxTokens,
		Temperature: temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("summarize interview: %w", err)
	}

	var out summaryOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("summarize interview: parse response: %w", &llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}

	if out.Summary == "" {
		out.Summary = "Summary not available."
	}

	return &Summary{Summary: out.Summary, Recommendation: out.Recommendation}, nil
}
