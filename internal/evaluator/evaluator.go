// Package evaluator defines the evaluation provider contract the interview
// engine depends on: question generation, answer scoring and closing
// summaries. Two implementations exist, one backed by a live model provider
// and one fully deterministic fallback, selected once at startup.
package evaluator

import (
	"context"

	"github.com/abhisek/intervue/internal/interview"
)

// QuestionDraft is one generated question before the engine assigns it an
// identifier and a time limit.
type QuestionDraft struct {
	Text       string
	Difficulty interview.Difficulty
}

// ScoreInput carries everything needed to grade one answer.
type ScoreInput struct {
	Question   string
	Answer     string
	Difficulty interview.Difficulty
	Candidate  interview.Candidate
}

// ScoreResult is the grade for one answer.
type ScoreResult struct {
	Score    float64
	Feedback string
}

// QAPair is one question/answer/feedback triple for summarization.
type QAPair struct {
	Question   string
	Difficulty interview.Difficulty
	Answer     string
	Score      float64
	Feedback   string
}

// SummarizeInput carries the full interview for the closing summary.
type SummarizeInput struct {
	Candidate    interview.Candidate
	Pairs        []QAPair
	AverageScore float64
}

// Summary is the closing narrative for a finished interview.
type Summary struct {
	Summary        string
	Recommendation string
}

// Evaluator is the pluggable evaluation provider.
//
// GenerateQuestions must return exactly one draft per plan slot, in slot
// order, and must fabricate a deterministic question for any slot the
// backend could not fill. Planning is never partially applied.
type Evaluator interface {
	GenerateQuestions(ctx context.Context, plan []interview.PlanSlot, candidate interview.Candidate) ([]QuestionDraft, error)
	ScoreAnswer(ctx context.Context, in ScoreInput) (*ScoreResult, error)
	Summarize(ctx context.Context, in SummarizeInput) (*Summary, error)
}
