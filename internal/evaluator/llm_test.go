package evaluator

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/llm"
)

func questionSetJSON() json.RawMessage {
	return json.RawMessage(`{"questions":[
		{"difficulty":"easy","question":"What is JSX?"},
		{"difficulty":"easy","question":"What is a prop?"},
		{"difficulty":"medium","question":"Explain useEffect dependencies."},
		{"difficulty":"medium","question":"How does Express middleware chain?"},
		{"difficulty":"hard","question":"Design optimistic UI updates."},
		{"difficulty":"hard","question":"Scale websockets across nodes."}
	]}`)
}

func TestLLMEvaluator_GenerateQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionSetJSON()})
	eval := NewLLMEvaluator(mock, time.Second, zap.NewNop())

	plan := interview.QuestionPlan()
	drafts, err := eval.GenerateQuestions(t.Context(), plan, interview.Candidate{Name: "Ada"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(drafts) != 6 {
		t.Fatalf("drafts %d, want 6", len(drafts))
	}
	if drafts[0].Text != "What is JSX?" {
		t.Errorf("first draft %q", drafts[0].Text)
	}
	if drafts[5].Difficulty != interview.DifficultyHard {
		t.Errorf("last draft difficulty %s, want hard", drafts[5].Difficulty)
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "interview-questions" {
		t.Error("expected schema name 'interview-questions'")
	}
}

func TestLLMEvaluator_GenerateFillsBlankSlots(t *testing.T) {
	// The model only answered four of six slots; the evaluator must
	// fabricate the rest deterministically instead of failing.
	partial := json.RawMessage(`{"questions":[
		{"difficulty":"easy","question":"What is JSX?"},
		{"difficulty":"easy","question":""},
		{"difficulty":"medium","question":"Explain useEffect dependencies."},
		{"difficulty":"medium","question":"How does Express middleware chain?"}
	]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: partial})
	eval := NewLLMEvaluator(mock, time.Second, zap.NewNop())

	drafts, err := eval.GenerateQuestions(t.Context(), interview.QuestionPlan(), interview.Candidate{Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(drafts) != 6 {
		t.Fatalf("drafts %d, want 6", len(drafts))
	}
	for i, d := range drafts {
		if d.Text == "" {
			t.Errorf("slot %d left empty", i)
		}
	}
}

func TestLLMEvaluator_GenerateFallsBackOnInvalidResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Err: errors.New("schema mismatch")},
	})
	eval := NewLLMEvaluator(mock, time.Second, zap.NewNop())

	drafts, err := eval.GenerateQuestions(t.Context(), interview.QuestionPlan(), interview.Candidate{Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("generate should degrade, got %v", err)
	}
	if len(drafts) != 6 {
		t.Fatalf("drafts %d, want 6", len(drafts))
	}

	// The degraded set must match the deterministic bank for this candidate.
	want, _ := NewFallback().GenerateQuestions(t.Context(), interview.QuestionPlan(), interview.Candidate{Email: "ada@example.com"})
	for i := range drafts {
		if drafts[i].Text != want[i].Text {
			t.Errorf("slot %d: got %q, want bank question %q", i, drafts[i].Text, want[i].Text)
		}
	}
}

func TestLLMEvaluator_GeneratePropagatesOutages(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")},
	})
	eval := NewLLMEvaluator(mock, time.Second, zap.NewNop())

	_, err := eval.GenerateQuestions(t.Context(), interview.QuestionPlan(), interview.Candidate{})
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Errorf("got %v, want ErrProviderUnavailable", err)
	}
}

func TestLLMEvaluator_ScoreAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"score": 7.5, "feedback": "Solid grasp of hooks."}`),
	})
	eval := NewLLMEvaluator(mock, time.Second, zap.NewNop())

	res, err := eval.ScoreAnswer(t.Context(), ScoreInput{
		Question:   "Explain hooks.",
		Answer:     "Hooks let function components hold state.",
		Difficulty: interview.DifficultyEasy,
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if res.Score != 7.5 {
		t.Errorf("score %v, want 7.5", res.Score)
	}
	if res.Feedback != "Solid grasp of hooks." {
		t.Errorf("feedback %q", res.Feedback)
	}
}

func TestLLMEvaluator_ScoreMalformedIsHardError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`not json at all`),
	})
	eval := NewLLMEvaluator(mock, time.Second, zap.NewNop())

	_, err := eval.ScoreAnswer(t.Context(), ScoreInput{Question: "q", Answer: "a"})
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Errorf("got %v, want ErrInvalidResponse", err)
	}
}

func TestLLMEvaluator_Summarize(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary": "Strong candidate overall.", "recommendation": "Advance to onsite."}`),
	})
	eval := NewLLMEvaluator(mock, time.Second, zap.NewNop())

	sum, err := eval.Summarize(t.Context(), SummarizeInput{AverageScore: 8.2})
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.Summary != "Strong candidate overall." {
		t.Errorf("summary %q", sum.Summary)
	}
	if sum.Recommendation != "Advance to onsite." {
		t.Errorf("recommendation %q", sum.Recommendation)
	}
}
