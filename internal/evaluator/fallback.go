package evaluator

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/abhisek/intervue/internal/interview"
)

// questionBank holds the curated per-difficulty fallback questions. The
// interview targets full-stack (React + Node.js) roles.
var questionBank = map[interview.Difficulty][]string{
	interview.DifficultyEasy: {
		"Explain the purpose of React hooks and give one example.",
		"What is the difference between == and === in JavaScript?",
		"How does destructuring assignment work in ES6?",
	},
	interview.DifficultyMedium: {
		"Describe how you would structure state management in a mid-sized React application.",
		"How do you design a REST API in Node.js that supports pagination and filtering?",
		"Explain how context and prop drilling differ in React applications.",
	},
	interview.DifficultyHard: {
		"Walk through optimizing a React app that suffers from repeated re-renders in a complex component tree.",
		"Design a scalable architecture for uploading large files in a Node.js/Express backend.",
		"Explain how you would secure an SSR React application with role-based access control end-to-end.",
	},
}

// scoreKeywords grant a small bonus in fallback scoring when the answer
// touches the target stack.
var scoreKeywords = []string{"React", "Node"}

// Fallback is the deterministic, dependency-free Evaluator. The same
// candidate always sees the same question set across retries and sessions,
// while different candidates diverge.
type Fallback struct {
	counter atomic.Uint64
}

// NewFallback creates the deterministic evaluator.
func NewFallback() *Fallback {
	return &Fallback{}
}

// seedFor derives a stable selection seed from candidate identity: email,
// else name, else a monotonic counter for fully anonymous candidates.
func (f *Fallback) seedFor(c interview.Candidate) uint64 {
	id := c.Email
	if id == "" {
		id = c.Name
	}
	if id == "" {
		id = strconv.FormatUint(f.counter.Add(1), 10)
	}
	sum := sha1.Sum([]byte(id))
	seed, err := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 64)
	if err != nil {
		return 0
	}
	return seed
}

// questionFor selects the bank question for a difficulty and combined seed.
func questionFor(difficulty interview.Difficulty, seed uint64) string {
	bank := questionBank[difficulty]
	if len(bank) == 0 {
		bank = questionBank[interview.DifficultyMedium]
	}
	return bank[seed%uint64(len(bank))]
}

func (f *Fallback) GenerateQuestions(_ context.Context, plan []interview.PlanSlot, candidate interview.Candidate) ([]QuestionDraft, error) {
	seed := f.seedFor(candidate)
	drafts := make([]QuestionDraft, len(plan))
	for i, slot := range plan {
		drafts[i] = QuestionDraft{
			Text:       questionFor(slot.Difficulty, seed+uint64(i)),
			Difficulty: slot.Difficulty,
		}
	}
	return drafts, nil
}

func (f *Fallback) ScoreAnswer(_ context.Context, in ScoreInput) (*ScoreResult, error) {
	sanitized := strings.TrimSpace(in.Answer)
	if sanitized == "" {
		return &ScoreResult{
			Score:    2,
			Feedback: "Fallback scoring: no answer provided, score 2/10.",
		}, nil
	}

	lengthScore := math.Round(float64(len(sanitized)) / 200 * 10)
	if lengthScore > 10 {
		lengthScore = 10
	}

	var bonus float64
	for _, kw := range scoreKeywords {
		if strings.Contains(sanitized, kw) {
			bonus = 1
			break
		}
	}

	score := lengthScore + bonus
	if score > 10 {
		score = 10
	}
	if score < 2 {
		score = 2
	}

	return &ScoreResult{
		Score:    score,
		Feedback: fmt.Sprintf("Fallback scoring: answer length implies score %g/10.", score),
	}, nil
}

func (f *Fallback) Summarize(_ context.Context, in SummarizeInput) (*Summary, error) {
	who := in.Candidate.Name
	if who == "" {
		who = in.Candidate.Email
	}
	if who == "" {
		who = "Unknown"
	}
	return &Summary{
		Summary: fmt.Sprintf(
			"Candidate %s completed the interview with an average score of %.1f/10 across %d answers.",
			who, in.AverageScore, len(in.Pairs),
		),
		Recommendation: recommendationFor(in.AverageScore),
	}, nil
}

// recommendationFor maps an average score onto the fixed hiring bands.
func recommendationFor(avg float64) string {
	switch {
	case avg >= 7:
		return "Strong candidate, recommend advancing."
	case avg >= 4:
		return "Mixed results, consider an additional round."
	default:
		return "Not recommended at this time."
	}
}
