package evaluator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/intervue/internal/interview"
)

const generateSystemPrompt = `You are an AI interviewer focused on full-stack (React + Node.js) roles.
Return exactly the requested number of interview questions. Each question
assesses practical skills and follows the provided difficulty order. Plain
text only, no markdown.`

const scoreSystemPrompt = `You are grading a full-stack interview answer. Return a score from 0 to 10
and short constructive feedback. Judge correctness, depth and practicality
relative to the question's difficulty.`

const summarySystemPrompt = `You summarize a completed technical interview for the interviewer. Return a
concise summary (at most 120 words) and a short hiring recommendation. No
markdown.`

func buildGeneratePrompt(plan []interview.PlanSlot, candidate interview.Candidate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Produce %d interview questions.\n\n", len(plan))

	parts := make([]string, 0, 3)
	for _, v := range []string{candidate.Name, candidate.Email, candidate.Phone} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	context := strings.Join(parts, ", ")
	if context == "" {
		context = "Unknown candidate"
	}
	fmt.Fprintf(&b, "Candidate context: %s\n", context)

	b.WriteString("Difficulty plan:\n")
	for i, slot := range plan {
		fmt.Fprintf(&b, "%d. Difficulty: %s (time limit %ds)\n", i+1, slot.Difficulty, slot.TimeLimitSeconds)
	}

	return b.String()
}

func buildScorePrompt(in ScoreInput) string {
	profile, _ := json.Marshal(in.Candidate)

	answer := in.Answer
	if strings.TrimSpace(answer) == "" {
		answer = "<<blank>>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Question (%s): %s\n", in.Difficulty, in.Question)
	fmt.Fprintf(&b, "Candidate: %s\n", profile)
	fmt.Fprintf(&b, "Answer: %s\n", answer)
	return b.String()
}

func buildSummaryPrompt(in SummarizeInput) string {
	profile, _ := json.Marshal(in.Candidate)
	pairs, _ := json.Marshal(in.Pairs)

	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: %s\n", profile)
	fmt.Fprintf(&b, "Average score: %.2f\n", in.AverageScore)
	fmt.Fprintf(&b, "QA pairs: %s\n", pairs)
	return b.String()
}
