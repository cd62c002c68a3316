package engine

import (
	"context"
	"math"
	"strconv"

	"github.com/abhisek/intervue/internal/evaluator"
	"github.com/abhisek/intervue/internal/interview"
)

// CompleteInterview finalizes a session: the final score averages the
// answers actually recorded (unanswered questions carry no weight, no
// answers means 0), the summary is generated and the status moves to
// completed. The operation is idempotent; a finalized session is returned
// unchanged no matter how many times completion is requested.
func (e *Engine) CompleteInterview(ctx context.Context, token string) (*interview.Session, error) {
	doc, err := e.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := interview.Admit(doc.Session, interview.ActionComplete); err != nil {
		return nil, err
	}
	if doc.Session.Finalized() {
		return doc.Session, nil
	}

	// Summarize on the loaded snapshot so the provider call stays outside
	// the save loop. A summarization failure aborts completion; the caller
	// retries once the backend recovers.
	score := roundScore(averageOf(doc.Session.Answers))
	summary, err := e.eval.Summarize(ctx, evaluator.SummarizeInput{
		Candidate:    doc.Session.Candidate,
		Pairs:        pairsOf(doc.Session),
		AverageScore: score,
	})
	if err != nil {
		return nil, err
	}

	return e.mutate(ctx, token, interview.ActionComplete, "session.completed", func(s *interview.Session) error {
		if s.Finalized() {
			return nil
		}
		now := e.now().UTC()
		// Recompute from the live document: a concurrent submission may
		// have landed another answer since the snapshot.
		final := roundScore(averageOf(s.Answers))
		s.FinalScore = &final
		s.FinalSummary = summary.Summary
		s.Status = interview.StatusCompleted
		s.CompletedAt = &now
		s.CurrentQuestionIndex = len(s.Questions)
		s.CurrentQuestionDeadline = nil
		s.AppendTranscript(interview.RoleAssistant, closingMessage(final, summary.Recommendation), now, nil)
		return nil
	})
}

// pairsOf assembles the question/answer pairs for summarization, in
// question order.
func pairsOf(s *interview.Session) []evaluator.QAPair {
	pairs := make([]evaluator.QAPair, 0, len(s.Questions))
	for _, q := range s.Questions {
		pair := evaluator.QAPair{
			Question:   q.Prompt,
			Difficulty: q.Difficulty,
			Answer:     blankAnswerPlaceholder,
		}
		if i := answerIndex(s.Answers, q.ID); i >= 0 {
			pair.Answer = s.Answers[i].CandidateAnswer
			pair.Score = s.Answers[i].AIScore
			pair.Feedback = s.Answers[i].AIFeedback
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

func answerIndex(answers []interview.Answer, questionID string) int {
	for i := range answers {
		if answers[i].QuestionID == questionID {
			return i
		}
	}
	return -1
}

func averageOf(answers []interview.Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	var total float64
	for _, a := range answers {
		total += a.AIScore
	}
	return total / float64(len(answers))
}

// roundScore rounds a final score to one decimal place.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// closingMessage is the transcript entry announcing the result.
func closingMessage(score float64, recommendation string) string {
	msg := "Interview complete. Final score: " + strconv.FormatFloat(score, 'f', -1, 64) + "/10."
	if recommendation != "" {
		msg += " " + recommendation
	}
	return msg
}
