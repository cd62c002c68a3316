package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/evaluator"
	"github.com/abhisek/intervue/internal/interview"
)

// blankAnswerPlaceholder is stored when the candidate submitted nothing,
// typically because the timer auto-submitted an empty box.
const blankAnswerPlaceholder = "[No answer provided]"

// AnswerInput is one submitted answer. DurationMs is the client-reported
// time spent; the engine clamps it rather than trusting it.
type AnswerInput struct {
	Text       string
	DurationMs int64
}

// SubmitResult reports what one submission did: the recorded (possibly
// replaced) answer, the question now awaiting an answer and whether the
// interview finished as a result.
type SubmitResult struct {
	Session      *interview.Session
	Answer       interview.Answer
	NextQuestion *interview.Question
	Completed    bool
}

// SubmitAnswer grades the current question's answer, records it and
// advances the cursor. Evaluation happens outside any lock or save loop so
// a slow provider never blocks other writers; the result is then applied
// against a fresh load. A scoring failure aborts the submission with
// nothing recorded. Re-submitting the same question replaces the prior
// record instead of duplicating it. Answering the last question finalizes
// the session.
func (e *Engine) SubmitAnswer(ctx context.Context, token string, in AnswerInput) (*SubmitResult, error) {
	// Phase 1: load and validate without mutating.
	doc, err := e.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := interview.Admit(doc.Session, interview.ActionSubmitAnswer); err != nil {
		return nil, err
	}
	question := doc.Session.CurrentQuestion()
	if question == nil {
		// An in-progress session always has a current question; hitting this
		// means the cursor and status disagree.
		e.log.Error("in-progress session has no active question",
			zap.String("session_id", doc.Session.ID),
			zap.Int("cursor", doc.Session.CurrentQuestionIndex),
			zap.Int("questions", len(doc.Session.Questions)))
		return nil, interview.ErrNoActiveQuestion
	}

	text := strings.TrimSpace(in.Text)
	result, err := e.eval.ScoreAnswer(ctx, evaluator.ScoreInput{
		Question:   question.Prompt,
		Answer:     text,
		Difficulty: question.Difficulty,
		Candidate:  doc.Session.Candidate,
	})
	if err != nil {
		return nil, err
	}

	stored := text
	if stored == "" {
		stored = blankAnswerPlaceholder
	}
	answer := interview.Answer{
		QuestionID:      question.ID,
		CandidateAnswer: stored,
		AIScore:         clampScore(result.Score),
		AIFeedback:      result.Feedback,
		DurationMs:      clampDuration(in.DurationMs),
		SubmittedAt:     e.now().UTC(),
	}

	// Phase 2: apply against a fresh document. The question may no longer be
	// current if a concurrent retry already advanced the cursor; the record
	// is still replaced, the cursor is only moved once.
	s, err := e.mutate(ctx, token, interview.ActionSubmitAnswer, "session.answer", func(s *interview.Session) error {
		if !hasQuestion(s, question.ID) {
			return interview.ErrNoActiveQuestion
		}
		now := e.now().UTC()
		s.RecordAnswer(answer)
		s.AppendTranscript(interview.RoleCandidate, stored, now, map[string]any{
			"questionId": question.ID,
			"durationMs": answer.DurationMs,
		})
		s.AppendTranscript(interview.RoleAssistant, answer.AIFeedback, now, map[string]any{
			"questionId": question.ID,
			"score":      answer.AIScore,
		})
		if current := s.CurrentQuestion(); current != nil && current.ID == question.ID {
			s.CurrentQuestionIndex++
			if next := s.CurrentQuestion(); next != nil {
				deadline := interview.PlanSlot{
					Difficulty:       next.Difficulty,
					TimeLimitSeconds: next.TimeLimitSeconds,
				}.Deadline(now)
				s.CurrentQuestionDeadline = &deadline
				s.AppendTranscript(interview.RoleAssistant, next.Prompt, now, questionMetadata(*next, s.CurrentQuestionIndex))
			} else {
				s.CurrentQuestionDeadline = nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.Exhausted() {
		s, err = e.CompleteInterview(ctx, token)
		if err != nil {
			return nil, err
		}
		return &SubmitResult{Session: s, Answer: answer, Completed: true}, nil
	}
	return &SubmitResult{Session: s, Answer: answer, NextQuestion: s.CurrentQuestion()}, nil
}

func hasQuestion(s *interview.Session, id string) bool {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return true
		}
	}
	return false
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func clampDuration(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	if max := interview.MaxAnswerDuration.Milliseconds(); ms > max {
		return max
	}
	return ms
}
