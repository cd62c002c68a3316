package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/intervue/internal/interview"
)

// startedMessage opens the audit transcript when the plan is materialized.
const startedMessage = "Interview started. Answer each question before the timer ends."

// StartInterview materializes the question plan and moves the session to
// in-progress. The operation is idempotent: a session that already has
// questions keeps them, so a retried start never regenerates or reshuffles
// the plan. Starting a completed session returns it unchanged.
func (e *Engine) StartInterview(ctx context.Context, token string) (*interview.Session, error) {
	doc, err := e.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := interview.Admit(doc.Session, interview.ActionStart); err != nil {
		return nil, err
	}
	if doc.Session.Status == interview.StatusCompleted || len(doc.Session.Questions) > 0 {
		return doc.Session, nil
	}
	if err := interview.EnsureStartable(doc.Session); err != nil {
		return nil, err
	}

	// Generate before mutating anything: a provider failure must leave the
	// session exactly as it was and surface to the caller, who retries the
	// start. The evaluator owns response-shape degradation; a hard error
	// here means the backend is genuinely down.
	plan := interview.QuestionPlan()
	drafts, err := e.eval.GenerateQuestions(ctx, plan, doc.Session.Candidate)
	if err != nil {
		return nil, err
	}
	if len(drafts) != len(plan) {
		return nil, fmt.Errorf("evaluator returned %d questions, want %d", len(drafts), len(plan))
	}

	return e.mutate(ctx, token, interview.ActionStart, "session.started", func(s *interview.Session) error {
		if s.Status == interview.StatusCompleted || len(s.Questions) > 0 {
			// Someone else started it between our load and this save.
			return nil
		}
		if err := interview.EnsureStartable(s); err != nil {
			return err
		}
		now := e.now().UTC()
		questions := make([]interview.Question, len(plan))
		for i, slot := range plan {
			questions[i] = interview.Question{
				ID:               uuid.NewString(),
				Prompt:           drafts[i].Text,
				Difficulty:       slot.Difficulty,
				TimeLimitSeconds: slot.TimeLimitSeconds,
			}
		}
		s.Questions = questions
		s.CurrentQuestionIndex = 0
		deadline := plan[0].Deadline(now)
		s.CurrentQuestionDeadline = &deadline
		s.StartedAt = &now
		s.Status = interview.StatusInProgress

		s.AppendTranscript(interview.RoleSystem, startedMessage, now, nil)
		s.AppendTranscript(interview.RoleAssistant, questions[0].Prompt, now, questionMetadata(questions[0], 0))
		return nil
	})
}

// questionMetadata annotates an assistant transcript entry with the question
// it presented.
func questionMetadata(q interview.Question, index int) map[string]any {
	return map[string]any{
		"questionId":       q.ID,
		"questionIndex":    index,
		"difficulty":       string(q.Difficulty),
		"timeLimitSeconds": q.TimeLimitSeconds,
	}
}
