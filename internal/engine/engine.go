// Package engine orchestrates interview sessions: invite issuance, profile
// collection, question planning, answer evaluation and finalization. Every
// mutation goes through one optimistic-concurrency loop so concurrent
// writers never clobber each other.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/evaluator"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/notify"
	"github.com/abhisek/intervue/internal/store"
)

// defaultSaveRetries bounds the optimistic save loop. Conflicts are rare
// (one candidate per session) so a handful of retries is plenty.
const defaultSaveRetries = 3

// Engine drives the interview lifecycle over a session store and an
// evaluation provider.
type Engine struct {
	sessions store.SessionRepo
	eval     evaluator.Evaluator
	notifier notify.Notifier
	log      *zap.Logger

	now        func() time.Time
	maxRetries int
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithClock overrides the engine's time source. Tests use this to control
// deadlines and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithNotifier sets the publisher for session change events.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// New creates an engine. The evaluator is chosen once at startup, either a
// live provider or the deterministic fallback. The engine never degrades on
// its own: an evaluator failure fails the operation that needed it.
func New(sessions store.SessionRepo, eval evaluator.Evaluator, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		sessions:   sessions,
		eval:       eval,
		notifier:   notify.Nop{},
		log:        log,
		now:        time.Now,
		maxRetries: defaultSaveRetries,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateInput seeds a new invite. All candidate fields are optional; the
// invite flow collects whatever is missing.
type CreateInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// CreateInvite issues a new session with a fresh invite token. The session
// starts in waiting-profile since the resume is always still missing.
func (e *Engine) CreateInvite(ctx context.Context, in CreateInput) (*interview.Session, error) {
	now := e.now().UTC()
	s := &interview.Session{
		ID:          uuid.NewString(),
		InviteToken: uuid.NewString(),
		Status:      interview.StatusWaitingProfile,
		Candidate: interview.Candidate{
			Name:  strings.TrimSpace(in.Name),
			Email: strings.TrimSpace(in.Email),
			Phone: strings.TrimSpace(in.Phone),
		},
		Notes:                strings.TrimSpace(in.Notes),
		CurrentQuestionIndex: 0,
		DifficultySequence:   interview.PlanDifficulties(),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	s.RecomputeMissingFields()
	if err := e.sessions.Create(ctx, s); err != nil {
		return nil, err
	}
	e.publish(s, "session.created")
	return s, nil
}

// GetByToken loads a session for the candidate-facing invite flow. Missing
// fields are recomputed on every read so stale persisted values never leak.
func (e *Engine) GetByToken(ctx context.Context, token string) (*interview.Session, error) {
	doc, err := e.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	doc.Session.RecomputeMissingFields()
	return doc.Session, nil
}

// GetByID loads a session for the interviewer-facing dashboard.
func (e *Engine) GetByID(ctx context.Context, id string) (*interview.Session, error) {
	doc, err := e.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.Session, nil
}

// List returns sessions matching the interviewer dashboard filter.
func (e *Engine) List(ctx context.Context, filter store.ListFilter) ([]*interview.Session, error) {
	return e.sessions.List(ctx, filter)
}

// ProfileInput carries candidate-supplied profile fields. Empty fields leave
// the stored value untouched so the chat flow can collect one field at a
// time.
type ProfileInput struct {
	Name  string
	Email string
	Phone string
}

// AttachProfile merges profile fields into the session's candidate and
// recomputes status: waiting-profile while anything is missing, ready once
// complete.
func (e *Engine) AttachProfile(ctx context.Context, token string, in ProfileInput) (*interview.Session, error) {
	return e.mutate(ctx, token, interview.ActionAttachProfile, "session.profile", func(s *interview.Session) error {
		if v := strings.TrimSpace(in.Name); v != "" {
			s.Candidate.Name = v
		}
		if v := strings.TrimSpace(in.Email); v != "" {
			s.Candidate.Email = v
		}
		if v := strings.TrimSpace(in.Phone); v != "" {
			s.Candidate.Phone = v
		}
		s.Status = interview.StatusAfterProfileChange(s)
		return nil
	})
}

// ResumeInput carries an uploaded resume's metadata plus any contact fields
// extracted from its text.
type ResumeInput struct {
	Attachment interview.ResumeAttachment
	Extracted  ProfileInput
}

// AttachResume records the resume upload and merges extracted contact
// fields. Extracted values never overwrite fields the candidate already
// provided explicitly.
func (e *Engine) AttachResume(ctx context.Context, token string, in ResumeInput) (*interview.Session, error) {
	return e.mutate(ctx, token, interview.ActionAttachResume, "session.resume", func(s *interview.Session) error {
		att := in.Attachment
		if att.UploadedAt.IsZero() {
			att.UploadedAt = e.now().UTC()
		}
		s.Candidate.Resume = &att
		if s.Candidate.Name == "" {
			s.Candidate.Name = strings.TrimSpace(in.Extracted.Name)
		}
		if s.Candidate.Email == "" {
			s.Candidate.Email = strings.TrimSpace(in.Extracted.Email)
		}
		if s.Candidate.Phone == "" {
			s.Candidate.Phone = strings.TrimSpace(in.Extracted.Phone)
		}
		s.Status = interview.StatusAfterProfileChange(s)
		return nil
	})
}

// ExpireSession marks a session expired by id. Expiring a completed session
// is a no-op: its results stay readable. Already-expired sessions are also
// left untouched.
func (e *Engine) ExpireSession(ctx context.Context, id string) (*interview.Session, error) {
	doc, err := e.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s := doc.Session
	if s.Status == interview.StatusExpired || s.Status == interview.StatusCompleted {
		return s, nil
	}
	s.Status = interview.StatusExpired
	s.UpdatedAt = e.now().UTC()
	if err := e.sessions.Save(ctx, doc); err != nil {
		return nil, err
	}
	e.publish(s, "session.expired")
	return s, nil
}

// mutate runs one guarded mutation through the optimistic save loop: load,
// admit the action against the state machine, apply fn, recompute derived
// fields, save. A version conflict reloads and replays fn against the fresh
// document.
func (e *Engine) mutate(ctx context.Context, token string, action interview.Action, event string, fn func(*interview.Session) error) (*interview.Session, error) {
	var saved *interview.Session
	for attempt := 0; ; attempt++ {
		doc, err := e.sessions.GetByToken(ctx, token)
		if err != nil {
			return nil, err
		}
		s := doc.Session
		if err := interview.Admit(s, action); err != nil {
			return nil, err
		}
		if err := fn(s); err != nil {
			return nil, err
		}
		s.RecomputeMissingFields()
		s.UpdatedAt = e.now().UTC()

		err = e.sessions.Save(ctx, doc)
		if err == nil {
			saved = s
			break
		}
		if !errors.Is(err, store.ErrVersionConflict) || attempt >= e.maxRetries {
			return nil, err
		}
		e.log.Debug("session save conflict, retrying",
			zap.String("session_id", s.ID),
			zap.Int("attempt", attempt+1))
	}
	e.publish(saved, event)
	return saved, nil
}

// publish pushes a session snapshot to observers. Delivery is best effort;
// failures never affect the mutation that triggered them.
func (e *Engine) publish(s *interview.Session, event string) {
	payload, err := json.Marshal(struct {
		Type    string             `json:"type"`
		Session *interview.Session `json:"session"`
	}{Type: event, Session: s})
	if err != nil {
		e.log.Warn("encode session event", zap.String("session_id", s.ID), zap.Error(err))
		return
	}
	e.notifier.Publish(s.ID, payload)
}
