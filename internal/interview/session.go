package interview

import "time"

// Status is the lifecycle state of an interview session.
type Status string

const (
	StatusCreated        Status = "created"
	StatusWaitingProfile Status = "waiting-profile"
	StatusReady          Status = "ready"
	StatusInProgress     Status = "in-progress"
	StatusCompleted      Status = "completed"
	StatusExpired        Status = "expired"
)

// Terminal reports whether no further mutation may move the session forward.
// Completed sessions still accept idempotent finalization reads; expired
// sessions reject everything.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusExpired
}

// ResumeAttachment records metadata about an uploaded resume document.
// Storage of the document itself is someone else's problem.
type ResumeAttachment struct {
	OriginalName string    `json:"originalName"`
	StoredName   string    `json:"storedName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// Candidate is the interviewee profile attached to a session.
type Candidate struct {
	Name   string            `json:"name,omitempty"`
	Email  string            `json:"email,omitempty"`
	Phone  string            `json:"phone,omitempty"`
	Resume *ResumeAttachment `json:"resume,omitempty"`
}

// requiredFields is the profile-completeness rule: all four must be present
// before an interview may start. Resume can only be satisfied by an upload.
var requiredFields = []string{"name", "email", "phone", "resume"}

// MissingFields returns the required fields this candidate has not yet
// provided, in canonical order. This is the single source of truth for
// profile completeness; Session.missingFields is always a recomputation.
func (c Candidate) MissingFields() []string {
	missing := make([]string, 0, len(requiredFields))
	for _, field := range requiredFields {
		switch field {
		case "name":
			if c.Name == "" {
				missing = append(missing, field)
			}
		case "email":
			if c.Email == "" {
				missing = append(missing, field)
			}
		case "phone":
			if c.Phone == "" {
				missing = append(missing, field)
			}
		case "resume":
			if c.Resume == nil {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

// Complete reports whether every required profile field is present.
func (c Candidate) Complete() bool {
	return len(c.MissingFields()) == 0
}

// Question is one concrete question generated at interview start.
type Question struct {
	ID               string     `json:"id"`
	Prompt           string     `json:"prompt"`
	Difficulty       Difficulty `json:"difficulty"`
	TimeLimitSeconds int        `json:"timeLimitSeconds"`
}

// Answer is the recorded (and possibly replaced) response to one question.
type Answer struct {
	QuestionID      string    `json:"questionId"`
	CandidateAnswer string    `json:"candidateAnswer"`
	AIScore         float64   `json:"aiScore"`
	AIFeedback      string    `json:"aiFeedback"`
	DurationMs      int64     `json:"durationMs"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

// TranscriptRole identifies the author of a transcript entry.
type TranscriptRole string

const (
	RoleSystem    TranscriptRole = "system"
	RoleAssistant TranscriptRole = "assistant"
	RoleCandidate TranscriptRole = "candidate"
)

// TranscriptEntry is one line of the append-only audit transcript.
type TranscriptEntry struct {
	Role      TranscriptRole `json:"role"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Session is the aggregate root for one interview. It is persisted as a
// single document and mutated only through the engine's actions.
type Session struct {
	ID          string `json:"id"`
	InviteToken string `json:"inviteToken"`
	Status      Status `json:"status"`

	Candidate     Candidate `json:"candidate"`
	Notes         string    `json:"notes,omitempty"`
	MissingFields []string  `json:"missingFields"`

	Questions      []Question        `json:"questions"`
	Answers        []Answer          `json:"answers"`
	ChatTranscript []TranscriptEntry `json:"chatTranscript"`

	CurrentQuestionIndex    int          `json:"currentQuestionIndex"`
	CurrentQuestionDeadline *time.Time   `json:"currentQuestionDeadline"`
	DifficultySequence      []Difficulty `json:"difficultySequence"`

	FinalScore   *float64 `json:"finalScore"`
	FinalSummary string   `json:"finalSummary,omitempty"`

	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// RecomputeMissingFields re-derives missingFields from the current candidate.
// Called after every candidate mutation; never set by hand elsewhere.
func (s *Session) RecomputeMissingFields() {
	s.MissingFields = s.Candidate.MissingFields()
}

// CurrentQuestion returns the question the cursor points at, or nil when the
// interview has not started or every question has been answered.
func (s *Session) CurrentQuestion() *Question {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentQuestionIndex]
}

// Exhausted reports whether every planned question has been answered.
func (s *Session) Exhausted() bool {
	return len(s.Questions) > 0 && s.CurrentQuestionIndex >= len(s.Questions)
}

// RecordAnswer stores the answer record for its question, replacing any prior
// record for the same question id. Replacement keeps retries from producing
// duplicate entries.
func (s *Session) RecordAnswer(a Answer) {
	for i, existing := range s.Answers {
		if existing.QuestionID == a.QuestionID {
			s.Answers[i] = a
			return
		}
	}
	s.Answers = append(s.Answers, a)
}

// AnswerFor returns the recorded answer for a question id, or nil.
func (s *Session) AnswerFor(questionID string) *Answer {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			return &s.Answers[i]
		}
	}
	return nil
}

// AppendTranscript adds one entry to the audit transcript.
func (s *Session) AppendTranscript(role TranscriptRole, content string, at time.Time, metadata map[string]any) {
	s.ChatTranscript = append(s.ChatTranscript, TranscriptEntry{
		Role:      role,
		Content:   content,
		CreatedAt: at,
		Metadata:  metadata,
	})
}

// Finalized reports whether the finalizer has already run. finalScore and
// finalSummary are set exactly once, together.
func (s *Session) Finalized() bool {
	return s.FinalScore != nil
}

// AverageScore is the mean of all recorded scores, 0 when nothing was
// answered. The finalizer rounds this to one decimal place.
func (s *Session) AverageScore() float64 {
	if len(s.Answers) == 0 {
		return 0
	}
	var total float64
	for _, a := range s.Answers {
		total += a.AIScore
	}
	return total / float64(len(s.Answers))
}
