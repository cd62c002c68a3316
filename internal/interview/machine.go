package interview

// Action names an inbound mutation the state machine must admit or reject.
type Action string

const (
	ActionAttachProfile Action = "attach-profile"
	ActionAttachResume  Action = "attach-resume"
	ActionStart         Action = "start-interview"
	ActionSubmitAnswer  Action = "submit-answer"
	ActionComplete      Action = "complete-interview"
	ActionExpire        Action = "expire"
)

// admissible is the legal transition table: for each action, the statuses it
// may be applied from. The resulting status is computed by the action itself
// (profile mutations oscillate waiting-profile <-> ready; everything else
// moves strictly forward).
var admissible = map[Action][]Status{
	ActionAttachProfile: {StatusCreated, StatusWaitingProfile, StatusReady, StatusInProgress},
	ActionAttachResume:  {StatusCreated, StatusWaitingProfile, StatusReady, StatusInProgress},
	ActionStart:         {StatusReady, StatusInProgress, StatusCompleted},
	ActionSubmitAnswer:  {StatusInProgress},
	ActionComplete:      {StatusCreated, StatusWaitingProfile, StatusReady, StatusInProgress, StatusCompleted},
	ActionExpire:        {StatusCreated, StatusWaitingProfile, StatusReady, StatusInProgress, StatusCompleted},
}

// Admit validates an action against the session's current status. Expired
// sessions reject every action. The returned error is one of the caller-facing
// error kinds, never a generic failure: a start attempt on a session whose
// profile is still incomplete names the missing fields instead of hiding them
// behind a generic rejection.
func Admit(s *Session, action Action) error {
	if s.Status == StatusExpired {
		return ErrSessionExpired
	}
	for _, from := range admissible[action] {
		if s.Status == from {
			return nil
		}
	}
	if s.Status == StatusCompleted {
		return ErrSessionCompleted
	}
	if action == ActionStart {
		if missing := s.Candidate.MissingFields(); len(missing) > 0 {
			return &ProfileIncompleteError{MissingFields: missing}
		}
	}
	return ErrInterviewNotActive
}

// StatusAfterProfileChange computes the status a session lands in after any
// candidate mutation: waiting-profile while something is missing, otherwise
// ready, or straight back to in-progress when questions already exist.
func StatusAfterProfileChange(s *Session) Status {
	if len(s.Candidate.MissingFields()) > 0 {
		return StatusWaitingProfile
	}
	if len(s.Questions) > 0 {
		return StatusInProgress
	}
	return StatusReady
}

// EnsureStartable gates the start action: the profile must be complete. The
// question list is never touched on rejection.
func EnsureStartable(s *Session) error {
	if missing := s.Candidate.MissingFields(); len(missing) > 0 {
		return &ProfileIncompleteError{MissingFields: missing}
	}
	return nil
}
