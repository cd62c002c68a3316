package interview

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when no session matches the invite token.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExpired is returned for any action against an expired session.
// Expiry is terminal.
var ErrSessionExpired = errors.New("session expired")

// ErrSessionCompleted is returned when an action that mutates candidate or
// interview state targets an already-completed session.
var ErrSessionCompleted = errors.New("session already completed")

// ErrInterviewNotActive is returned when an answer arrives for a session that
// is not in progress.
var ErrInterviewNotActive = errors.New("interview is not active")

// ErrNoActiveQuestion indicates the cursor points outside the question list
// while the session claims to be in progress. This is state corruption, not
// a caller mistake.
var ErrNoActiveQuestion = errors.New("no active question")

// ProfileIncompleteError rejects an interview start while required profile
// fields are absent.
type ProfileIncompleteError struct {
	MissingFields []string
}

func (e *ProfileIncompleteError) Error() string {
	return fmt.Sprintf("profile incomplete: missing %s", strings.Join(e.MissingFields, ", "))
}
