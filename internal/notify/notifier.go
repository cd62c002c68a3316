// Package notify broadcasts authoritative session state to passive
// observers. Publishing is fire-and-forget: a failed or slow observer never
// blocks or rolls back the mutation being reported.
package notify

import "sync"

// Notifier receives the serialized session after every mutation.
type Notifier interface {
	Publish(sessionID string, payload []byte)
}

// Nop discards every publication.
type Nop struct{}

func (Nop) Publish(string, []byte) {}

// Recorder captures publications for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Event is one recorded publication.
type Event struct {
	SessionID string
	Payload   []byte
}

func (r *Recorder) Publish(sessionID string, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Payload is reused by callers; keep our own copy.
	p := make([]byte, len(payload))
	copy(p, payload)
	r.events = append(r.events, Event{SessionID: sessionID, Payload: p})
}

// Events returns a snapshot of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
