package interview

import (
	"errors"
	"testing"
	"time"
)

func TestAdmit_ExpiredRejectsEverything(t *testing.T) {
	s := &Session{Status: StatusExpired}
	for _, action := range []Action{ActionAttachProfile, ActionAttachResume, ActionStart, ActionSubmitAnswer, ActionComplete, ActionExpire} {
		if err := Admit(s, action); !errors.Is(err, ErrSessionExpired) {
			t.Errorf("action %s on expired session: got %v, want ErrSessionExpired", action, err)
		}
	}
}

func TestAdmit_SubmitRequiresInProgress(t *testing.T) {
	for _, status := range []Status{StatusCreated, StatusWaitingProfile, StatusReady} {
		s := &Session{Status: status}
		if err := Admit(s, ActionSubmitAnswer); !errors.Is(err, ErrInterviewNotActive) {
			t.Errorf("submit from %s: got %v, want ErrInterviewNotActive", status, err)
		}
	}

	s := &Session{Status: StatusCompleted}
	if err := Admit(s, ActionSubmitAnswer); !errors.Is(err, ErrSessionCompleted) {
		t.Errorf("submit from completed: got %v, want ErrSessionCompleted", err)
	}

	s = &Session{Status: StatusInProgress}
	if err := Admit(s, ActionSubmitAnswer); err != nil {
		t.Errorf("submit from in-progress: got %v, want nil", err)
	}
}

func TestAdmit_StartWithIncompleteProfileNamesMissingFields(t *testing.T) {
	for _, status := range []Status{StatusCreated, StatusWaitingProfile} {
		s := &Session{Status: status, Candidate: Candidate{Name: "Ada"}}
		err := Admit(s, ActionStart)

		var profile *ProfileIncompleteError
		if !errors.As(err, &profile) {
			t.Fatalf("start from %s: got %v, want ProfileIncompleteError", status, err)
		}
		want := []string{"email", "phone", "resume"}
		if len(profile.MissingFields) != len(want) {
			t.Fatalf("start from %s: missing fields %v, want %v", status, profile.MissingFields, want)
		}
		for i, field := range want {
			if profile.MissingFields[i] != field {
				t.Errorf("start from %s: missing[%d] = %s, want %s", status, i, profile.MissingFields[i], field)
			}
		}
	}
}

func TestAdmit_StartFromCompletedIsAllowed(t *testing.T) {
	// The planner treats start-on-completed as an idempotent no-op, so the
	// machine must let it through.
	s := &Session{Status: StatusCompleted}
	if err := Admit(s, ActionStart); err != nil {
		t.Errorf("start from completed: got %v, want nil", err)
	}
}

func TestStatusAfterProfileChange(t *testing.T) {
	complete := Candidate{
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Phone:  "+1 555 0100",
		Resume: &ResumeAttachment{OriginalName: "ada.pdf"},
	}

	s := &Session{Status: StatusWaitingProfile, Candidate: complete}
	if got := StatusAfterProfileChange(s); got != StatusReady {
		t.Errorf("complete profile: got %s, want ready", got)
	}

	s.Candidate.Phone = ""
	if got := StatusAfterProfileChange(s); got != StatusWaitingProfile {
		t.Errorf("missing phone: got %s, want waiting-profile", got)
	}

	// A profile edit mid-interview must not knock the session out of
	// in-progress.
	s.Candidate = complete
	s.Questions = []Question{{ID: "q1"}}
	if got := StatusAfterProfileChange(s); got != StatusInProgress {
		t.Errorf("profile edit with questions: got %s, want in-progress", got)
	}
}

func TestEnsureStartable_ReportsMissingFields(t *testing.T) {
	s := &Session{Candidate: Candidate{Name: "Ada Lovelace"}}
	err := EnsureStartable(s)

	var profile *ProfileIncompleteError
	if !errors.As(err, &profile) {
		t.Fatalf("got %v, want ProfileIncompleteError", err)
	}
	want := []string{"email", "phone", "resume"}
	if len(profile.MissingFields) != len(want) {
		t.Fatalf("missing fields %v, want %v", profile.MissingFields, want)
	}
	for i, field := range want {
		if profile.MissingFields[i] != field {
			t.Errorf("missing[%d] = %s, want %s", i, profile.MissingFields[i], field)
		}
	}
}

func TestMissingFields_CanonicalOrder(t *testing.T) {
	empty := Candidate{}
	got := empty.MissingFields()
	want := []string{"name", "email", "phone", "resume"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("missing[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMissingFields_ResumeRequiredEvenWithContactFields(t *testing.T) {
	c := Candidate{Name: "Ada", Email: "ada@example.com", Phone: "555"}
	got := c.MissingFields()
	if len(got) != 1 || got[0] != "resume" {
		t.Errorf("got %v, want [resume]", got)
	}
}

func TestPlan_Shape(t *testing.T) {
	plan := QuestionPlan()
	if len(plan) != 6 {
		t.Fatalf("plan length %d, want 6", len(plan))
	}
	wantDiff := []Difficulty{DifficultyEasy, DifficultyEasy, DifficultyMedium, DifficultyMedium, DifficultyHard, DifficultyHard}
	wantSecs := []int{20, 20, 60, 60, 120, 120}
	for i, slot := range plan {
		if slot.Difficulty != wantDiff[i] {
			t.Errorf("slot %d difficulty %s, want %s", i, slot.Difficulty, wantDiff[i])
		}
		if slot.TimeLimitSeconds != wantSecs[i] {
			t.Errorf("slot %d time limit %d, want %d", i, slot.TimeLimitSeconds, wantSecs[i])
		}
	}
}

func TestPlanSlot_Deadline(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	slot := PlanSlot{Difficulty: DifficultyEasy, TimeLimitSeconds: 20}
	if got := slot.Deadline(now); !got.Equal(now.Add(20 * time.Second)) {
		t.Errorf("deadline %v, want %v", got, now.Add(20*time.Second))
	}
}
