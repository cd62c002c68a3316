package interview

import (
	"testing"
	"time"
)

func TestRecordAnswer_ReplacesByQuestionID(t *testing.T) {
	s := &Session{}
	s.RecordAnswer(Answer{QuestionID: "q1", CandidateAnswer: "first", AIScore: 3})
	s.RecordAnswer(Answer{QuestionID: "q2", CandidateAnswer: "other", AIScore: 5})
	s.RecordAnswer(Answer{QuestionID: "q1", CandidateAnswer: "second", AIScore: 7})

	if len(s.Answers) != 2 {
		t.Fatalf("answers length %d, want 2", len(s.Answers))
	}
	got := s.AnswerFor("q1")
	if got == nil || got.CandidateAnswer != "second" || got.AIScore != 7 {
		t.Errorf("q1 answer %+v, want replaced record", got)
	}
}

func TestCurrentQuestionAndExhausted(t *testing.T) {
	s := &Session{}
	if s.CurrentQuestion() != nil {
		t.Error("unstarted session should have no current question")
	}
	if s.Exhausted() {
		t.Error("unstarted session is not exhausted")
	}

	s.Questions = []Question{{ID: "q1"}, {ID: "q2"}}
	s.CurrentQuestionIndex = 1
	if q := s.CurrentQuestion(); q == nil || q.ID != "q2" {
		t.Errorf("current question %+v, want q2", q)
	}

	s.CurrentQuestionIndex = 2
	if s.CurrentQuestion() != nil {
		t.Error("cursor past the end should yield no current question")
	}
	if !s.Exhausted() {
		t.Error("cursor past the end means exhausted")
	}
}

func TestAverageScore(t *testing.T) {
	s := &Session{}
	if got := s.AverageScore(); got != 0 {
		t.Errorf("empty average %v, want 0", got)
	}

	s.Answers = []Answer{
		{QuestionID: "q1", AIScore: 5},
		{QuestionID: "q2", AIScore: 6},
		{QuestionID: "q3", AIScore: 8},
	}
	want := (5.0 + 6.0 + 8.0) / 3.0
	if got := s.AverageScore(); got != want {
		t.Errorf("average %v, want %v", got, want)
	}
}

func TestAppendTranscript(t *testing.T) {
	s := &Session{}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.AppendTranscript(RoleSystem, "Interview started.", at, nil)
	s.AppendTranscript(RoleCandidate, "my answer", at, map[string]any{"questionId": "q1"})

	if len(s.ChatTranscript) != 2 {
		t.Fatalf("transcript length %d, want 2", len(s.ChatTranscript))
	}
	if s.ChatTranscript[0].Role != RoleSystem {
		t.Errorf("first entry role %s, want system", s.ChatTranscript[0].Role)
	}
	if s.ChatTranscript[1].Metadata["questionId"] != "q1" {
		t.Error("candidate entry should carry question metadata")
	}
}
