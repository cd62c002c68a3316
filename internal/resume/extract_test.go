package resume

import "testing"

const sampleResume = `Ada Lovelace
Email: ada.lovelace@example.com
Phone: +1 (555) 010-0123

EXPERIENCE
Senior Engineer, Analytical Engines Ltd
`

func TestExtractFields(t *testing.T) {
	got := ExtractFields(sampleResume)

	if got.Name != "Ada Lovelace" {
		t.Errorf("name %q, want Ada Lovelace", got.Name)
	}
	if got.Email != "ada.lovelace@example.com" {
		t.Errorf("email %q", got.Email)
	}
	if got.Phone == "" {
		t.Error("expected a phone number")
	}
}

func TestExtractFields_SkipsContactLabelLines(t *testing.T) {
	text := "email: someone@example.com\nLinkedIn: example\nGrace Hopper\n"
	got := ExtractFields(text)
	if got.Name != "Grace Hopper" {
		t.Errorf("name %q, want Grace Hopper", got.Name)
	}
}

func TestExtractFields_EmptyInput(t *testing.T) {
	got := ExtractFields("")
	if got.Name != "" || got.Email != "" || got.Phone != "" {
		t.Errorf("expected empty fields, got %+v", got)
	}
}

func TestExtractFields_NumericLinesNotNames(t *testing.T) {
	text := "12345\n---\nMargaret Hamilton\n"
	got := ExtractFields(text)
	if got.Name != "Margaret Hamilton" {
		t.Errorf("name %q, want Margaret Hamilton", got.Name)
	}
}
