// Package resume pulls candidate contact fields out of resume text. Parsing
// the binary document (PDF, DOCX) into text is an external collaborator's
// job; this package only runs heuristics over the result.
package resume

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s\-()]{7,}\d`)
	// nameCleanRe strips everything that is not part of a plausible name.
	nameCleanRe   = regexp.MustCompile(`[^A-Za-z\s'-]`)
	spaceRe       = regexp.MustCompile(`\s+`)
	nonNameLineRe = regexp.MustCompile(`^[\d\W]+$`)
)

// headerBlacklist marks lines that are labels rather than a person's name.
var headerBlacklist = []string{"email", "phone", "linkedin", "github"}

// ExtractedFields are the contact details recovered from resume text.
// Empty fields mean the heuristic found nothing.
type ExtractedFields struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ExtractFields scans resume text for an email, a phone number and a likely
// name line.
func ExtractFields(text string) ExtractedFields {
	var out ExtractedFields

	if m := emailRe.FindString(text); m != "" {
		out.Email = m
	}
	if m := phoneRe.FindString(text); m != "" {
		out.Phone = m
	}

	lines := make([]string, 0, 32)
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r")); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	out.Name = likelyName(lines)

	return out
}

// likelyName returns the first line that looks like a person's name: short,
// not a contact label, not purely digits or punctuation.
func likelyName(lines []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		if containsAny(lower, headerBlacklist) {
			continue
		}
		if len(line) < 2 || len(line) > 80 {
			continue
		}
		if nonNameLineRe.MatchString(line) {
			continue
		}
		cleaned := nameCleanRe.ReplaceAllString(line, " ")
		cleaned = strings.TrimSpace(spaceRe.ReplaceAllString(cleaned, " "))
		if cleaned == "" {
			continue
		}
		return cleaned
	}
	return ""
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
