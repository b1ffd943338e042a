package runtime

import "strings"

// Detector flags free-text responses that may indicate the respondent is in
// immediate danger. It is a pure, case-insensitive substring scan over a
// fixed phrase list; no response is ever blocked by a detection.
type Detector struct {
	phrases []string
}

// DefaultKeywords returns the intake phrase list: temporal markers that
// suggest an ongoing situation plus explicit danger phrases.
func DefaultKeywords() []string {
	return []string{
		"ongoing", "still happening", "currently", "right now", "today", "this week",
		"help me", "scared", "in danger", "unsafe", "can't leave", "trapped",
	}
}

// NewDetector builds a detector over the given phrases.
func NewDetector(phrases []string) *Detector {
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			lowered = append(lowered, p)
		}
	}
	return &Detector{phrases: lowered}
}

// Scan reports the first matching phrase, if any.
func (d *Detector) Scan(text string) (matched string, ok bool) {
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, p := range d.phrases {
		if strings.Contains(lower, p) {
			return p, true
		}
	}
	return "", false
}
