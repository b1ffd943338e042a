package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when a handle has no stored session.
var ErrSessionNotFound = errors.New("session not found")

// ErrStateCorrupt marks a stored session that could not be decoded. The
// runtime treats it as absent and starts fresh.
var ErrStateCorrupt = errors.New("stored session state is corrupt")

// ErrUnknownQuestion is returned when an operation names a question id that
// does not exist in the definition.
var ErrUnknownQuestion = errors.New("unknown question id")

// ErrNotSkippable is returned when skip is attempted on a question that does
// not allow it.
var ErrNotSkippable = errors.New("question is not skippable")

// ConfigurationError aggregates every structural problem found in a survey
// definition. Fatal at startup, never produced at runtime.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid survey definition: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid survey definition (%d problems):\n  %s",
		len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// ValidationError reports a rejected response. The session continues
// unaffected; the host surfaces the reason to the respondent.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %q: %s", e.QuestionID, e.Reason)
}
