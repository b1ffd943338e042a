package domain

import "time"

// Cursor points at the position currently presented to the respondent.
// Question == len(section.Questions) marks the section-complete interlude;
// Section == len(definition.Sections) marks survey completion.
type Cursor struct {
	Section  int `json:"section"`
	Question int `json:"question"`
}

// SessionState is the full snapshot of one respondent's progress. It is owned
// by the running engine, serialized as-is on autosave, and restored once at
// session start. All fields must survive a JSON round-trip.
type SessionState struct {
	// Handle is the opaque identity string used to namespace the storage key.
	Handle string `json:"handle"`

	Cursor    Cursor      `json:"cursor"`
	Responses ResponseMap `json:"responses"`

	StartedAt   time.Time `json:"started_at"`
	LastSavedAt time.Time `json:"last_saved_at"`

	// NextReminderAt is when the break reminder next fires. Re-armed by the
	// scheduler after each firing.
	NextReminderAt time.Time `json:"next_reminder_at"`

	// AnsweredCount counts questions that have received a response or the
	// skip sentinel at least once. Re-answering does not increment it.
	AnsweredCount int `json:"answered_count"`

	// SavedCount is AnsweredCount as of the last successful save; the
	// every-Nth-answer autosave trigger compares against it.
	SavedCount int `json:"saved_count"`
}

// NewSession creates a fresh session for the given identity handle.
func NewSession(handle string, now time.Time, breakInterval time.Duration) *SessionState {
	return &SessionState{
		Handle:         handle,
		Responses:      make(ResponseMap),
		StartedAt:      now,
		LastSavedAt:    now,
		NextReminderAt: now.Add(breakInterval),
	}
}

// Clone returns an independent copy, safe to mutate without affecting the
// original. Used by hosts that want optimistic navigation.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}
	next := *s
	next.Responses = s.Responses.Clone()
	return &next
}
