package domain

import (
	"context"
	"time"
)

// SaveTrigger names which autosave policy fired.
type SaveTrigger string

const (
	SaveTriggerCount    SaveTrigger = "count"    // every Nth answered question
	SaveTriggerInterval SaveTrigger = "interval" // wall-clock interval elapsed
	SaveTriggerManual   SaveTrigger = "manual"   // host-requested save
)

// CrisisEvent is emitted when the crisis detector flags a free-text response.
// Detection is advisory: the response has already been stored when the hook
// runs, and the host decides how to present support resources.
type CrisisEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	QuestionID string    `json:"question_id"`
	Matched    string    `json:"matched"` // the keyword or phrase that hit
}

// ReminderEvent is emitted when the break-reminder threshold elapses.
type ReminderEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Elapsed   time.Duration `json:"elapsed"` // time since the session started
}

// SaveEvent is emitted after an autosave attempt, successful or not.
type SaveEvent struct {
	Timestamp time.Time   `json:"timestamp"`
	Handle    string      `json:"handle"`
	Trigger   SaveTrigger `json:"trigger"`
	Err       error       `json:"-"`
}

// ResponseEvent is emitted after a response or skip sentinel is recorded.
type ResponseEvent struct {
	Timestamp  time.Time    `json:"timestamp"`
	QuestionID string       `json:"question_id"`
	Type       QuestionType `json:"type"`
	Skipped    bool         `json:"skipped"`
	First      bool         `json:"first"` // first answer for this question
}

// LifecycleHooks defines host callbacks for engine observability. All fields
// are optional; the engine holds no UI state of its own.
type LifecycleHooks struct {
	OnCrisisDetected func(context.Context, *CrisisEvent)
	OnBreakReminder  func(context.Context, *ReminderEvent)
	OnAutosave       func(context.Context, *SaveEvent)
	OnResponse       func(context.Context, *ResponseEvent)
}
