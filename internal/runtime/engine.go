package runtime

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lstw2025/sv-documentation-platform/internal/logging"
	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
	"github.com/lstw2025/sv-documentation-platform/pkg/ports"
)

// Defaults for the scheduler policies, taken from the intake prototype:
// save every 3rd answer or every 30 seconds, remind every 15 minutes.
const (
	DefaultAutosaveEvery    = 3
	DefaultAutosaveInterval = 30 * time.Second
	DefaultBreakInterval    = 15 * time.Minute
)

// Engine is the survey state machine. It is invoked synchronously by the
// host on discrete events (render, response, navigation, tick) and processes
// each to completion; it never spawns goroutines or blocks.
type Engine struct {
	def      *domain.SurveyDefinition
	store    ports.StateStore
	detector *Detector
	hooks    domain.LifecycleHooks
	logger   *slog.Logger

	autosaveEvery    int
	autosaveInterval time.Duration
	breakInterval    time.Duration
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithStore sets the persistence sink for session drafts.
func WithStore(store ports.StateStore) EngineOption {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLifecycleHooks registers host callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDetector replaces the default crisis detector.
func WithDetector(d *Detector) EngineOption {
	return func(e *Engine) {
		e.detector = d
	}
}

// WithAutosavePolicy tunes the autosave triggers.
func WithAutosavePolicy(everyNth int, interval time.Duration) EngineOption {
	return func(e *Engine) {
		if everyNth > 0 {
			e.autosaveEvery = everyNth
		}
		if interval > 0 {
			e.autosaveInterval = interval
		}
	}
}

// WithBreakInterval tunes the break-reminder threshold.
func WithBreakInterval(interval time.Duration) EngineOption {
	return func(e *Engine) {
		if interval > 0 {
			e.breakInterval = interval
		}
	}
}

// NewEngine validates the definition and builds the engine. A malformed
// definition is fatal here and only here; nothing past construction is.
func NewEngine(def *domain.SurveyDefinition, opts ...EngineOption) (*Engine, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		def:              def,
		detector:         NewDetector(DefaultKeywords()),
		logger:           logging.NewNop(),
		autosaveEvery:    DefaultAutosaveEvery,
		autosaveInterval: DefaultAutosaveInterval,
		breakInterval:    DefaultBreakInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Definition returns the immutable survey definition.
func (e *Engine) Definition() *domain.SurveyDefinition {
	return e.def
}

// Start loads the stored draft for a handle or creates a fresh session.
// A missing draft is the normal first run; a corrupt or unreadable one is
// logged and discarded. Start never fails the respondent.
func (e *Engine) Start(ctx context.Context, handle string, now time.Time) *domain.SessionState {
	if e.store != nil {
		state, err := e.store.Load(ctx, handle)
		switch {
		case err == nil:
			if e.rehydrate(state) {
				e.logger.Info("session resumed", "handle", handle, "answered", state.AnsweredCount)
				return state
			}
			e.logger.Warn("discarding restored session with out-of-range cursor", "handle", handle)
		case errors.Is(err, domain.ErrSessionNotFound):
			// First run.
		case errors.Is(err, domain.ErrStateCorrupt):
			e.logger.Warn("discarding corrupt stored session", "handle", handle, "err", err)
		default:
			e.logger.Error("failed to load stored session, starting fresh", "handle", handle, "err", err)
		}
	}
	return domain.NewSession(handle, now, e.breakInterval)
}

// rehydrate repairs omissions in a restored state and reports whether it is
// usable. A cursor outside the definition counts as corruption.
func (e *Engine) rehydrate(state *domain.SessionState) bool {
	if state.Responses == nil {
		state.Responses = make(domain.ResponseMap)
	}
	if state.NextReminderAt.IsZero() {
		state.NextReminderAt = state.StartedAt.Add(e.breakInterval)
	}
	c := state.Cursor
	if c.Section < 0 || c.Section > len(e.def.Sections) {
		return false
	}
	if c.Section < len(e.def.Sections) {
		if c.Question < 0 || c.Question > len(e.def.Sections[c.Section].Questions) {
			return false
		}
	}
	return true
}

// Save persists the draft immediately, outside the scheduler policies.
func (e *Engine) Save(ctx context.Context, state *domain.SessionState, now time.Time) error {
	return e.persist(ctx, state, now, domain.SaveTriggerManual)
}

// Complete ends the survey and removes the persisted draft. Drafts are never
// kept after completion.
func (e *Engine) Complete(ctx context.Context, state *domain.SessionState) {
	e.discard(ctx, state, "completed")
}

// Abandon discards the session without persisting. An in-flight save that
// lands after this is a harmless leftover under the same key.
func (e *Engine) Abandon(ctx context.Context, state *domain.SessionState) {
	e.discard(ctx, state, "abandoned")
}

func (e *Engine) discard(ctx context.Context, state *domain.SessionState, reason string) {
	if e.store == nil {
		return
	}
	if err := e.store.Delete(ctx, state.Handle); err != nil {
		e.logger.Error("failed to delete stored session", "handle", state.Handle, "reason", reason, "err", err)
		return
	}
	e.logger.Info("session "+reason, "handle", state.Handle, "answered", state.AnsweredCount)
}
