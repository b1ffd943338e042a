package intake

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lstw2025/sv-documentation-platform/internal/adapters/memory"
	"github.com/lstw2025/sv-documentation-platform/internal/runtime"
	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
	"github.com/lstw2025/sv-documentation-platform/pkg/ports"
)

// Engine is the high-level entry point for the intake library. It wraps the
// internal runtime and provides a simplified API for hosts: each method is a
// synchronous handler for one host event and returns before the next event
// is accepted.
type Engine struct {
	runtime *runtime.Engine

	store    ports.StateStore
	hooks    domain.LifecycleHooks
	keywords []string
	logger   *slog.Logger

	autosaveEvery    int
	autosaveInterval time.Duration
	breakInterval    time.Duration
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects the persistence sink for drafts. Defaults to an
// in-memory store.
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLifecycleHooks registers host callbacks for crisis, break-reminder,
// autosave and response events.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithCrisisKeywords replaces the default crisis phrase list.
func WithCrisisKeywords(phrases []string) Option {
	return func(e *Engine) {
		e.keywords = phrases
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithAutosavePolicy tunes the autosave triggers: save after every Nth
// answered question or after the given interval since the last save,
// whichever comes first.
func WithAutosavePolicy(everyNth int, interval time.Duration) Option {
	return func(e *Engine) {
		e.autosaveEvery = everyNth
		e.autosaveInterval = interval
	}
}

// WithBreakInterval tunes how often the break reminder fires.
func WithBreakInterval(interval time.Duration) Option {
	return func(e *Engine) {
		e.breakInterval = interval
	}
}

// New validates the survey definition and initializes an Engine. A malformed
// definition returns a *domain.ConfigurationError; past this point no engine
// error is fatal to a session.
func New(def *domain.SurveyDefinition, opts ...Option) (*Engine, error) {
	eng := &Engine{
		autosaveEvery:    runtime.DefaultAutosaveEvery,
		autosaveInterval: runtime.DefaultAutosaveInterval,
		breakInterval:    runtime.DefaultBreakInterval,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = memory.New()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	rtOpts := []runtime.EngineOption{
		runtime.WithStore(eng.store),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithAutosavePolicy(eng.autosaveEvery, eng.autosaveInterval),
		runtime.WithBreakInterval(eng.breakInterval),
	}
	if eng.keywords != nil {
		rtOpts = append(rtOpts, runtime.WithDetector(runtime.NewDetector(eng.keywords)))
	}

	rt, err := runtime.NewEngine(def, rtOpts...)
	if err != nil {
		return nil, err
	}
	eng.runtime = rt
	return eng, nil
}

// Definition returns the immutable survey definition.
func (e *Engine) Definition() *domain.SurveyDefinition {
	return e.runtime.Definition()
}

// Start resumes the stored draft for a handle or begins a fresh session.
// Missing, corrupt or unreadable drafts all yield a fresh session; Start
// never fails the respondent.
func (e *Engine) Start(ctx context.Context, handle string) *domain.SessionState {
	return e.runtime.Start(ctx, handle, time.Now())
}

// Current resolves the cursor to the visible question, the section-complete
// interlude, or survey completion. Side-effect free.
func (e *Engine) Current(state *domain.SessionState) domain.View {
	return e.runtime.Current(state)
}

// Advance moves forward one visible position.
func (e *Engine) Advance(state *domain.SessionState) domain.View {
	return e.runtime.Advance(state)
}

// Retreat moves backward one visible position, stopping at the first
// question of the first section.
func (e *Engine) Retreat(state *domain.SessionState) domain.View {
	return e.runtime.Retreat(state)
}

// CanAdvance reports whether the current question allows moving on.
func (e *Engine) CanAdvance(state *domain.SessionState) bool {
	return e.runtime.CanAdvance(state)
}

// SetResponse validates and records a response. The returned flag reports
// whether the crisis detector matched a free-text answer; the response is
// stored regardless.
func (e *Engine) SetResponse(ctx context.Context, state *domain.SessionState, questionID string, resp domain.Response) (crisis bool, err error) {
	return e.runtime.SetResponse(ctx, state, questionID, resp, time.Now())
}

// Skip records the skip sentinel for a skippable question.
func (e *Engine) Skip(ctx context.Context, state *domain.SessionState, questionID string) error {
	return e.runtime.Skip(ctx, state, questionID, time.Now())
}

// Progress returns answered and total question counts. Total counts all
// defined questions regardless of visibility.
func (e *Engine) Progress(state *domain.SessionState) (answered, total int) {
	return e.runtime.Progress(state)
}

// Tick runs the autosave and break-reminder policies against the current
// wall clock. Hosts call it on their own cadence; repeated calls without
// elapsed time never double-fire.
func (e *Engine) Tick(ctx context.Context, state *domain.SessionState) {
	e.runtime.Tick(ctx, state, time.Now())
}

// Save persists the draft immediately, outside the scheduler.
func (e *Engine) Save(ctx context.Context, state *domain.SessionState) error {
	return e.runtime.Save(ctx, state, time.Now())
}

// Complete finishes the survey and removes the persisted draft.
func (e *Engine) Complete(ctx context.Context, state *domain.SessionState) {
	e.runtime.Complete(ctx, state)
}

// Abandon discards the session without persisting further.
func (e *Engine) Abandon(ctx context.Context, state *domain.SessionState) {
	e.runtime.Abandon(ctx, state)
}
