package runtime_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lstw2025/sv-documentation-platform/internal/runtime"
	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// countingStore records Save calls and can be told to fail.
type countingStore struct {
	saves int
	fail  bool
	last  *domain.SessionState
}

func (s *countingStore) Save(_ context.Context, _ string, state *domain.SessionState) error {
	s.saves++
	if s.fail {
		return errors.New("backend unavailable")
	}
	s.last = state.Clone()
	return nil
}

func (s *countingStore) Load(context.Context, string) (*domain.SessionState, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *countingStore) Delete(context.Context, string) error {
	return nil
}

func answer(t *testing.T, e *runtime.Engine, state *domain.SessionState, id, text string, now time.Time) {
	t.Helper()
	_, err := e.SetResponse(context.Background(), state, id, domain.TextResponse(text), now)
	require.NoError(t, err)
}

// fourTextQuestions is a flat definition for scheduler tests, where only the
// answer cadence matters.
func fourTextQuestions() *domain.SurveyDefinition {
	return &domain.SurveyDefinition{
		ID: "flat",
		Sections: []domain.Section{{
			ID: "s1",
			Questions: []domain.Question{
				{ID: "a", Type: domain.TypeFreeText},
				{ID: "b", Type: domain.TypeFreeText},
				{ID: "c", Type: domain.TypeFreeText},
				{ID: "d", Type: domain.TypeFreeText},
			},
		}},
	}
}

func TestEngine_Autosave(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Fires after every third answer", func(t *testing.T) {
		store := &countingStore{}
		e, err := runtime.NewEngine(fourTextQuestions(), runtime.WithStore(store))
		require.NoError(t, err)
		state := e.Start(ctx, "river", now)

		answer(t, e, state, "a", "one", now)
		e.Tick(ctx, state, now)
		answer(t, e, state, "b", "two", now)
		e.Tick(ctx, state, now)
		assert.Zero(t, store.saves)

		answer(t, e, state, "c", "three", now)
		e.Tick(ctx, state, now)
		assert.Equal(t, 1, store.saves)
		assert.Equal(t, 3, store.last.AnsweredCount)

		// No new answers, no elapsed time: the trigger stays quiet.
		e.Tick(ctx, state, now)
		assert.Equal(t, 1, store.saves)
	})

	t.Run("Fires after the wall-clock interval", func(t *testing.T) {
		store := &countingStore{}
		e, err := runtime.NewEngine(fourTextQuestions(), runtime.WithStore(store))
		require.NoError(t, err)
		state := e.Start(ctx, "river", now)

		answer(t, e, state, "a", "one", now)
		e.Tick(ctx, state, now.Add(10*time.Second))
		assert.Zero(t, store.saves)

		e.Tick(ctx, state, now.Add(35*time.Second))
		assert.Equal(t, 1, store.saves)
	})

	t.Run("Interval trigger waits for the first answer", func(t *testing.T) {
		store := &countingStore{}
		e, err := runtime.NewEngine(fourTextQuestions(), runtime.WithStore(store))
		require.NoError(t, err)
		state := e.Start(ctx, "river", now)

		e.Tick(ctx, state, now.Add(time.Hour))
		assert.Zero(t, store.saves, "an empty session has nothing worth saving")
	})

	t.Run("Failed save is retried on the next tick", func(t *testing.T) {
		store := &countingStore{fail: true}
		var events []*domain.SaveEvent
		e, err := runtime.NewEngine(fourTextQuestions(),
			runtime.WithStore(store),
			runtime.WithLifecycleHooks(domain.LifecycleHooks{
				OnAutosave: func(_ context.Context, ev *domain.SaveEvent) { events = append(events, ev) },
			}),
		)
		require.NoError(t, err)
		state := e.Start(ctx, "river", now)

		answer(t, e, state, "a", "one", now)
		answer(t, e, state, "b", "two", now)
		answer(t, e, state, "c", "three", now)
		e.Tick(ctx, state, now)
		require.Equal(t, 1, store.saves)
		assert.Zero(t, state.SavedCount, "markers must not advance on failure")
		require.Len(t, events, 1)
		assert.Error(t, events[0].Err)

		// The backend recovers; the same trigger fires again.
		store.fail = false
		e.Tick(ctx, state, now.Add(time.Second))
		assert.Equal(t, 2, store.saves)
		assert.Equal(t, 3, state.SavedCount)
		require.Len(t, events, 2)
		assert.NoError(t, events[1].Err)
	})

	t.Run("Custom autosave policy", func(t *testing.T) {
		store := &countingStore{}
		e, err := runtime.NewEngine(fourTextQuestions(),
			runtime.WithStore(store),
			runtime.WithAutosavePolicy(2, time.Minute),
		)
		require.NoError(t, err)
		state := e.Start(ctx, "river", now)

		answer(t, e, state, "a", "one", now)
		e.Tick(ctx, state, now)
		assert.Zero(t, store.saves)

		answer(t, e, state, "b", "two", now)
		e.Tick(ctx, state, now)
		assert.Equal(t, 1, store.saves)
	})
}

func TestEngine_BreakReminder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Fires once per interval", func(t *testing.T) {
		var events []*domain.ReminderEvent
		e := newTestEngine(t, runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnBreakReminder: func(_ context.Context, ev *domain.ReminderEvent) { events = append(events, ev) },
		}))
		state := e.Start(ctx, "river", now)

		e.Tick(ctx, state, now.Add(14*time.Minute))
		assert.Empty(t, events)

		e.Tick(ctx, state, now.Add(15*time.Minute))
		require.Len(t, events, 1)
		assert.Equal(t, 15*time.Minute, events[0].Elapsed)

		// The next tick inside the same interval stays quiet.
		e.Tick(ctx, state, now.Add(16*time.Minute))
		assert.Len(t, events, 1)

		e.Tick(ctx, state, now.Add(31*time.Minute))
		assert.Len(t, events, 2)
	})

	t.Run("A long pause yields a single reminder", func(t *testing.T) {
		var fired int
		e := newTestEngine(t, runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnBreakReminder: func(context.Context, *domain.ReminderEvent) { fired++ },
		}))
		state := e.Start(ctx, "river", now)

		// Three intervals pass with no ticks (laptop lid closed).
		e.Tick(ctx, state, now.Add(50*time.Minute))
		assert.Equal(t, 1, fired)

		// Re-armed relative to the schedule, strictly past the pause.
		e.Tick(ctx, state, now.Add(59*time.Minute))
		assert.Equal(t, 1, fired)
		e.Tick(ctx, state, now.Add(61*time.Minute))
		assert.Equal(t, 2, fired)
	})

	t.Run("Custom break interval", func(t *testing.T) {
		var fired int
		e := newTestEngine(t,
			runtime.WithBreakInterval(5*time.Minute),
			runtime.WithLifecycleHooks(domain.LifecycleHooks{
				OnBreakReminder: func(context.Context, *domain.ReminderEvent) { fired++ },
			}),
		)
		state := e.Start(ctx, "river", now)

		e.Tick(ctx, state, now.Add(5*time.Minute))
		assert.Equal(t, 1, fired)
	})
}
