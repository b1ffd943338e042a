package runtime

import (
	"context"
	"time"

	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// Tick runs the autosave and break-reminder policies against the supplied
// wall-clock time. The host calls it on whatever cadence suits it; both
// policies are idempotent, so repeated ticks without elapsed time never
// double-fire. A failed autosave leaves the trigger armed and is retried on
// the next tick; it never blocks navigation.
func (e *Engine) Tick(ctx context.Context, state *domain.SessionState, now time.Time) {
	if trigger, due := e.autosaveDue(state, now); due {
		if err := e.persist(ctx, state, now, trigger); err != nil {
			e.logger.Error("autosave failed, will retry on next trigger", "handle", state.Handle, "err", err)
		}
	}

	if !now.Before(state.NextReminderAt) {
		elapsed := now.Sub(state.StartedAt)
		e.logger.Debug("break reminder due", "handle", state.Handle, "elapsed", elapsed)
		if e.hooks.OnBreakReminder != nil {
			e.hooks.OnBreakReminder(ctx, &domain.ReminderEvent{Timestamp: now, Elapsed: elapsed})
		}
		// Re-arm past now so a long pause yields one reminder, not a burst.
		for !state.NextReminderAt.After(now) {
			state.NextReminderAt = state.NextReminderAt.Add(e.breakInterval)
		}
	}
}

// autosaveDue evaluates both triggers: every Nth answered question, or a
// wall-clock interval since the last save, whichever comes first.
func (e *Engine) autosaveDue(state *domain.SessionState, now time.Time) (domain.SaveTrigger, bool) {
	if state.AnsweredCount > state.SavedCount && state.AnsweredCount-state.SavedCount >= e.autosaveEvery {
		return domain.SaveTriggerCount, true
	}
	if state.AnsweredCount > 0 && now.Sub(state.LastSavedAt) >= e.autosaveInterval {
		return domain.SaveTriggerInterval, true
	}
	return "", false
}

// persist writes the draft and advances the save markers on success only,
// so a failure is retried by the same trigger condition.
func (e *Engine) persist(ctx context.Context, state *domain.SessionState, now time.Time, trigger domain.SaveTrigger) error {
	if e.store == nil {
		return nil
	}

	err := e.store.Save(ctx, state.Handle, state)
	if err == nil {
		state.LastSavedAt = now
		state.SavedCount = state.AnsweredCount
		e.logger.Debug("session saved", "handle", state.Handle, "trigger", trigger, "answered", state.AnsweredCount)
	}

	if e.hooks.OnAutosave != nil {
		e.hooks.OnAutosave(ctx, &domain.SaveEvent{
			Timestamp: now,
			Handle:    state.Handle,
			Trigger:   trigger,
			Err:       err,
		})
	}

	return err
}
