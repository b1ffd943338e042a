package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lstw2025/sv-documentation-platform/internal/runtime"
	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

func TestEngine_SetResponse(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Unknown question", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		_, err := e.SetResponse(ctx, state, "ghost", domain.TextResponse("x"), now)
		assert.ErrorIs(t, err, domain.ErrUnknownQuestion)
	})

	t.Run("Type mismatch leaves state untouched", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		_, err := e.SetResponse(ctx, state, "q1", domain.TextResponse("yes"), now)
		require.Error(t, err)

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "q1", vErr.QuestionID)
		assert.Empty(t, state.Responses)
		assert.Zero(t, state.AnsweredCount)
	})

	t.Run("Choice outside the options is rejected", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		_, err := e.SetResponse(ctx, state, "q1", domain.ChoiceResponse("maybe"), now)
		require.Error(t, err)

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Reason, "not one of the options")
	})

	t.Run("Year out of range is rejected", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		for _, bad := range []string{"1850", "2150", "soon"} {
			_, err := e.SetResponse(ctx, state, "q3", domain.TextResponse(bad), now)
			assert.Error(t, err, "year %q should be rejected", bad)
		}

		_, err := e.SetResponse(ctx, state, "q3", domain.TextResponse("2019"), now)
		assert.NoError(t, err)
	})

	t.Run("Skip sentinel cannot be set directly", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		_, err := e.SetResponse(ctx, state, "q2", domain.SkippedResponse(), now)
		require.Error(t, err)

		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Re-answering does not inflate the answered count", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		_, err := e.SetResponse(ctx, state, "q1", domain.ChoiceResponse("yes"), now)
		require.NoError(t, err)
		_, err = e.SetResponse(ctx, state, "q1", domain.ChoiceResponse("no"), now)
		require.NoError(t, err)

		assert.Equal(t, 1, state.AnsweredCount)
		assert.Equal(t, domain.ChoiceResponse("no"), state.Responses["q1"])
	})

	t.Run("Response hook observes first and repeat answers", func(t *testing.T) {
		var events []*domain.ResponseEvent
		e := newTestEngine(t, runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnResponse: func(_ context.Context, ev *domain.ResponseEvent) {
				events = append(events, ev)
			},
		}))
		state := e.Start(ctx, "river", now)

		_, err := e.SetResponse(ctx, state, "q1", domain.ChoiceResponse("yes"), now)
		require.NoError(t, err)
		_, err = e.SetResponse(ctx, state, "q1", domain.ChoiceResponse("no"), now)
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.True(t, events[0].First)
		assert.False(t, events[1].First)
	})
}

func TestEngine_Skip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Skippable question records the sentinel", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		require.NoError(t, e.Skip(ctx, state, "q2", now))
		assert.True(t, state.Responses["q2"].Skipped())
		assert.Equal(t, 1, state.AnsweredCount)
	})

	t.Run("Non-skippable question is refused", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		err := e.Skip(ctx, state, "q1", now)
		assert.ErrorIs(t, err, domain.ErrNotSkippable)
		assert.Empty(t, state.Responses)
	})

	t.Run("Unknown question", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		err := e.Skip(ctx, state, "ghost", now)
		assert.ErrorIs(t, err, domain.ErrUnknownQuestion)
	})
}

func TestEngine_CrisisDetection(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Free-text with a danger phrase is flagged and still stored", func(t *testing.T) {
		var event *domain.CrisisEvent
		e := newTestEngine(t, runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnCrisisDetected: func(_ context.Context, ev *domain.CrisisEvent) { event = ev },
		}))
		state := e.Start(ctx, "river", now)

		crisis, err := e.SetResponse(ctx, state, "q4", domain.TextResponse("I feel UNSAFE at home"), now)
		require.NoError(t, err)
		assert.True(t, crisis)

		require.NotNil(t, event)
		assert.Equal(t, "q4", event.QuestionID)
		assert.Equal(t, "unsafe", event.Matched)
		assert.Equal(t, "I feel UNSAFE at home", state.Responses["q4"].Text)
	})

	t.Run("Neutral free-text is not flagged", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		crisis, err := e.SetResponse(ctx, state, "q4", domain.TextResponse("it was a long time ago"), now)
		require.NoError(t, err)
		assert.False(t, crisis)
	})

	t.Run("Non-free-text responses are never scanned", func(t *testing.T) {
		e := newTestEngine(t)
		state := e.Start(ctx, "river", now)

		// "2020" would not match anyway, but the point is the choice path:
		// detection only runs over free text.
		crisis, err := e.SetResponse(ctx, state, "q1", domain.ChoiceResponse("yes"), now)
		require.NoError(t, err)
		assert.False(t, crisis)
	})
}

func TestDetector_Scan(t *testing.T) {
	d := runtime.NewDetector(runtime.DefaultKeywords())

	cases := []struct {
		name    string
		text    string
		matched string
		ok      bool
	}{
		{"Explicit danger phrase", "I am trapped and can't get out", "trapped", true},
		{"Case-insensitive", "This is STILL HAPPENING", "still happening", true},
		{"Phrase inside a sentence", "please help me figure this out", "help me", true},
		{"Temporal marker", "it happened again today", "today", true},
		{"Neutral text", "it ended years ago", "", false},
		{"Empty text", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matched, ok := d.Scan(tc.text)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.matched, matched)
		})
	}
}

func TestNewDetector_NormalizesPhrases(t *testing.T) {
	d := runtime.NewDetector([]string{"  UNSAFE  ", "", "Right Now"})

	matched, ok := d.Scan("things feel unsafe right now")
	assert.True(t, ok)
	assert.Equal(t, "unsafe", matched)
}
