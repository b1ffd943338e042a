package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore
// implementation honors the interface semantics. Adapter packages call it
// from their own tests.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	handle := "contract-handle-" + time.Now().Format("20060102150405")
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewSession(handle, now, 15*time.Minute)
		state.Responses["birth_year"] = domain.TextResponse("1990")
		state.Responses["gender_identity"] = domain.ChoiceResponse("Non-binary")
		state.Responses["sexual_orientation"] = domain.SkippedResponse()
		state.Cursor = domain.Cursor{Section: 1, Question: 2}
		state.AnsweredCount = 3

		err := store.Save(ctx, handle, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, handle)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.Cursor, loaded.Cursor)
		assert.Equal(t, state.AnsweredCount, loaded.AnsweredCount)
		assert.Equal(t, domain.TextResponse("1990"), loaded.Responses["birth_year"])
		assert.True(t, loaded.Responses["sexual_orientation"].Skipped())
		assert.True(t, state.StartedAt.Equal(loaded.StartedAt))
	})

	t.Run("Overwrite is last-write-wins", func(t *testing.T) {
		first := domain.NewSession(handle, now, 15*time.Minute)
		first.AnsweredCount = 1
		require.NoError(t, store.Save(ctx, handle, first))

		second := domain.NewSession(handle, now, 15*time.Minute)
		second.AnsweredCount = 5
		require.NoError(t, store.Save(ctx, handle, second))

		loaded, err := store.Load(ctx, handle)
		require.NoError(t, err)
		assert.Equal(t, 5, loaded.AnsweredCount)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+handle)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, handle, domain.NewSession(handle, now, 15*time.Minute))
		require.NoError(t, err)

		err = store.Delete(ctx, handle)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, handle)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		// Deleting again must be a no-op.
		assert.NoError(t, store.Delete(ctx, handle))
	})
}
