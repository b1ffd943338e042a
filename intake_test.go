package intake_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intake "github.com/lstw2025/sv-documentation-platform"
	"github.com/lstw2025/sv-documentation-platform/internal/adapters/memory"
	"github.com/lstw2025/sv-documentation-platform/internal/definition"
	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// TestEngine_BuiltinWalkthrough drives the built-in intake questionnaire
// through the facade API, start to finish, the way a host would.
func TestEngine_BuiltinWalkthrough(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	var crisisFlags int
	engine, err := intake.New(definition.Builtin(),
		intake.WithStore(store),
		intake.WithLifecycleHooks(domain.LifecycleHooks{
			OnCrisisDetected: func(context.Context, *domain.CrisisEvent) { crisisFlags++ },
		}),
	)
	require.NoError(t, err)

	state := engine.Start(ctx, "river")

	// Consent: each understanding checkbox plus the consent choice must be
	// affirmed before the survey unlocks.
	for _, id := range []string{"welcome_understood", "control_understood", "anonymity_understood"} {
		assert.False(t, engine.CanAdvance(state))
		_, err := engine.SetResponse(ctx, state, id, domain.BoolResponse(true))
		require.NoError(t, err)
		engine.Advance(state)
	}
	_, err = engine.SetResponse(ctx, state, "consent_to_participate", domain.ChoiceResponse("Yes, I consent to participate"))
	require.NoError(t, err)
	v := engine.Advance(state)
	require.Equal(t, domain.PhaseSectionComplete, v.Phase)

	// Demographics: answer one, skip the rest.
	v = engine.Advance(state)
	require.Equal(t, "birth_year", v.Question.ID)
	_, err = engine.SetResponse(ctx, state, "birth_year", domain.TextResponse("1990"))
	require.NoError(t, err)
	for {
		v = engine.Advance(state)
		if v.Phase != domain.PhaseQuestion || v.SectionIndex > 1 {
			break
		}
		require.NoError(t, engine.Skip(ctx, state, v.Question.ID))
	}
	require.Equal(t, domain.PhaseSectionComplete, v.Phase)

	// Overview: a frequency of 1 hides the multiple-incidents follow-up.
	v = engine.Advance(state)
	require.Equal(t, "frequency", v.Question.ID)
	_, err = engine.SetResponse(ctx, state, "frequency", domain.TextResponse("1"))
	require.NoError(t, err)
	v = engine.Advance(state)
	require.Equal(t, "people_present", v.Question.ID)

	_, err = engine.SetResponse(ctx, state, "people_present", domain.ChoiceResponse("1"))
	require.NoError(t, err)
	v = engine.Advance(state)
	_, err = engine.SetResponse(ctx, state, "different_perpetrators", domain.ChoiceResponse("1"))
	require.NoError(t, err)
	v = engine.Advance(state)

	require.Equal(t, "situation_notes", v.Question.ID)
	crisis, err := engine.SetResponse(ctx, state, "situation_notes", domain.TextResponse("this is still happening"))
	require.NoError(t, err)
	assert.True(t, crisis)
	assert.Equal(t, 1, crisisFlags)

	v = engine.Advance(state)
	require.Equal(t, domain.PhaseSurveyComplete, v.Phase)

	answered, total := engine.Progress(state)
	assert.Equal(t, definition.Builtin().TotalQuestions(), total)
	assert.Equal(t, 13, answered)

	// Completion removes the draft.
	require.NoError(t, engine.Save(ctx, state))
	engine.Complete(ctx, state)
	_, err = store.Load(ctx, "river")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEngine_CustomCrisisKeywords(t *testing.T) {
	ctx := context.Background()

	def := &domain.SurveyDefinition{
		ID: "mini",
		Sections: []domain.Section{{
			ID:        "s1",
			Questions: []domain.Question{{ID: "q1", Type: domain.TypeFreeText}},
		}},
	}

	engine, err := intake.New(def, intake.WithCrisisKeywords([]string{"custom phrase"}))
	require.NoError(t, err)
	state := engine.Start(ctx, "river")

	crisis, err := engine.SetResponse(ctx, state, "q1", domain.TextResponse("I feel unsafe"))
	require.NoError(t, err)
	assert.False(t, crisis, "default keywords are replaced, not merged")

	crisis, err = engine.SetResponse(ctx, state, "q1", domain.TextResponse("a custom phrase appears"))
	require.NoError(t, err)
	assert.True(t, crisis)
}

func TestNew_InvalidDefinition(t *testing.T) {
	_, err := intake.New(&domain.SurveyDefinition{ID: "empty"})
	require.Error(t, err)

	var cfgErr *domain.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
