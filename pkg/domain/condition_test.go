package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

func TestCondition_Equals(t *testing.T) {
	cond := domain.Condition{Equals: &domain.EqualsClause{Question: "q1", Value: "yes"}}

	t.Run("Unanswered", func(t *testing.T) {
		assert.False(t, cond.Evaluate(domain.ResponseMap{}))
	})

	t.Run("Matching text", func(t *testing.T) {
		responses := domain.ResponseMap{"q1": domain.TextResponse("yes")}
		assert.True(t, cond.Evaluate(responses))
	})

	t.Run("Non-matching choice", func(t *testing.T) {
		responses := domain.ResponseMap{"q1": domain.ChoiceResponse("no")}
		assert.False(t, cond.Evaluate(responses))
	})

	t.Run("Skip sentinel never matches", func(t *testing.T) {
		responses := domain.ResponseMap{"q1": domain.SkippedResponse()}
		assert.False(t, cond.Evaluate(responses))
	})

	t.Run("Boolean compares against true/false", func(t *testing.T) {
		boolCond := domain.Condition{Equals: &domain.EqualsClause{Question: "q1", Value: "true"}}
		assert.True(t, boolCond.Evaluate(domain.ResponseMap{"q1": domain.BoolResponse(true)}))
		assert.False(t, boolCond.Evaluate(domain.ResponseMap{"q1": domain.BoolResponse(false)}))
	})
}

func TestCondition_Includes(t *testing.T) {
	cond := domain.Condition{Includes: &domain.IncludesClause{Question: "q1", Value: "b"}}

	t.Run("Multi-choice containing the value", func(t *testing.T) {
		responses := domain.ResponseMap{"q1": domain.MultiResponse("a", "b")}
		assert.True(t, cond.Evaluate(responses))
	})

	t.Run("Multi-choice without the value", func(t *testing.T) {
		responses := domain.ResponseMap{"q1": domain.MultiResponse("a", "c")}
		assert.False(t, cond.Evaluate(responses))
	})

	t.Run("Single-choice degrades to equality", func(t *testing.T) {
		responses := domain.ResponseMap{"q1": domain.ChoiceResponse("b")}
		assert.True(t, cond.Evaluate(responses))
	})
}

func TestCondition_GreaterThan(t *testing.T) {
	cond := domain.Condition{GreaterThan: &domain.GreaterThanClause{Question: "frequency", Value: 1}}

	t.Run("Above threshold", func(t *testing.T) {
		responses := domain.ResponseMap{"frequency": domain.TextResponse("3")}
		assert.True(t, cond.Evaluate(responses))
	})

	t.Run("At threshold", func(t *testing.T) {
		responses := domain.ResponseMap{"frequency": domain.TextResponse("1")}
		assert.False(t, cond.Evaluate(responses))
	})

	t.Run("Unparsable never matches", func(t *testing.T) {
		responses := domain.ResponseMap{"frequency": domain.TextResponse("several")}
		assert.False(t, cond.Evaluate(responses))
	})

	t.Run("Skipped never matches", func(t *testing.T) {
		responses := domain.ResponseMap{"frequency": domain.SkippedResponse()}
		assert.False(t, cond.Evaluate(responses))
	})
}

func TestCondition_Compositions(t *testing.T) {
	eq := func(q, v string) domain.Condition {
		return domain.Condition{Equals: &domain.EqualsClause{Question: q, Value: v}}
	}
	responses := domain.ResponseMap{
		"a": domain.TextResponse("1"),
		"b": domain.TextResponse("2"),
	}

	t.Run("AllOf", func(t *testing.T) {
		both := domain.Condition{AllOf: []domain.Condition{eq("a", "1"), eq("b", "2")}}
		assert.True(t, both.Evaluate(responses))

		oneOff := domain.Condition{AllOf: []domain.Condition{eq("a", "1"), eq("b", "9")}}
		assert.False(t, oneOff.Evaluate(responses))
	})

	t.Run("AnyOf", func(t *testing.T) {
		either := domain.Condition{AnyOf: []domain.Condition{eq("a", "9"), eq("b", "2")}}
		assert.True(t, either.Evaluate(responses))

		neither := domain.Condition{AnyOf: []domain.Condition{eq("a", "9"), eq("b", "9")}}
		assert.False(t, neither.Evaluate(responses))
	})

	t.Run("Not", func(t *testing.T) {
		not := domain.Condition{Not: &domain.Condition{Equals: &domain.EqualsClause{Question: "a", Value: "1"}}}
		assert.False(t, not.Evaluate(responses))
		assert.True(t, not.Evaluate(domain.ResponseMap{}))
	})
}
