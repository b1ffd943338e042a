package runtime

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// SetResponse validates and records a response. Type mismatches and values
// outside a question's domain are rejected with a ValidationError, leaving
// the response map untouched. Free-text responses are scanned for crisis
// phrases before storing; the returned flag is advisory and never prevents
// the store. Business rules live here so hosts never re-implement them.
func (e *Engine) SetResponse(ctx context.Context, state *domain.SessionState, questionID string, resp domain.Response, now time.Time) (crisis bool, err error) {
	q := e.def.QuestionByID(questionID)
	if q == nil {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownQuestion, questionID)
	}

	if resp.Skipped() {
		return false, &domain.ValidationError{QuestionID: questionID, Reason: "use Skip to decline a question"}
	}
	if !resp.Matches(q.Type) {
		return false, &domain.ValidationError{
			QuestionID: questionID,
			Reason:     fmt.Sprintf("response kind %q does not fit question type %q", resp.Kind, q.Type),
		}
	}
	if err := validateValue(q, resp); err != nil {
		return false, err
	}

	if q.Type == domain.TypeFreeText {
		if matched, hit := e.detector.Scan(resp.Text); hit {
			crisis = true
			e.logger.Info("crisis phrase detected", "question", questionID)
			if e.hooks.OnCrisisDetected != nil {
				e.hooks.OnCrisisDetected(ctx, &domain.CrisisEvent{
					Timestamp:  now,
					QuestionID: questionID,
					Matched:    matched,
				})
			}
		}
	}

	_, existed := state.Responses[questionID]
	state.Responses[questionID] = resp
	if !existed {
		state.AnsweredCount++
	}

	if e.hooks.OnResponse != nil {
		e.hooks.OnResponse(ctx, &domain.ResponseEvent{
			Timestamp:  now,
			QuestionID: questionID,
			Type:       q.Type,
			First:      !existed,
		})
	}

	return crisis, nil
}

// Skip records the skip sentinel for a skippable question. The sentinel is a
// real response: it satisfies required-question checks and counts toward
// progress, but remains distinct from any answered value.
func (e *Engine) Skip(ctx context.Context, state *domain.SessionState, questionID string, now time.Time) error {
	q := e.def.QuestionByID(questionID)
	if q == nil {
		return fmt.Errorf("%w: %q", domain.ErrUnknownQuestion, questionID)
	}
	if !q.Skippable {
		return fmt.Errorf("%w: %q", domain.ErrNotSkippable, questionID)
	}

	_, existed := state.Responses[questionID]
	state.Responses[questionID] = domain.SkippedResponse()
	if !existed {
		state.AnsweredCount++
	}

	if e.hooks.OnResponse != nil {
		e.hooks.OnResponse(ctx, &domain.ResponseEvent{
			Timestamp:  now,
			QuestionID: questionID,
			Type:       q.Type,
			Skipped:    true,
			First:      !existed,
		})
	}

	return nil
}

// validateValue checks a type-correct response against the question's value
// domain: choice membership, numeric parsing, plausible years.
func validateValue(q *domain.Question, resp domain.Response) error {
	switch q.Type {
	case domain.TypeSingleChoice:
		if !optionOf(q, resp.Text) {
			return &domain.ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not one of the options", resp.Text)}
		}
	case domain.TypeMultiChoice:
		if len(resp.Selected) == 0 {
			return &domain.ValidationError{QuestionID: q.ID, Reason: "no options selected"}
		}
		for _, sel := range resp.Selected {
			if !optionOf(q, sel) {
				return &domain.ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not one of the options", sel)}
			}
		}
	case domain.TypeNumber:
		n, err := strconv.Atoi(resp.Text)
		if err != nil || n < 0 {
			return &domain.ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not a non-negative number", resp.Text)}
		}
	case domain.TypeYear:
		y, err := strconv.Atoi(resp.Text)
		if err != nil || y < 1900 || y > 2100 {
			return &domain.ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf("%q is not a plausible year", resp.Text)}
		}
	}
	return nil
}

func optionOf(q *domain.Question, v string) bool {
	for _, opt := range q.Options {
		if opt == v {
			return true
		}
	}
	return false
}
