package runtime

import "github.com/lstw2025/sv-documentation-platform/pkg/domain"

// Current resolves the cursor to a visible question, the section-complete
// interlude, or survey completion. Conditions are evaluated against the
// responses as they are now, so a question hidden by an upstream change is
// skipped even if the cursor still points at it. Side-effect free.
func (e *Engine) Current(state *domain.SessionState) domain.View {
	return e.resolve(state.Cursor, state.Responses)
}

func (e *Engine) resolve(c domain.Cursor, responses domain.ResponseMap) domain.View {
	if c.Section >= len(e.def.Sections) {
		return domain.View{Phase: domain.PhaseSurveyComplete}
	}

	section := &e.def.Sections[c.Section]
	for qi := c.Question; qi < len(section.Questions); qi++ {
		q := &section.Questions[qi]
		if q.Condition == nil || q.Condition.Evaluate(responses) {
			return domain.View{
				Phase:         domain.PhaseQuestion,
				Section:       section,
				SectionIndex:  c.Section,
				Question:      q,
				QuestionIndex: qi,
			}
		}
	}

	// No visible question remains in this section.
	if c.Section == len(e.def.Sections)-1 {
		return domain.View{Phase: domain.PhaseSurveyComplete}
	}
	return domain.View{
		Phase:        domain.PhaseSectionComplete,
		Section:      section,
		SectionIndex: c.Section,
	}
}

// normalize snaps the cursor onto the position its resolved view represents,
// so traversal never starts from a hidden question.
func (e *Engine) normalize(state *domain.SessionState) domain.View {
	v := e.resolve(state.Cursor, state.Responses)
	switch v.Phase {
	case domain.PhaseQuestion:
		state.Cursor = domain.Cursor{Section: v.SectionIndex, Question: v.QuestionIndex}
	case domain.PhaseSectionComplete:
		state.Cursor = domain.Cursor{Section: v.SectionIndex, Question: len(v.Section.Questions)}
	case domain.PhaseSurveyComplete:
		state.Cursor = domain.Cursor{Section: len(e.def.Sections)}
	}
	return v
}

// Advance moves the cursor forward one visible position. Leaving the last
// visible question of a section lands on the section-complete interlude;
// advancing from there enters the next section. No-op once the survey is
// complete.
func (e *Engine) Advance(state *domain.SessionState) domain.View {
	v := e.normalize(state)
	switch v.Phase {
	case domain.PhaseSurveyComplete:
		return v
	case domain.PhaseSectionComplete:
		state.Cursor = domain.Cursor{Section: v.SectionIndex + 1, Question: 0}
	case domain.PhaseQuestion:
		state.Cursor = domain.Cursor{Section: v.SectionIndex, Question: v.QuestionIndex + 1}
	}
	return e.normalize(state)
}

// Retreat moves the cursor backward one visible position, stopping at the
// first visible question of the first section.
func (e *Engine) Retreat(state *domain.SessionState) domain.View {
	v := e.normalize(state)

	sec := v.SectionIndex
	from := 0
	switch v.Phase {
	case domain.PhaseSurveyComplete:
		sec = len(e.def.Sections) - 1
		if sec < 0 {
			return v
		}
		from = len(e.def.Sections[sec].Questions) - 1
	case domain.PhaseSectionComplete:
		from = len(v.Section.Questions) - 1
	case domain.PhaseQuestion:
		from = v.QuestionIndex - 1
	}

	for ; sec >= 0; sec-- {
		section := &e.def.Sections[sec]
		for qi := from; qi >= 0; qi-- {
			q := &section.Questions[qi]
			if q.Condition == nil || q.Condition.Evaluate(state.Responses) {
				state.Cursor = domain.Cursor{Section: sec, Question: qi}
				return e.normalize(state)
			}
		}
		// Nothing visible before the scan point: the previous section's
		// interlude is the preceding position.
		if sec > 0 {
			state.Cursor = domain.Cursor{Section: sec - 1, Question: len(e.def.Sections[sec-1].Questions)}
			return e.normalize(state)
		}
		from = -1
	}

	// Already at (or before) the first visible question.
	return e.normalize(state)
}

// CanAdvance reports whether navigation past the current position is allowed.
// A required question blocks until it has a response or the skip sentinel; a
// consent-style question additionally demands its affirmative value.
func (e *Engine) CanAdvance(state *domain.SessionState) bool {
	v := e.Current(state)
	switch v.Phase {
	case domain.PhaseSurveyComplete:
		return false
	case domain.PhaseSectionComplete:
		return true
	}

	q := v.Question
	resp, answered := state.Responses[q.ID]

	if q.Required && !answered {
		return false
	}

	if q.Affirm != "" {
		if !answered || resp.Skipped() {
			return false
		}
		switch q.Type {
		case domain.TypeBoolean:
			return resp.Flag
		default:
			return resp.Text == q.Affirm
		}
	}

	return true
}

// Progress reports answered and total question counts. Total counts every
// defined question regardless of current visibility, so the percentage never
// moves backwards when an upstream answer hides a branch.
func (e *Engine) Progress(state *domain.SessionState) (answered, total int) {
	return state.AnsweredCount, e.def.TotalQuestions()
}
