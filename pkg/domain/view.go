package domain

// Phase describes what the host should present for the current cursor.
type Phase string

const (
	PhaseQuestion        Phase = "question"
	PhaseSectionComplete Phase = "section_complete"
	PhaseSurveyComplete  Phase = "survey_complete"
)

// View is the resolved presentation of a cursor position: the visible
// question, the section-complete interlude, or survey completion.
type View struct {
	Phase Phase `json:"phase"`

	// Section is set for PhaseQuestion and PhaseSectionComplete.
	Section      *Section `json:"section,omitempty"`
	SectionIndex int      `json:"section_index"`

	// Question is set only for PhaseQuestion.
	Question      *Question `json:"question,omitempty"`
	QuestionIndex int       `json:"question_index"`
}
