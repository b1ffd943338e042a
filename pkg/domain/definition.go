package domain

import "fmt"

// QuestionType defines the shape of the expected response.
type QuestionType string

const (
	TypeSingleChoice QuestionType = "single-choice"
	TypeMultiChoice  QuestionType = "multi-choice"
	TypeNumber       QuestionType = "number"
	TypeYear         QuestionType = "year"
	TypeBoolean      QuestionType = "boolean"
	TypeFreeText     QuestionType = "free-text"
)

// Question is a single item in a survey section.
type Question struct {
	ID     string       `json:"id"`
	Type   QuestionType `json:"type"`
	Prompt string       `json:"prompt"`

	// Helper is optional guidance shown below the prompt.
	Helper string `json:"helper,omitempty"`

	// Options lists the permitted values for choice types.
	Options []string `json:"options,omitempty"`

	Required  bool `json:"required"`
	Skippable bool `json:"skippable"`

	// Affirm marks a consent-style question: a single-choice response must
	// equal this option (not merely be non-empty), and a boolean response
	// must be true when Affirm is "true".
	Affirm string `json:"affirm,omitempty"`

	// Condition gates visibility. A nil condition means always visible.
	Condition *Condition `json:"condition,omitempty"`
}

// IsChoice reports whether the question expects a value from Options.
func (q *Question) IsChoice() bool {
	return q.Type == TypeSingleChoice || q.Type == TypeMultiChoice
}

// Section is a named, ordered group of questions.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// SurveyDefinition is the immutable section/question tree. It is built once
// at startup and never mutated afterwards; the runtime only reads it.
type SurveyDefinition struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// QuestionAt returns the question at the given cursor position, or nil if
// the indices fall outside the tree.
func (d *SurveyDefinition) QuestionAt(section, question int) *Question {
	if section < 0 || section >= len(d.Sections) {
		return nil
	}
	s := &d.Sections[section]
	if question < 0 || question >= len(s.Questions) {
		return nil
	}
	return &s.Questions[question]
}

// QuestionByID looks up a question anywhere in the tree.
func (d *SurveyDefinition) QuestionByID(id string) *Question {
	for si := range d.Sections {
		for qi := range d.Sections[si].Questions {
			if d.Sections[si].Questions[qi].ID == id {
				return &d.Sections[si].Questions[qi]
			}
		}
	}
	return nil
}

// TotalQuestions counts every defined question, visible or not.
func (d *SurveyDefinition) TotalQuestions() int {
	total := 0
	for i := range d.Sections {
		total += len(d.Sections[i].Questions)
	}
	return total
}

// Validate checks structural integrity of the definition. It returns a
// ConfigurationError aggregating every problem found, so a malformed
// definition fails loudly at startup rather than mid-session.
func (d *SurveyDefinition) Validate() error {
	var problems []string

	if len(d.Sections) == 0 {
		problems = append(problems, "definition has no sections")
	}

	seen := make(map[string]bool)
	sectionIDs := make(map[string]bool)
	for si := range d.Sections {
		s := &d.Sections[si]
		if s.ID == "" {
			problems = append(problems, fmt.Sprintf("section %d has no id", si))
		} else if sectionIDs[s.ID] {
			problems = append(problems, fmt.Sprintf("duplicate section id %q", s.ID))
		}
		sectionIDs[s.ID] = true

		for qi := range s.Questions {
			q := &s.Questions[qi]
			if q.ID == "" {
				problems = append(problems, fmt.Sprintf("section %q question %d has no id", s.ID, qi))
				continue
			}
			if seen[q.ID] {
				problems = append(problems, fmt.Sprintf("duplicate question id %q", q.ID))
			}
			seen[q.ID] = true

			switch q.Type {
			case TypeSingleChoice, TypeMultiChoice, TypeNumber, TypeYear, TypeBoolean, TypeFreeText:
			default:
				problems = append(problems, fmt.Sprintf("question %q has unknown type %q", q.ID, q.Type))
			}

			if q.IsChoice() && len(q.Options) == 0 {
				problems = append(problems, fmt.Sprintf("choice question %q has no options", q.ID))
			}

			if q.Affirm != "" {
				switch q.Type {
				case TypeSingleChoice:
					if !contains(q.Options, q.Affirm) {
						problems = append(problems, fmt.Sprintf("question %q affirm value %q is not among its options", q.ID, q.Affirm))
					}
				case TypeBoolean:
					if q.Affirm != "true" {
						problems = append(problems, fmt.Sprintf("boolean question %q affirm value must be \"true\", got %q", q.ID, q.Affirm))
					}
				default:
					problems = append(problems, fmt.Sprintf("question %q of type %q cannot carry an affirm value", q.ID, q.Type))
				}
			}
		}
	}

	// Conditions may only reference questions that exist.
	for si := range d.Sections {
		for qi := range d.Sections[si].Questions {
			q := &d.Sections[si].Questions[qi]
			if q.Condition == nil {
				continue
			}
			if err := q.Condition.validate(); err != nil {
				problems = append(problems, fmt.Sprintf("question %q condition: %v", q.ID, err))
				continue
			}
			for _, ref := range q.Condition.refs() {
				if !seen[ref] {
					problems = append(problems, fmt.Sprintf("question %q condition references unknown question %q", q.ID, ref))
				}
			}
		}
	}

	if len(problems) > 0 {
		return &ConfigurationError{Problems: problems}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
