package domain

import (
	"errors"
	"strconv"
)

// Condition is a typed predicate over the response map. Exactly one of the
// variant fields must be set. Conditions are interpreted, never eval'd as
// expression strings, so a definition can be validated up front.
type Condition struct {
	Equals      *EqualsClause      `json:"equals,omitempty" mapstructure:"equals"`
	Includes    *IncludesClause    `json:"includes,omitempty" mapstructure:"includes"`
	GreaterThan *GreaterThanClause `json:"greater_than,omitempty" mapstructure:"greater_than"`
	AllOf       []Condition        `json:"all_of,omitempty" mapstructure:"all_of"`
	AnyOf       []Condition        `json:"any_of,omitempty" mapstructure:"any_of"`
	Not         *Condition         `json:"not,omitempty" mapstructure:"not"`
}

// EqualsClause matches when the referenced response equals Value.
// Boolean responses compare against "true"/"false".
type EqualsClause struct {
	Question string `json:"question" mapstructure:"question"`
	Value    string `json:"value" mapstructure:"value"`
}

// IncludesClause matches when a multi-choice response contains Value.
// For single-choice responses it degrades to an equality check.
type IncludesClause struct {
	Question string `json:"question" mapstructure:"question"`
	Value    string `json:"value" mapstructure:"value"`
}

// GreaterThanClause matches when the referenced response parses as a number
// strictly greater than Value. Unparsable, skipped or absent responses never
// match.
type GreaterThanClause struct {
	Question string  `json:"question" mapstructure:"question"`
	Value    float64 `json:"value" mapstructure:"value"`
}

// Evaluate interprets the condition against the current responses. Skipped
// and unanswered questions make leaf clauses evaluate to false.
func (c *Condition) Evaluate(responses ResponseMap) bool {
	switch {
	case c.Equals != nil:
		r, ok := responses[c.Equals.Question]
		if !ok || r.Kind == KindSkipped {
			return false
		}
		switch r.Kind {
		case KindBool:
			return strconv.FormatBool(r.Flag) == c.Equals.Value
		case KindMulti:
			return len(r.Selected) == 1 && r.Selected[0] == c.Equals.Value
		default:
			return r.Text == c.Equals.Value
		}

	case c.Includes != nil:
		r, ok := responses[c.Includes.Question]
		if !ok || r.Kind == KindSkipped {
			return false
		}
		if r.Kind == KindMulti {
			return contains(r.Selected, c.Includes.Value)
		}
		return r.Text == c.Includes.Value

	case c.GreaterThan != nil:
		r, ok := responses[c.GreaterThan.Question]
		if !ok || r.Kind == KindSkipped {
			return false
		}
		n, err := strconv.ParseFloat(r.Text, 64)
		if err != nil {
			return false
		}
		return n > c.GreaterThan.Value

	case len(c.AllOf) > 0:
		for i := range c.AllOf {
			if !c.AllOf[i].Evaluate(responses) {
				return false
			}
		}
		return true

	case len(c.AnyOf) > 0:
		for i := range c.AnyOf {
			if c.AnyOf[i].Evaluate(responses) {
				return true
			}
		}
		return false

	case c.Not != nil:
		return !c.Not.Evaluate(responses)
	}

	// An empty condition gates nothing.
	return true
}

// refs returns every question id the condition tree references.
func (c *Condition) refs() []string {
	var out []string
	switch {
	case c.Equals != nil:
		out = append(out, c.Equals.Question)
	case c.Includes != nil:
		out = append(out, c.Includes.Question)
	case c.GreaterThan != nil:
		out = append(out, c.GreaterThan.Question)
	case len(c.AllOf) > 0:
		for i := range c.AllOf {
			out = append(out, c.AllOf[i].refs()...)
		}
	case len(c.AnyOf) > 0:
		for i := range c.AnyOf {
			out = append(out, c.AnyOf[i].refs()...)
		}
	case c.Not != nil:
		out = append(out, c.Not.refs()...)
	}
	return out
}

func (c *Condition) validate() error {
	variants := 0
	if c.Equals != nil {
		variants++
	}
	if c.Includes != nil {
		variants++
	}
	if c.GreaterThan != nil {
		variants++
	}
	if len(c.AllOf) > 0 {
		variants++
		for i := range c.AllOf {
			if err := c.AllOf[i].validate(); err != nil {
				return err
			}
		}
	}
	if len(c.AnyOf) > 0 {
		variants++
		for i := range c.AnyOf {
			if err := c.AnyOf[i].validate(); err != nil {
				return err
			}
		}
	}
	if c.Not != nil {
		variants++
		if err := c.Not.validate(); err != nil {
			return err
		}
	}

	if variants == 0 {
		return errors.New("empty condition")
	}
	if variants > 1 {
		return errors.New("condition sets more than one variant")
	}
	return nil
}
