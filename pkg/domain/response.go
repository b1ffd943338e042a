package domain

// ResponseKind discriminates the value shape stored for a question.
type ResponseKind string

const (
	KindText   ResponseKind = "text"   // free-text, number, year
	KindChoice ResponseKind = "choice" // single-choice
	KindMulti  ResponseKind = "multi"  // multi-choice
	KindBool   ResponseKind = "bool"   // boolean

	// KindSkipped is the reserved skip sentinel: the respondent explicitly
	// declined to answer. Distinct from the question being unanswered.
	KindSkipped ResponseKind = "skipped"
)

// Response is a recorded answer for a single question.
type Response struct {
	Kind     ResponseKind `json:"kind"`
	Text     string       `json:"text,omitempty"`
	Selected []string     `json:"selected,omitempty"`
	Flag     bool         `json:"flag,omitempty"`
}

// TextResponse records a free-text, number or year answer.
func TextResponse(text string) Response {
	return Response{Kind: KindText, Text: text}
}

// ChoiceResponse records a single-choice answer.
func ChoiceResponse(option string) Response {
	return Response{Kind: KindChoice, Text: option}
}

// MultiResponse records a multi-choice answer.
func MultiResponse(options ...string) Response {
	return Response{Kind: KindMulti, Selected: options}
}

// BoolResponse records a boolean answer.
func BoolResponse(v bool) Response {
	return Response{Kind: KindBool, Flag: v}
}

// SkippedResponse returns the skip sentinel.
func SkippedResponse() Response {
	return Response{Kind: KindSkipped}
}

// Skipped reports whether the response is the skip sentinel.
func (r Response) Skipped() bool {
	return r.Kind == KindSkipped
}

// Matches reports whether the response shape fits the declared question type.
func (r Response) Matches(t QuestionType) bool {
	if r.Kind == KindSkipped {
		return true
	}
	switch t {
	case TypeSingleChoice:
		return r.Kind == KindChoice
	case TypeMultiChoice:
		return r.Kind == KindMulti
	case TypeBoolean:
		return r.Kind == KindBool
	case TypeNumber, TypeYear, TypeFreeText:
		return r.Kind == KindText
	}
	return false
}

// ResponseMap holds recorded responses keyed by question id.
type ResponseMap map[string]Response

// Clone returns an independent copy of the map.
func (m ResponseMap) Clone() ResponseMap {
	out := make(ResponseMap, len(m))
	for k, v := range m {
		if len(v.Selected) > 0 {
			v.Selected = append([]string(nil), v.Selected...)
		}
		out[k] = v
	}
	return out
}
