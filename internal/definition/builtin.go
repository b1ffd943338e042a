package definition

import "github.com/lstw2025/sv-documentation-platform/pkg/domain"

// Builtin returns the standard intake questionnaire: informed consent,
// demographics, and experience overview. Consent questions carry affirm
// values, so navigation past them requires explicit agreement rather than
// any non-empty answer.
func Builtin() *domain.SurveyDefinition {
	return &domain.SurveyDefinition{
		ID:    "intake",
		Title: "Anonymous Experience Survey",
		Sections: []domain.Section{
			{
				ID:    "consent",
				Title: "Informed Consent & Introduction",
				Questions: []domain.Question{
					{
						ID:       "welcome_understood",
						Type:     domain.TypeBoolean,
						Prompt:   "I understand this survey is about unwanted sexual experiences and may be emotionally difficult",
						Required: true,
						Affirm:   "true",
					},
					{
						ID:       "control_understood",
						Type:     domain.TypeBoolean,
						Prompt:   "I understand I can stop, save, or skip questions at any time",
						Required: true,
						Affirm:   "true",
					},
					{
						ID:       "anonymity_understood",
						Type:     domain.TypeBoolean,
						Prompt:   "I understand my responses are entirely anonymous and will be used for research, education and advocacy",
						Required: true,
						Affirm:   "true",
					},
					{
						ID:     "consent_to_participate",
						Type:   domain.TypeSingleChoice,
						Prompt: "I consent to participate in this research",
						Options: []string{
							"Yes, I consent to participate",
							"No, I do not consent",
						},
						Required: true,
						Affirm:   "Yes, I consent to participate",
					},
				},
			},
			{
				ID:    "demographics",
				Title: "Demographics & Identity",
				Questions: []domain.Question{
					{
						ID:        "birth_year",
						Type:      domain.TypeYear,
						Prompt:    "What year were you born?",
						Required:  true,
						Skippable: true,
					},
					{
						ID:     "gender_identity",
						Type:   domain.TypeSingleChoice,
						Prompt: "What is your current gender identity?",
						Options: []string{
							"Woman",
							"Man",
							"Non-binary",
							"Transgender woman",
							"Transgender man",
							"Two-spirit",
							"Gender fluid",
							"Other (please specify)",
							"Prefer not to answer",
						},
						Required:  true,
						Skippable: true,
					},
					{
						ID:     "sexual_orientation",
						Type:   domain.TypeSingleChoice,
						Prompt: "Which of the following best represents how you think of yourself?",
						Options: []string{
							"Straight/heterosexual",
							"Gay/lesbian",
							"Bisexual",
							"Pansexual",
							"Asexual",
							"Questioning/unsure",
							"Something else (please specify)",
							"I don't know",
							"Prefer not to answer",
						},
						Skippable: true,
					},
					{
						ID:     "disability_status",
						Type:   domain.TypeSingleChoice,
						Prompt: "Do you have a disability, long-term health condition, or accessibility needs?",
						Options: []string{
							"No",
							"Yes - physical disability",
							"Yes - intellectual/developmental disability",
							"Yes - mental health condition",
							"Yes - chronic illness",
							"Yes - multiple conditions",
							"Prefer not to answer",
						},
						Skippable: true,
					},
					{
						ID:     "relationship_status",
						Type:   domain.TypeSingleChoice,
						Prompt: "What is your current relationship status?",
						Options: []string{
							"Single, never married/partnered",
							"In a relationship/dating",
							"Married/civil union/domestic partnership",
							"Separated",
							"Divorced",
							"Widowed",
							"It's complicated",
							"Prefer not to answer",
						},
						Skippable: true,
					},
				},
			},
			{
				ID:    "incident_overview",
				Title: "Experience Overview",
				Questions: []domain.Question{
					{
						ID:        "frequency",
						Type:      domain.TypeNumber,
						Prompt:    "How many times have you been involved in a sexual act or situation you did not want to be involved in?",
						Helper:    "Please enter a number. This helps us understand the scope of your experiences.",
						Required:  true,
						Skippable: true,
					},
					{
						ID:        "multiple_incidents",
						Type:      domain.TypeNumber,
						Prompt:    "How many times did these things happen?",
						Required:  true,
						Skippable: true,
						Condition: &domain.Condition{
							GreaterThan: &domain.GreaterThanClause{Question: "frequency", Value: 1},
						},
					},
					{
						ID:        "people_present",
						Type:      domain.TypeSingleChoice,
						Prompt:    "Thinking of one example, how many people were there?",
						Options:   []string{"1", "2-3", "4-5", "6 or more", "Prefer not to answer"},
						Required:  true,
						Skippable: true,
					},
					{
						ID:        "different_perpetrators",
						Type:      domain.TypeSingleChoice,
						Prompt:    "How many different people were responsible?",
						Options:   []string{"1", "2-3", "4-5", "6 or more", "Prefer not to answer"},
						Required:  true,
						Skippable: true,
					},
					{
						ID:        "situation_notes",
						Type:      domain.TypeFreeText,
						Prompt:    "Is there anything about your situation you would like to note before continuing?",
						Helper:    "Optional. You can skip this question.",
						Skippable: true,
					},
				},
			},
		},
	}
}
