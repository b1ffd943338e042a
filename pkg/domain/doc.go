// Package domain contains the core types of the survey intake engine:
// the immutable survey definition (sections, questions, visibility
// conditions), respondent responses, the session state that tracks a
// single respondent's progress, and the error taxonomy shared by the
// runtime and its adapters.
package domain
