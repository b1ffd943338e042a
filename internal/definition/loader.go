// Package definition loads survey definitions: from YAML files for custom
// surveys, and the built-in intake questionnaire used by default.
package definition

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/lstw2025/sv-documentation-platform/pkg/domain"
)

// DTO layer between YAML and the domain model. Decoding goes through a
// generic map plus mapstructure so unknown keys are rejected with a useful
// error instead of being silently dropped.

type definitionDTO struct {
	ID       string       `mapstructure:"id"`
	Title    string       `mapstructure:"title"`
	Sections []sectionDTO `mapstructure:"sections"`
}

type sectionDTO struct {
	ID        string        `mapstructure:"id"`
	Title     string        `mapstructure:"title"`
	Questions []questionDTO `mapstructure:"questions"`
}

type questionDTO struct {
	ID        string            `mapstructure:"id"`
	Type      string            `mapstructure:"type"`
	Prompt    string            `mapstructure:"prompt"`
	Helper    string            `mapstructure:"helper"`
	Options   []string          `mapstructure:"options"`
	Required  bool              `mapstructure:"required"`
	Skippable bool              `mapstructure:"skippable"`
	Affirm    string            `mapstructure:"affirm"`
	Condition *domain.Condition `mapstructure:"condition"`
}

// LoadFile reads, decodes and validates a YAML survey definition.
func LoadFile(path string) (*domain.SurveyDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML survey definition.
func Parse(data []byte) (*domain.SurveyDefinition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid definition YAML: %w", err)
	}

	var dto definitionDTO
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &dto,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid definition structure: %w", err)
	}

	def := dto.toDomain()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func (d definitionDTO) toDomain() *domain.SurveyDefinition {
	def := &domain.SurveyDefinition{
		ID:    d.ID,
		Title: d.Title,
	}
	for _, s := range d.Sections {
		section := domain.Section{ID: s.ID, Title: s.Title}
		for _, q := range s.Questions {
			section.Questions = append(section.Questions, domain.Question{
				ID:        q.ID,
				Type:      domain.QuestionType(q.Type),
				Prompt:    q.Prompt,
				Helper:    q.Helper,
				Options:   q.Options,
				Required:  q.Required,
				Skippable: q.Skippable,
				Affirm:    q.Affirm,
				Condition: q.Condition,
			})
		}
		def.Sections = append(def.Sections, section)
	}
	return def
}
