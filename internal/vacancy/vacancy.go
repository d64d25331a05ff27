// Package vacancy defines the vacancy descriptor and resume profile the
// matcher consumes. Extraction from raw documents happens upstream; these
// types carry only the already-materialized data.
package vacancy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vacancy describes one job opening.
type Vacancy struct {
	Title                  string   `json:"title" yaml:"title" mapstructure:"title"`
	Description            string   `json:"description" yaml:"description" mapstructure:"description"`
	RequiredSkills         []string `json:"required_skills" yaml:"required_skills" mapstructure:"required_skills"`
	AdditionalRequirements []string `json:"additional_requirements,omitempty" yaml:"additional_requirements" mapstructure:"additional_requirements"`
}

// SearchText joins title, description and required skills into the single
// text body the importance and vector matchers score against.
func (v *Vacancy) SearchText() string {
	parts := []string{v.Title, v.Description}
	parts = append(parts, v.RequiredSkills...)

	nonEmpty := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// Resume is a candidate profile with skills extracted upstream. Skills keep
// their order and may contain duplicates.
type Resume struct {
	Title   string   `json:"title,omitempty" yaml:"title" mapstructure:"title"`
	Skills  []string `json:"skills" yaml:"skills" mapstructure:"skills"`
	RawText string   `json:"raw_text,omitempty" yaml:"raw_text" mapstructure:"raw_text"`
}

// LoadVacancy reads a vacancy descriptor from a JSON or YAML file.
func LoadVacancy(path string) (*Vacancy, error) {
	v := &Vacancy{}
	if err := decodeFile(path, v); err != nil {
		return nil, fmt.Errorf("loading vacancy: %w", err)
	}
	return v, nil
}

// LoadResume reads a resume profile from a JSON or YAML file.
func LoadResume(path string) (*Resume, error) {
	r := &Resume{}
	if err := decodeFile(path, r); err != nil {
		return nil, fmt.Errorf("loading resume: %w", err)
	}
	return r, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	default:
		return json.Unmarshal(data, out)
	}
}
