package formula

import (
	"encoding/json"
	"fmt"

	"github.com/okian/piste/internal/domain/types"
)

// Template is a reusable, named phase plan. Built-in templates live in the
// preset table; organization templates are managed externally and only
// read/validated here.
type Template struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Weapon      types.Weapon   `json:"weapon,omitempty"`
	Category    types.Category `json:"category,omitempty"`
	Phases      []PhaseConfig  `json:"phases"`
	Public      bool           `json:"is_public,omitempty"`
	// OrganizationID references the owning organization for private
	// templates; empty for built-ins.
	OrganizationID string `json:"organization_id,omitempty"`
}

// Clone returns a deep copy; adapting or mutating the copy never touches
// the original.
func (t *Template) Clone() *Template {
	out := *t
	out.Phases = clonePhases(t.Phases)
	return &out
}

// Config materializes the template into a concrete tournament config.
func (t *Template) Config(id, name string, totalAthletes int) TournamentConfig {
	return TournamentConfig{
		ID:            id,
		Name:          name,
		Weapon:        t.Weapon,
		Category:      t.Category,
		TotalAthletes: totalAthletes,
		Phases:        clonePhases(t.Phases),
	}
}

// ValidateTemplate checks a template's shape: name, phase shapes, and
// sequence contiguity. Field-size dependent checks do not apply since a
// template has no athlete count yet.
func ValidateTemplate(t *Template) *ValidationResult {
	res := &ValidationResult{Valid: true}

	if t.Name == "" {
		res.addError(ValidationError{Type: ProblemMissingField, Field: "name", Message: "template name is required"})
	}
	if len(t.Phases) == 0 {
		res.addError(ValidationError{Type: ProblemNoPhases, Field: "phases", Message: "template has no phases"})
		return res
	}

	validatePhaseShapes(t.Phases, res)
	validateSequence(t.Phases, res)
	return res
}

// ExportPreset serializes a template for exchange with other systems.
func ExportPreset(t *Template) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export preset %q: %w", t.Name, err)
	}
	return data, nil
}

// ImportPreset parses and validates an exchanged preset. Invalid payloads
// are rejected with the first validation problem in the error message.
func ImportPreset(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}

	if res := ValidateTemplate(&t); !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPreset, res.Errors[0].Message)
	}
	return &t, nil
}
