// Package formula implements the tournament formula engine: configuration
// validation, preset templates and their adaptation, and the façade that
// turns a roster into poules and phase transitions.
package formula

import (
	"github.com/okian/piste/internal/domain/poule"
	"github.com/okian/piste/internal/domain/qualification"
	"github.com/okian/piste/internal/domain/types"
)

// BracketConfig describes one direct-elimination table of a phase.
type BracketConfig struct {
	Size    int                 `json:"size"`
	Seeding types.SeedingMethod `json:"seeding,omitempty"`
	Type    types.BracketType   `json:"type,omitempty"`
}

// PhaseConfig describes one competitive phase. The phase type tags which of
// the optional sections apply: poule phases use PouleSizes/Separation and
// require Qualification, elimination phases use Brackets. The validator
// enforces the per-type shape at the boundary.
type PhaseConfig struct {
	ID   string          `json:"id,omitempty"`
	Name string          `json:"name"`
	Type types.PhaseType `json:"type"`

	// Order is the 1-based position in the tournament's phase sequence.
	// Orders must form a contiguous run starting at 1.
	Order int `json:"order"`

	Qualification *qualification.Rule `json:"qualification,omitempty"`
	PouleSizes    *poule.SizePolicy   `json:"poule_sizes,omitempty"`
	Separation    *poule.Rules        `json:"separation,omitempty"`
	Brackets      []BracketConfig     `json:"brackets,omitempty"`
}

// TournamentConfig is the ordered phase plan for one tournament. It is
// read-only input to the engine; once a phase starts executing the caller
// must not change it.
type TournamentConfig struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Weapon        types.Weapon    `json:"weapon,omitempty"`
	Category      types.Category  `json:"category,omitempty"`
	TotalAthletes int             `json:"total_athletes"`
	Phases        []PhaseConfig   `json:"phases"`
}

// clonePhases deep-copies a phase list including the optional sections.
func clonePhases(phases []PhaseConfig) []PhaseConfig {
	out := make([]PhaseConfig, len(phases))
	for i, p := range phases {
		out[i] = p
		if p.Qualification != nil {
			rule := *p.Qualification
			out[i].Qualification = &rule
		}
		if p.PouleSizes != nil {
			policy := *p.PouleSizes
			policy.Sizes = append([]int(nil), p.PouleSizes.Sizes...)
			out[i].PouleSizes = &policy
		}
		if p.Separation != nil {
			rules := *p.Separation
			out[i].Separation = &rules
		}
		if p.Brackets != nil {
			out[i].Brackets = append([]BracketConfig(nil), p.Brackets...)
		}
	}
	return out
}
