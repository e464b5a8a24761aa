package formula

import (
	"fmt"
	"sort"

	"github.com/okian/piste/internal/domain/poule"
	"github.com/okian/piste/internal/domain/qualification"
	"github.com/okian/piste/internal/domain/types"
)

// Built-in preset ids.
const (
	PresetClassic               = "classic"
	PresetClubTournament        = "club-tournament"
	PresetDirectEliminationOnly = "direct-elimination-only"
	PresetRoundRobin            = "round-robin"
	PresetFIEWorldCup           = "fie-worldcup"
	PresetMultiRoundPoules      = "multi-round-poules"
	PresetNationalChampionship  = "national-championship"
)

func quota(n int) *qualification.Rule {
	return &qualification.Rule{Method: types.QualifyByQuota, Quota: n}
}

func percentage(p float64) *qualification.Rule {
	return &qualification.Rule{Method: types.QualifyByPercentage, Percentage: p}
}

// presets is the immutable built-in template table, keyed by preset id.
// It is initialized once and never mutated at runtime; accessors hand out
// clones so callers cannot reach the shared values.
var presets = map[string]*Template{
	PresetClassic: {
		ID:          PresetClassic,
		Name:        "Classic",
		Description: "One poule round qualifying 80% into a direct elimination table",
		Public:      true,
		Phases: []PhaseConfig{
			{
				Name:          "Poule round",
				Type:          types.PhasePoule,
				Order:         1,
				Qualification: percentage(80),
				PouleSizes:    &poule.SizePolicy{Method: poule.SizeOptimal},
				Separation:    &poule.Rules{Club: true, Country: true},
			},
			{
				Name:     "Direct elimination",
				Type:     types.PhaseDirectElimination,
				Order:    2,
				Brackets: []BracketConfig{{Size: 64, Seeding: types.SeedByResults, Type: types.BracketMain}},
			},
		},
	},
	PresetClubTournament: {
		ID:          PresetClubTournament,
		Name:        "Club tournament",
		Description: "Single poule round with no separation, everyone advances to a small table",
		Public:      true,
		Phases: []PhaseConfig{
			{
				Name:          "Poule round",
				Type:          types.PhasePoule,
				Order:         1,
				Qualification: percentage(100),
				PouleSizes:    &poule.SizePolicy{Method: poule.SizeOptimal, MinSize: 4, MaxSize: 6},
			},
			{
				Name:     "Direct elimination",
				Type:     types.PhaseDirectElimination,
				Order:    2,
				Brackets: []BracketConfig{{Size: 16, Seeding: types.SeedByResults, Type: types.BracketMain}},
			},
		},
	},
	PresetDirectEliminationOnly: {
		ID:          PresetDirectEliminationOnly,
		Name:        "Direct elimination only",
		Description: "Straight knockout from the initial ranking, no poules",
		Public:      true,
		Phases: []PhaseConfig{
			{
				Name:     "Direct elimination",
				Type:     types.PhaseDirectElimination,
				Order:    1,
				Brackets: []BracketConfig{{Size: 32, Seeding: types.SeedByRanking, Type: types.BracketMain}},
			},
		},
	},
	PresetRoundRobin: {
		ID:          PresetRoundRobin,
		Name:        "Round robin",
		Description: "Everyone fences everyone in one large poule; final ranking from the poule",
		Public:      true,
		Phases: []PhaseConfig{
			{
				Name:          "Round robin",
				Type:          types.PhasePoule,
				Order:         1,
				Qualification: percentage(100),
				PouleSizes:    &poule.SizePolicy{Method: poule.SizeOptimal, MinSize: 3, MaxSize: 16},
			},
		},
	},
	PresetFIEWorldCup: {
		ID:          PresetFIEWorldCup,
		Name:        "FIE world cup",
		Description: "Poules of seven with national separation, 70% qualify, table of 64 plus classification",
		Public:      true,
		Phases: []PhaseConfig{
			{
				Name:          "Poule round",
				Type:          types.PhasePoule,
				Order:         1,
				Qualification: percentage(70),
				PouleSizes:    &poule.SizePolicy{Method: poule.SizeFixed, FixedSize: 7},
				Separation:    &poule.Rules{Country: true},
			},
			{
				Name:     "Direct elimination",
				Type:     types.PhaseDirectElimination,
				Order:    2,
				Brackets: []BracketConfig{{Size: 64, Seeding: types.SeedByResults, Type: types.BracketMain}},
			},
			{
				Name:  "Classification",
				Type:  types.PhaseClassification,
				Order: 3,
			},
		},
	},
	PresetMultiRoundPoules: {
		ID:          PresetMultiRoundPoules,
		Name:        "Multi-round poules",
		Description: "Two poule rounds narrowing a large field before the table",
		Public:      true,
		Phases: []PhaseConfig{
			{
				Name:          "First poule round",
				Type:          types.PhasePoule,
				Order:         1,
				Qualification: percentage(80),
				PouleSizes:    &poule.SizePolicy{Method: poule.SizeOptimal},
				Separation:    &poule.Rules{Club: true, Country: true},
			},
			{
				Name:          "Second poule round",
				Type:          types.PhasePoule,
				Order:         2,
				Qualification: quota(32),
				PouleSizes:    &poule.SizePolicy{Method: poule.SizeOptimal},
				Separation:    &poule.Rules{Club: true},
			},
			{
				Name:     "Direct elimination",
				Type:     types.PhaseDirectElimination,
				Order:    3,
				Brackets: []BracketConfig{{Size: 32, Seeding: types.SeedByResults, Type: types.BracketMain}},
			},
		},
	},
	PresetNationalChampionship: {
		ID:          PresetNationalChampionship,
		Name:        "National championship",
		Description: "Poule round with club separation, 75% qualify, large table plus classification",
		Public:      true,
		Phases: []PhaseConfig{
			{
				Name:          "Poule round",
				Type:          types.PhasePoule,
				Order:         1,
				Qualification: percentage(75),
				PouleSizes:    &poule.SizePolicy{Method: poule.SizeOptimal},
				Separation:    &poule.Rules{Club: true},
			},
			{
				Name:     "Direct elimination",
				Type:     types.PhaseDirectElimination,
				Order:    2,
				Brackets: []BracketConfig{{Size: 128, Seeding: types.SeedByResults, Type: types.BracketMain}},
			},
			{
				Name:  "Classification",
				Type:  types.PhaseClassification,
				Order: 3,
			},
		},
	},
}

// Preset returns a clone of the built-in template with the given id.
func Preset(id string) (*Template, error) {
	t, ok := presets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return t.Clone(), nil
}

// PresetIDs lists the built-in preset ids in stable order.
func PresetIDs() []string {
	ids := make([]string, 0, len(presets))
	for id := range presets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
