package formula

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/okian/piste/internal/domain/poule"
	"github.com/okian/piste/internal/domain/qualification"
	"github.com/okian/piste/internal/domain/types"
)

// Engarde separation keywords.
const (
	engardeClubs   = "clubs"
	engardeNations = "nations"
)

// EngardeRound is one poule round of an engarde-style formula description.
type EngardeRound struct {
	RoundNumber int      `json:"roundNumber"`
	Poules      int      `json:"poules"`
	PouleSizes  []int    `json:"pouleSizes,omitempty"`
	Separation  []string `json:"separation,omitempty"`
	Qualified   int      `json:"qualified"`
}

// EngardeElimination describes the trailing knockout table.
type EngardeElimination struct {
	TableauSize int `json:"tableauSize"`
}

// EngardeFormula is the external rounds description accepted by the
// one-way converter.
type EngardeFormula struct {
	TotalFencers int                `json:"totalFencers"`
	Rounds       []EngardeRound     `json:"rounds"`
	Elimination  EngardeElimination `json:"elimination"`
}

// FromEngarde maps an engarde rounds description into an equivalent
// tournament config: one poule phase per round plus a trailing direct
// elimination phase. This is a one-way adapter; nothing converts back.
func FromEngarde(f EngardeFormula) (*TournamentConfig, error) {
	if f.TotalFencers <= 0 {
		return nil, fmt.Errorf("%w: totalFencers must be positive, got %d", ErrInvalidEngardeFormula, f.TotalFencers)
	}

	cfg := &TournamentConfig{
		ID:            uuid.New().String(),
		Name:          "Imported engarde formula",
		TotalAthletes: f.TotalFencers,
		Phases:        make([]PhaseConfig, 0, len(f.Rounds)+1),
	}

	for i, round := range f.Rounds {
		phase, err := engardeRoundPhase(round, i+1)
		if err != nil {
			return nil, err
		}
		cfg.Phases = append(cfg.Phases, phase)
	}

	size := f.Elimination.TableauSize
	if size <= 0 {
		size = fitBracket(f.TotalFencers, bracketLadder[len(bracketLadder)-1])
	}
	cfg.Phases = append(cfg.Phases, PhaseConfig{
		ID:       uuid.New().String(),
		Name:     "Direct elimination",
		Type:     types.PhaseDirectElimination,
		Order:    len(f.Rounds) + 1,
		Brackets: []BracketConfig{{Size: size, Seeding: types.SeedByResults, Type: types.BracketMain}},
	})

	return cfg, nil
}

func engardeRoundPhase(round EngardeRound, order int) (PhaseConfig, error) {
	rules := &poule.Rules{}
	for _, sep := range round.Separation {
		switch sep {
		case engardeClubs:
			rules.Club = true
		case engardeNations:
			rules.Country = true
		default:
			return PhaseConfig{}, fmt.Errorf("%w: unknown separation %q in round %d", ErrInvalidEngardeFormula, sep, round.RoundNumber)
		}
	}

	policy := &poule.SizePolicy{Method: poule.SizeOptimal}
	if len(round.PouleSizes) > 0 {
		policy = &poule.SizePolicy{Method: poule.SizeVariable, Sizes: append([]int(nil), round.PouleSizes...)}
	}

	rule := &qualification.Rule{Method: types.QualifyByPercentage, Percentage: 100}
	if round.Qualified > 0 {
		rule = &qualification.Rule{Method: types.QualifyByQuota, Quota: round.Qualified}
	}

	return PhaseConfig{
		ID:            uuid.New().String(),
		Name:          fmt.Sprintf("Poule round %d", order),
		Type:          types.PhasePoule,
		Order:         order,
		Qualification: rule,
		PouleSizes:    policy,
		Separation:    rules,
	}, nil
}
