package formula

import (
	"github.com/okian/piste/internal/domain/poule"
	"github.com/okian/piste/internal/domain/types"
)

// bracketLadder is the fixed ladder of direct-elimination table sizes.
var bracketLadder = [...]int{8, 16, 32, 64, 128, 256}

// Fields below this size get their poule policy forced down so poules do
// not dwarf the field.
const smallFieldThreshold = 20

// Suggestion thresholds for preset selection.
const (
	smallEventMax     = 32
	midEventMax       = 64
	roundRobinMaxSize = 16
)

// AdaptOptions parametrize the rescaling of a template to a concrete event.
type AdaptOptions struct {
	TotalAthletes int
	Weapon        types.Weapon
	Category      types.Category
}

// Adapt rescales a template to a concrete athlete count, weapon, and
// category. The input is never mutated; the returned template is a deep
// copy with every bracket snapped to the smallest ladder size that holds
// the field and, for small fields, the poule policy forced to 4-6 athletes.
func Adapt(t *Template, opts AdaptOptions) *Template {
	out := t.Clone()

	if opts.Weapon != "" {
		out.Weapon = opts.Weapon
	}
	if opts.Category != "" {
		out.Category = opts.Category
	}

	for i := range out.Phases {
		p := &out.Phases[i]
		for j := range p.Brackets {
			p.Brackets[j].Size = fitBracket(opts.TotalAthletes, p.Brackets[j].Size)
		}
		if opts.TotalAthletes > 0 && opts.TotalAthletes < smallFieldThreshold && p.PouleSizes != nil {
			p.PouleSizes = &poule.SizePolicy{Method: poule.SizeOptimal, MinSize: 4, MaxSize: 6}
		}
	}

	return out
}

// fitBracket returns the smallest ladder size holding totalAthletes,
// falling back to the template's preferred size when the field exceeds the
// ladder.
func fitBracket(totalAthletes, preferred int) int {
	if totalAthletes <= 0 {
		return preferred
	}
	for _, size := range bracketLadder {
		if size >= totalAthletes {
			return size
		}
	}
	return preferred
}

// SuggestPresets returns built-in preset ids ordered by fit for the field
// size, best candidate first.
func SuggestPresets(totalAthletes int, clubTournament bool) []string {
	switch {
	case totalAthletes < smallEventMax:
		ids := []string{PresetClubTournament, PresetDirectEliminationOnly}
		if totalAthletes <= roundRobinMaxSize {
			ids = append(ids, PresetRoundRobin)
		}
		return ids
	case totalAthletes <= midEventMax:
		ids := []string{PresetClassic}
		if !clubTournament {
			ids = append(ids, PresetFIEWorldCup)
		}
		return append(ids, PresetClubTournament)
	default:
		return []string{PresetMultiRoundPoules, PresetNationalChampionship, PresetFIEWorldCup, PresetClassic}
	}
}
