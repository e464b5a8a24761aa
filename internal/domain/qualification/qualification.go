// Package qualification ranks phase results and cuts the qualified set for
// the next phase.
package qualification

import (
	"fmt"
	"sort"

	"github.com/okian/piste/internal/domain/model"
	"github.com/okian/piste/internal/domain/types"
)

const percentBase = 100

// Rule describes how many athletes advance out of a phase.
type Rule struct {
	Method     types.QualificationMethod `json:"method"`
	Quota      int                       `json:"quota,omitempty"`
	Percentage float64                   `json:"percentage,omitempty"`
}

// Outcome splits the ranked results into the qualified and eliminated sets.
// Qualified and Eliminated partition the input athlete ids with no overlap.
type Outcome struct {
	Qualified  []string
	Eliminated []string
	// Ranked holds the results in cut order, strongest first.
	Ranked []model.AthleteResult
}

// Rank orders results by the tiebreak cascade, all descending:
// victories, then indicator, then touches scored. Ties beyond the cascade
// keep their input order; no further tiebreak is invented here.
func Rank(results []model.AthleteResult) []model.AthleteResult {
	ranked := make([]model.AthleteResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Victories != b.Victories {
			return a.Victories > b.Victories
		}
		if a.Indicator != b.Indicator {
			return a.Indicator > b.Indicator
		}
		return a.TouchesScored > b.TouchesScored
	})

	return ranked
}

// Calculate ranks the results and applies the rule's cut. A nil rule is a
// configuration error: poule phases must state how many advance.
func Calculate(rule *Rule, results []model.AthleteResult) (*Outcome, error) {
	if rule == nil {
		return nil, ErrMissingRule
	}

	cut, err := cutSize(rule, len(results))
	if err != nil {
		return nil, err
	}

	ranked := Rank(results)
	out := &Outcome{
		Qualified:  make([]string, 0, cut),
		Eliminated: make([]string, 0, len(ranked)-cut),
		Ranked:     ranked,
	}
	for i := range ranked {
		if i < cut {
			out.Qualified = append(out.Qualified, ranked[i].AthleteID)
		} else {
			out.Eliminated = append(out.Eliminated, ranked[i].AthleteID)
		}
	}

	return out, nil
}

func cutSize(rule *Rule, population int) (int, error) {
	switch rule.Method {
	case types.QualifyByQuota:
		if rule.Quota <= 0 {
			return 0, fmt.Errorf("%w: quota %d", ErrInvalidRule, rule.Quota)
		}
		return min(rule.Quota, population), nil
	case types.QualifyByPercentage:
		if rule.Percentage <= 0 || rule.Percentage > percentBase {
			return 0, fmt.Errorf("%w: percentage %.2f", ErrInvalidRule, rule.Percentage)
		}
		return int(float64(population) * rule.Percentage / percentBase), nil
	default:
		return 0, fmt.Errorf("%w: method %q", ErrInvalidRule, rule.Method)
	}
}
