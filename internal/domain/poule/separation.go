package poule

import "github.com/okian/piste/internal/domain/model"

// Rule names used in violation records and error messages.
const (
	RuleClub    = "club"
	RuleCountry = "country"
)

// Rules are the club/country separation limits for one poule phase.
// A disabled flag leaves the corresponding limit unbounded.
type Rules struct {
	Club           bool `json:"club"`
	Country        bool `json:"country"`
	MaxSameClub    int  `json:"max_same_club,omitempty"`    // default 1 when Club is set
	MaxSameCountry int  `json:"max_same_country,omitempty"` // default 1 when Country is set
	Strict         bool `json:"strict,omitempty"`
}

func (r Rules) clubLimit() int {
	if r.MaxSameClub > 0 {
		return r.MaxSameClub
	}
	return 1
}

func (r Rules) countryLimit() int {
	if r.MaxSameCountry > 0 {
		return r.MaxSameCountry
	}
	return 1
}

// CanPlace reports whether the athlete may be placed into the poule under
// the given rules. A full poule never accepts. Pure function, O(poule size).
func CanPlace(athlete model.Athlete, p *model.Poule, rules Rules) bool {
	if p.Full() {
		return false
	}
	_, violated := violatedRule(athlete, p, rules)
	return !violated
}

// violatedRule names the first separation rule the placement would break,
// checking club before country. Capacity is not considered here.
func violatedRule(athlete model.Athlete, p *model.Poule, rules Rules) (string, bool) {
	if rules.Club {
		if club := athlete.ClubName(); club != "" && p.CountClub(club) >= rules.clubLimit() {
			return RuleClub, true
		}
	}
	if rules.Country {
		if nat := athlete.Nationality; nat != "" && p.CountCountry(nat) >= rules.countryLimit() {
			return RuleCountry, true
		}
	}
	return "", false
}
