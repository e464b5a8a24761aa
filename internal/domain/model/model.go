// Package model contains plain domain data passed between layers.
// The engine reads these structures and never mutates caller-supplied
// values; everything it returns is freshly allocated.
package model

import "github.com/okian/piste/internal/domain/types"

// Club is the affiliation used for separation bookkeeping.
type Club struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// Ranking is an athlete's position on an external ranking list.
type Ranking struct {
	Rank   int     `json:"rank"`
	Points float64 `json:"points,omitempty"`
}

// Athlete is a registered fencer as supplied by the caller for one
// generation call.
type Athlete struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Nationality string       `json:"nationality"`
	Club        *Club        `json:"club,omitempty"`
	Ranking     *Ranking     `json:"ranking,omitempty"`
	Weapon      types.Weapon `json:"weapon,omitempty"`
}

// ClubName returns the athlete's club name or "" when unaffiliated.
func (a Athlete) ClubName() string {
	if a.Club == nil {
		return ""
	}
	return a.Club.Name
}

// Assignment records one athlete's slot inside a generated poule.
// Club and country are snapshotted so separation bookkeeping does not
// depend on the caller keeping the Athlete value alive.
type Assignment struct {
	AthleteID string `json:"athlete_id"`
	Position  int    `json:"position"` // 1-based inside the poule
	Seed      int    `json:"seed,omitempty"`
	Club      string `json:"club,omitempty"`
	Country   string `json:"country,omitempty"`
}

// Poule is one round-robin group produced by assignment.
// len(Athletes) never exceeds Size; positions are unique and contiguous
// starting at 1.
type Poule struct {
	ID       string       `json:"id"`
	Number   int          `json:"number"` // 1-based
	Size     int          `json:"size"`
	Athletes []Assignment `json:"athletes"`
}

// Full reports whether the poule has reached its target size.
func (p *Poule) Full() bool {
	return len(p.Athletes) >= p.Size
}

// CountClub returns how many current members share the given club name.
// Unaffiliated members (empty club) never count.
func (p *Poule) CountClub(name string) int {
	if name == "" {
		return 0
	}
	n := 0
	for i := range p.Athletes {
		if p.Athletes[i].Club == name {
			n++
		}
	}
	return n
}

// CountCountry returns how many current members share the given nationality.
func (p *Poule) CountCountry(nationality string) int {
	if nationality == "" {
		return 0
	}
	n := 0
	for i := range p.Athletes {
		if p.Athletes[i].Country == nationality {
			n++
		}
	}
	return n
}

// AthleteResult is one athlete's outcome in a completed phase, produced
// by the external match-recording system and fed back into the engine.
type AthleteResult struct {
	AthleteID        string  `json:"athlete_id"`
	PhaseID          string  `json:"phase_id"`
	Rank             int     `json:"rank"`
	Victories        int     `json:"victories"`
	Matches          int     `json:"matches"`
	TouchesScored    int     `json:"touches_scored"`
	TouchesReceived  int     `json:"touches_received"`
	Indicator        int     `json:"indicator"` // touches scored minus received
	VictoryRatio     float64 `json:"victory_ratio"`
	Eliminated       bool    `json:"eliminated"`
	QualifiesForNext bool    `json:"qualifies_for_next"`
}

// SeparationViolation records one forced placement made while relaxed
// assignment could not honor a separation rule.
type SeparationViolation struct {
	AthleteID   string `json:"athlete_id"`
	PouleNumber int    `json:"poule_number"`
	Rule        string `json:"rule"` // "club" or "country"
	Detail      string `json:"detail,omitempty"`
}

// PouleStatistics summarizes one generation call.
type PouleStatistics struct {
	PouleCount       int         `json:"poule_count"`
	AverageSize      float64     `json:"average_size"`
	SizeDistribution map[int]int `json:"size_distribution"`
	// SeparationSuccess is the percentage of placements that honored the
	// separation rules, computed from the recorded violations.
	SeparationSuccess float64 `json:"separation_success"`
	ForcedPlacements  int     `json:"forced_placements"`
}
