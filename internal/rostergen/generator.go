// Package rostergen produces synthetic athlete rosters and poule results
// for the demo driver and tests. Generation is deterministic for a given
// seed so runs are reproducible.
package rostergen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/okian/piste/internal/domain/model"
	"github.com/okian/piste/internal/domain/types"
)

// Default generation parameters.
const (
	defaultSize       = 20
	defaultClubs      = 6
	defaultSeed       = 1
	pouleMatchTouches = 5
	unrankedShare     = 8 // roughly one in eight athletes has no ranking
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSize sets the number of athletes to generate.
func WithSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.size = n
		}
	}
}

// WithClubs sets how many clubs the roster is spread over.
func WithClubs(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.clubs = n
		}
	}
}

// WithSeed fixes the random source for reproducible rosters.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithWeapon sets the weapon stamped on every athlete.
func WithWeapon(w types.Weapon) Option {
	return func(g *Generator) {
		g.weapon = w
	}
}

// Generator builds synthetic rosters.
type Generator struct {
	size   int
	clubs  int
	seed   int64
	weapon types.Weapon
}

// New creates a generator with defaults, applying the given options.
func New(opts ...Option) *Generator {
	g := &Generator{
		size:   defaultSize,
		clubs:  defaultClubs,
		seed:   defaultSeed,
		weapon: types.WeaponEpee,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Roster generates the athlete list, ranked 1..n with a sprinkling of
// unranked entries.
func (g *Generator) Roster() []model.Athlete {
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // deterministic seed for reproducible rosters

	clubs := make([]model.Club, g.clubs)
	for i := range clubs {
		name := clubNames[i%len(clubNames)]
		clubs[i] = model.Club{
			ID:      uuid.New().String(),
			Name:    name,
			Country: nations[i%len(nations)],
		}
	}

	athletes := make([]model.Athlete, 0, g.size)
	for i := 0; i < g.size; i++ {
		club := clubs[rng.Intn(len(clubs))]
		a := model.Athlete{
			ID:          uuid.New().String(),
			Name:        fmt.Sprintf("%s %s", givenNames[rng.Intn(len(givenNames))], familyNames[rng.Intn(len(familyNames))]),
			Nationality: club.Country,
			Club:        &club,
			Weapon:      g.weapon,
		}
		if rng.Intn(unrankedShare) != 0 {
			a.Ranking = &model.Ranking{Rank: i + 1, Points: float64(g.size-i) * 4}
		}
		athletes = append(athletes, a)
	}
	return athletes
}

// SimulateResults plays out every poule as a full round robin with random
// five-touch matches and returns per-athlete results ranked by victories.
// The results carry the given phase id so they can feed a qualification cut.
func (g *Generator) SimulateResults(poules []model.Poule, phaseID string) []model.AthleteResult {
	rng := rand.New(rand.NewSource(g.seed + 1)) //nolint:gosec // deterministic seed for reproducible results

	results := make([]model.AthleteResult, 0, totalAthletes(poules))
	for _, p := range poules {
		byID := make(map[string]*model.AthleteResult, len(p.Athletes))
		for _, a := range p.Athletes {
			results = append(results, model.AthleteResult{AthleteID: a.AthleteID, PhaseID: phaseID})
			byID[a.AthleteID] = &results[len(results)-1]
		}

		for i := 0; i < len(p.Athletes); i++ {
			for j := i + 1; j < len(p.Athletes); j++ {
				playMatch(rng, byID[p.Athletes[i].AthleteID], byID[p.Athletes[j].AthleteID])
			}
		}
	}

	for i := range results {
		r := &results[i]
		r.Indicator = r.TouchesScored - r.TouchesReceived
		if r.Matches > 0 {
			r.VictoryRatio = float64(r.Victories) / float64(r.Matches)
		}
	}
	rankResults(results)
	return results
}

func playMatch(rng *rand.Rand, a, b *model.AthleteResult) {
	loserTouches := rng.Intn(pouleMatchTouches)
	winner, loser := a, b
	if rng.Intn(2) == 1 {
		winner, loser = b, a
	}

	winner.Victories++
	winner.Matches++
	winner.TouchesScored += pouleMatchTouches
	winner.TouchesReceived += loserTouches

	loser.Matches++
	loser.TouchesScored += loserTouches
	loser.TouchesReceived += pouleMatchTouches
}

// rankResults stamps 1-based ranks using the victories/indicator/touches
// cascade so the next round can seed from them.
func rankResults(results []model.AthleteResult) {
	order := make([]*model.AthleteResult, 0, len(results))
	for i := range results {
		order = append(order, &results[i])
	}
	sort.SliceStable(order, func(i, j int) bool { return better(order[i], order[j]) })
	for i, r := range order {
		r.Rank = i + 1
	}
}

func better(a, b *model.AthleteResult) bool {
	if a.Victories != b.Victories {
		return a.Victories > b.Victories
	}
	if a.Indicator != b.Indicator {
		return a.Indicator > b.Indicator
	}
	return a.TouchesScored > b.TouchesScored
}

func totalAthletes(poules []model.Poule) int {
	n := 0
	for i := range poules {
		n += len(poules[i].Athletes)
	}
	return n
}
