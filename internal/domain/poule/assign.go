package poule

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/okian/piste/internal/domain/model"
)

// Options controls one assignment call. They are passed explicitly rather
// than held as engine state so Assign stays independently testable.
type Options struct {
	// StrictSeparation aborts the whole assignment when any athlete cannot
	// be placed without breaking a rule. When false the athlete is forced
	// into a poule and the break is recorded as a violation.
	StrictSeparation bool
}

// Result is a completed assignment: every input athlete placed, plus the
// violations incurred by relaxed forced placements.
type Result struct {
	Poules     []model.Poule
	Violations []model.SeparationViolation
}

// snakeCursor walks poule indices in boustrophedon order: the pointer
// advances until it hits either boundary, repeats the boundary poule once,
// and reverses. For three poules the visit order is 0,1,2,2,1,0,0,1,...
type snakeCursor struct {
	pos, dir, n int
}

func newSnakeCursor(n int) *snakeCursor {
	return &snakeCursor{dir: 1, n: n}
}

func (c *snakeCursor) advance() {
	if c.n <= 1 {
		return
	}
	next := c.pos + c.dir
	if next < 0 || next >= c.n {
		c.dir = -c.dir
		return
	}
	c.pos = next
}

// Assign distributes the pre-sorted athlete list (strongest seed first)
// into poules of the given sizes. Each athlete is first offered to the
// snake-cursor poule, then to the remaining poules in index order. When no
// poule accepts, strict mode fails the whole assignment with no partial
// result; relaxed mode forces the placement and records the violation.
func Assign(sorted []model.Athlete, sizes []int, rules Rules, opts Options) (*Result, error) {
	poules := make([]model.Poule, len(sizes))
	for i, size := range sizes {
		poules[i] = model.Poule{
			ID:       uuid.New().String(),
			Number:   i + 1,
			Size:     size,
			Athletes: make([]model.Assignment, 0, max(size, 0)),
		}
	}

	res := &Result{Poules: poules}
	cursor := newSnakeCursor(len(poules))

	for seed, athlete := range sorted {
		if err := placeOne(res, cursor, athlete, seed+1, rules, opts); err != nil {
			return nil, err
		}
		cursor.advance()
	}

	return res, nil
}

func placeOne(res *Result, cursor *snakeCursor, athlete model.Athlete, seed int, rules Rules, opts Options) error {
	poules := res.Poules

	if cursor.n > 0 {
		if target := &poules[cursor.pos]; CanPlace(athlete, target, rules) {
			insert(target, athlete, seed)
			return nil
		}
	}

	// Fallback scan in index order for the first accepting poule.
	for i := range poules {
		if CanPlace(athlete, &poules[i], rules) {
			insert(&poules[i], athlete, seed)
			return nil
		}
	}

	if opts.StrictSeparation {
		rule := blockingRule(athlete, poules, cursor, rules)
		return fmt.Errorf("athlete %s cannot be placed under %s separation: %w",
			athlete.ID, rule, ErrSeparationInfeasible)
	}

	return forcePlace(res, cursor, athlete, seed, rules)
}

// forcePlace ignores separation and puts the athlete into the cursor poule,
// or the first poule with spare capacity when the cursor poule is full.
// The broken rule is recorded so callers see real violation data instead of
// a placeholder.
func forcePlace(res *Result, cursor *snakeCursor, athlete model.Athlete, seed int, rules Rules) error {
	target := -1
	if cursor.n > 0 && !res.Poules[cursor.pos].Full() {
		target = cursor.pos
	} else {
		for i := range res.Poules {
			if !res.Poules[i].Full() {
				target = i
				break
			}
		}
	}
	if target < 0 {
		return fmt.Errorf("athlete %s: %w", athlete.ID, ErrNoCapacity)
	}

	p := &res.Poules[target]
	rule, _ := violatedRule(athlete, p, rules)
	insert(p, athlete, seed)
	res.Violations = append(res.Violations, model.SeparationViolation{
		AthleteID:   athlete.ID,
		PouleNumber: p.Number,
		Rule:        rule,
		Detail:      fmt.Sprintf("forced into poule %d past the %s limit", p.Number, rule),
	})
	return nil
}

func insert(p *model.Poule, athlete model.Athlete, seed int) {
	p.Athletes = append(p.Athletes, model.Assignment{
		AthleteID: athlete.ID,
		Position:  len(p.Athletes) + 1,
		Seed:      seed,
		Club:      athlete.ClubName(),
		Country:   athlete.Nationality,
	})
}

// blockingRule names the rule to report in a strict-mode failure: the one
// violated at the cursor poule, falling back to the first non-full poule.
func blockingRule(athlete model.Athlete, poules []model.Poule, cursor *snakeCursor, rules Rules) string {
	if cursor.n > 0 {
		if p := &poules[cursor.pos]; !p.Full() {
			if rule, ok := violatedRule(athlete, p, rules); ok {
				return rule
			}
		}
	}
	for i := range poules {
		if poules[i].Full() {
			continue
		}
		if rule, ok := violatedRule(athlete, &poules[i], rules); ok {
			return rule
		}
	}
	return "capacity"
}
