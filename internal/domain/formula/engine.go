package formula

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/okian/piste/internal/domain/model"
	"github.com/okian/piste/internal/domain/poule"
	"github.com/okian/piste/internal/domain/qualification"
	"github.com/okian/piste/internal/domain/types"
)

// unrankedSentinel sorts athletes without a ranking behind every ranked one.
const unrankedSentinel = 1 << 20

const percentFull = 100.0

// Options control one engine call. They are threaded through explicitly so
// the underlying assignment and validation stay pure and testable.
type Options struct {
	// StrictSeparation fails generation instead of forcing rule-breaking
	// placements.
	StrictSeparation bool
	// AllowIncompletePoules tolerates a final poule below the policy's
	// minimum size (fixed-policy remainders). When false such a partition
	// is an error.
	AllowIncompletePoules bool
	// OptimizeForBalance re-balances optimal-policy sizes so they differ
	// by at most one athlete.
	OptimizeForBalance bool
	// DefaultPouleSizes supplies the optimal-policy bounds for poule phases
	// that do not state their own. Nil means the package bounds.
	DefaultPouleSizes *poule.SizePolicy
}

// GenerationResult is the outcome of one poule generation call, handed back
// to the caller for persistence and display.
type GenerationResult struct {
	Poules     []model.Poule               `json:"poules"`
	Violations []model.SeparationViolation `json:"separation_violations"`
	Statistics model.PouleStatistics       `json:"statistics"`
}

// TransitionResult is the outcome of a phase qualification cut.
// Configuration problems land in Errors with Success false; nothing here
// is a thrown failure.
type TransitionResult struct {
	Success    bool     `json:"success"`
	Qualified  []string `json:"qualified_athletes"`
	Eliminated []string `json:"eliminated_athletes"`
	Errors     []string `json:"errors"`
	Warnings   []string `json:"warnings"`
}

// Engine drives one tournament through its phase sequence. An instance is
// built, driven by a single logical flow, and discarded; it holds no locks,
// so concurrent tournaments each need their own instance.
type Engine struct {
	config *TournamentConfig
	state  *State
}

// NewEngine returns an engine with no tournament attached.
func NewEngine() *Engine {
	return &Engine{}
}

// InitializeTournament validates the config and, when valid, creates the
// in-memory tournament state. The validation result is returned either way
// so the operator sees every problem at once.
func (e *Engine) InitializeTournament(cfg TournamentConfig) *ValidationResult {
	res := Validate(&cfg)
	if !res.Valid {
		return res
	}

	cfg.Phases = clonePhases(cfg.Phases)
	for i := range cfg.Phases {
		if cfg.Phases[i].ID == "" {
			cfg.Phases[i].ID = uuid.New().String()
		}
	}

	e.config = &cfg
	e.state = newState(&cfg)
	return res
}

// State returns a snapshot of the tournament progress. Mutating the
// snapshot does not affect the engine.
func (e *Engine) State() *State {
	if e.state == nil {
		return nil
	}
	return e.state.snapshot()
}

// GeneratePoules builds the poules for a poule phase. Athletes are seeded
// by the previous phase's results when given, otherwise by their initial
// ranking, with unranked athletes last. Forced placements under relaxed
// separation are reported in the result's violations and reflected in the
// separation-success statistic.
func (e *Engine) GeneratePoules(
	phase PhaseConfig,
	athletes []model.Athlete,
	previous []model.AthleteResult,
	opts Options,
) (*GenerationResult, error) {
	if e.config == nil {
		return nil, ErrNotInitialized
	}
	if phase.Type != types.PhasePoule {
		return nil, fmt.Errorf("phase %q is %s, not a poule phase: %w", phase.Name, phase.Type, ErrInvalidPhase)
	}

	sorted := seedAthletes(athletes, previous)

	policy := poule.SizePolicy{Method: poule.SizeOptimal}
	if phase.PouleSizes != nil {
		policy = *phase.PouleSizes
	}
	applyDefaultSizes(&policy, opts.DefaultPouleSizes)
	sizes, err := poule.ComputeSizes(policy, len(sorted))
	if err != nil {
		return nil, err
	}
	if opts.OptimizeForBalance && policy.Method != poule.SizeVariable {
		sizes = balanceSizes(sizes, len(sorted))
	}
	if !opts.AllowIncompletePoules {
		if err := checkComplete(policy, sizes); err != nil {
			return nil, err
		}
	}

	rules := poule.Rules{}
	if phase.Separation != nil {
		rules = *phase.Separation
	}

	assigned, err := poule.Assign(sorted, sizes, rules, poule.Options{
		StrictSeparation: opts.StrictSeparation || rules.Strict,
	})
	if err != nil {
		return nil, err
	}

	if ps := e.state.phaseState(phase.Order); ps != nil && ps.Status == PhasePending {
		ps.Status = PhaseActive
	}

	return &GenerationResult{
		Poules:     assigned.Poules,
		Violations: assigned.Violations,
		Statistics: statistics(assigned, len(sorted)),
	}, nil
}

// CalculateQualification ranks a completed phase's results and cuts the
// qualified set per the phase's rule, advancing the tournament state on
// success. Rule problems come back as result errors, not Go errors.
func (e *Engine) CalculateQualification(phase PhaseConfig, results []model.AthleteResult) (*TransitionResult, error) {
	if e.config == nil {
		return nil, ErrNotInitialized
	}

	out, err := qualification.Calculate(phase.Qualification, results)
	if err != nil {
		return &TransitionResult{Success: false, Errors: []string{err.Error()}}, nil
	}

	res := &TransitionResult{
		Success:    true,
		Qualified:  out.Qualified,
		Eliminated: out.Eliminated,
	}
	if phase.Qualification.Method == types.QualifyByQuota && phase.Qualification.Quota > len(results) {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("quota %d exceeds the %d results; everyone qualifies", phase.Qualification.Quota, len(results)))
	}

	if ps := e.state.phaseState(phase.Order); ps != nil {
		ps.Status = PhaseCompleted
		ps.Results = append([]model.AthleteResult(nil), results...)
		ps.Qualified = res.Qualified
		ps.Eliminated = res.Eliminated
	}
	e.state.OverallRanking = rankedIDs(out.Ranked)
	if e.state.CurrentPhase < len(e.state.Phases)-1 {
		e.state.CurrentPhase++
	}

	return res, nil
}

// seedAthletes orders the roster for snake distribution: by previous-phase
// rank when results are given, otherwise by initial ranking. Ties keep
// input order.
func seedAthletes(athletes []model.Athlete, previous []model.AthleteResult) []model.Athlete {
	sorted := make([]model.Athlete, len(athletes))
	copy(sorted, athletes)

	rankOf := func(a model.Athlete) int {
		if a.Ranking == nil || a.Ranking.Rank <= 0 {
			return unrankedSentinel
		}
		return a.Ranking.Rank
	}

	if len(previous) > 0 {
		prevRank := make(map[string]int, len(previous))
		for _, r := range previous {
			if r.Rank > 0 {
				prevRank[r.AthleteID] = r.Rank
			}
		}
		rankOf = func(a model.Athlete) int {
			if rank, ok := prevRank[a.ID]; ok {
				return rank
			}
			return unrankedSentinel
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return rankOf(sorted[i]) < rankOf(sorted[j])
	})
	return sorted
}

// applyDefaultSizes fills the unset bounds of an optimal policy from the
// caller's default policy. Phase-stated bounds and non-optimal methods are
// authoritative and stay untouched.
func applyDefaultSizes(policy, def *poule.SizePolicy) {
	if def == nil || (policy.Method != poule.SizeOptimal && policy.Method != "") {
		return
	}
	if policy.MinSize == 0 {
		policy.MinSize = def.MinSize
	}
	if policy.MaxSize == 0 {
		policy.MaxSize = def.MaxSize
	}
}

// balanceSizes redistributes the total across the same number of poules so
// sizes differ by at most one.
func balanceSizes(sizes []int, total int) []int {
	count := len(sizes)
	if count == 0 {
		return sizes
	}
	base := total / count
	extra := total % count
	out := make([]int, count)
	for i := range out {
		out[i] = base
		if i < extra {
			out[i]++
		}
	}
	return out
}

// checkComplete rejects partitions whose final poule fell below the
// policy's minimum, which only the fixed method can produce.
func checkComplete(policy poule.SizePolicy, sizes []int) error {
	if policy.Method != poule.SizeFixed || len(sizes) == 0 {
		return nil
	}
	if last := sizes[len(sizes)-1]; last < policy.FixedSize {
		return fmt.Errorf("final poule of %d below the fixed size %d: %w", last, policy.FixedSize, ErrIncompletePoule)
	}
	return nil
}

func statistics(res *poule.Result, totalAthletes int) model.PouleStatistics {
	stats := model.PouleStatistics{
		PouleCount:       len(res.Poules),
		SizeDistribution: make(map[int]int, len(res.Poules)),
		ForcedPlacements: len(res.Violations),
	}

	placed := 0
	for i := range res.Poules {
		n := len(res.Poules[i].Athletes)
		placed += n
		stats.SizeDistribution[n]++
	}
	if stats.PouleCount > 0 {
		stats.AverageSize = float64(placed) / float64(stats.PouleCount)
	}

	stats.SeparationSuccess = percentFull
	if totalAthletes > 0 {
		stats.SeparationSuccess = percentFull * float64(totalAthletes-len(res.Violations)) / float64(totalAthletes)
	}
	return stats
}

func rankedIDs(ranked []model.AthleteResult) []string {
	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.AthleteID)
	}
	return ids
}
