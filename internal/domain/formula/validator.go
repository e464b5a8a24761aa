package formula

import (
	"fmt"
	"sort"

	"github.com/okian/piste/internal/domain/types"
)

// A tournament needs at least three athletes for a meaningful poule.
const minFieldSize = 3

// Validation problem types.
const (
	ProblemMissingField  = "missing_field"
	ProblemFieldTooSmall = "field_too_small"
	ProblemNoPhases      = "no_phases"
	ProblemPhaseShape    = "phase_shape"
	ProblemSequenceOrder = "sequence_order"
	ProblemSizeSum       = "size_sum_mismatch"
	ProblemQualification = "qualification_rule"
	ProblemQuotaExceeds  = "quota_exceeds_field"
)

// ValidationError is one blocking configuration problem.
type ValidationError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	// PhaseOrder is the 1-based order of the offending phase, 0 when the
	// problem is tournament-wide.
	PhaseOrder int `json:"phase_order,omitempty"`
}

// ValidationWarning is a non-blocking problem; generation proceeds.
type ValidationWarning struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ValidationResult collects every problem found. It is data, never a thrown
// failure: callers must check Valid before driving the engine.
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
}

func (r *ValidationResult) addError(e ValidationError) {
	r.Errors = append(r.Errors, e)
	r.Valid = false
}

func (r *ValidationResult) addWarning(w ValidationWarning) {
	r.Warnings = append(r.Warnings, w)
}

// Validate checks a tournament configuration for internal consistency.
// Every check is independent so the operator sees all problems at once.
func Validate(cfg *TournamentConfig) *ValidationResult {
	res := &ValidationResult{Valid: true}

	if cfg.ID == "" {
		res.addError(ValidationError{Type: ProblemMissingField, Field: "id", Message: "tournament id is required"})
	}
	if cfg.Name == "" {
		res.addError(ValidationError{Type: ProblemMissingField, Field: "name", Message: "tournament name is required"})
	}
	if cfg.TotalAthletes < minFieldSize {
		res.addError(ValidationError{
			Type:    ProblemFieldTooSmall,
			Field:   "total_athletes",
			Message: fmt.Sprintf("at least %d athletes are required, got %d", minFieldSize, cfg.TotalAthletes),
		})
	}
	if len(cfg.Phases) == 0 {
		res.addError(ValidationError{Type: ProblemNoPhases, Field: "phases", Message: "at least one phase is required"})
		return res
	}

	validatePhaseShapes(cfg.Phases, res)
	validateSequence(cfg.Phases, res)

	for i := range cfg.Phases {
		validatePouleSizes(&cfg.Phases[i], cfg.TotalAthletes, res)
		validateQualification(&cfg.Phases[i], cfg.TotalAthletes, res)
	}

	return res
}

func validatePhaseShapes(phases []PhaseConfig, res *ValidationResult) {
	for i := range phases {
		p := &phases[i]
		if p.Name == "" {
			res.addError(ValidationError{
				Type:       ProblemPhaseShape,
				Field:      "name",
				PhaseOrder: p.Order,
				Message:    fmt.Sprintf("phase %d has no name", i+1),
			})
		}
		if !p.Type.Valid() {
			res.addError(ValidationError{
				Type:       ProblemPhaseShape,
				Field:      "type",
				PhaseOrder: p.Order,
				Message:    fmt.Sprintf("phase %d has unknown type %q", i+1, p.Type),
			})
		}
	}
}

// validateSequence requires the phase orders to form the contiguous run
// 1..N with no gaps or duplicates; the first mismatch is reported.
func validateSequence(phases []PhaseConfig, res *ValidationResult) {
	orders := make([]int, 0, len(phases))
	for i := range phases {
		orders = append(orders, phases[i].Order)
	}
	sort.Ints(orders)

	for i, order := range orders {
		if order != i+1 {
			res.addError(ValidationError{
				Type:    ProblemSequenceOrder,
				Field:   "order",
				Message: fmt.Sprintf("phase sequence order must run 1..%d without gaps, found %d where %d was expected", len(phases), order, i+1),
			})
			return
		}
	}
}

// validatePouleSizes warns when an explicit size list does not sum to the
// field. Generation still proceeds with the caller's list as authoritative.
func validatePouleSizes(p *PhaseConfig, total int, res *ValidationResult) {
	if p.Type != types.PhasePoule || p.PouleSizes == nil || len(p.PouleSizes.Sizes) == 0 {
		return
	}
	sum := 0
	for _, s := range p.PouleSizes.Sizes {
		sum += s
	}
	if sum != total {
		res.addWarning(ValidationWarning{
			Type:       ProblemSizeSum,
			Message:    fmt.Sprintf("phase %d poule sizes sum to %d but the field has %d athletes", p.Order, sum, total),
			Suggestion: "adjust the explicit sizes or switch to the optimal policy",
		})
	}
}

func validateQualification(p *PhaseConfig, total int, res *ValidationResult) {
	rule := p.Qualification
	if rule == nil {
		return
	}

	switch rule.Method {
	case types.QualifyByQuota:
		if rule.Quota <= 0 {
			res.addError(ValidationError{
				Type:       ProblemQualification,
				Field:      "quota",
				PhaseOrder: p.Order,
				Message:    fmt.Sprintf("phase %d declares the quota method without a positive quota", p.Order),
			})
		} else if rule.Quota > total {
			res.addWarning(ValidationWarning{
				Type:       ProblemQuotaExceeds,
				Message:    fmt.Sprintf("phase %d quota %d exceeds the field of %d", p.Order, rule.Quota, total),
				Suggestion: "everyone will qualify; lower the quota if a cut is intended",
			})
		}
	case types.QualifyByPercentage:
		if rule.Percentage <= 0 || rule.Percentage > 100 {
			res.addError(ValidationError{
				Type:       ProblemQualification,
				Field:      "percentage",
				PhaseOrder: p.Order,
				Message:    fmt.Sprintf("phase %d percentage must be in (0,100], got %.2f", p.Order, rule.Percentage),
			})
		}
	default:
		res.addError(ValidationError{
			Type:       ProblemQualification,
			Field:      "method",
			PhaseOrder: p.Order,
			Message:    fmt.Sprintf("phase %d has unknown qualification method %q", p.Order, rule.Method),
		})
	}
}
