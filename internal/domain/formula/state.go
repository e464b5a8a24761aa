package formula

import "github.com/okian/piste/internal/domain/model"

// PhaseStatus tracks where a phase is in its lifecycle.
type PhaseStatus string

// PhaseStatus values.
const (
	PhasePending   PhaseStatus = "pending"
	PhaseActive    PhaseStatus = "active"
	PhaseCompleted PhaseStatus = "completed"
)

// PhaseState is the transient per-phase bookkeeping held between engine
// calls.
type PhaseState struct {
	PhaseID    string                `json:"phase_id"`
	Order      int                   `json:"order"`
	Status     PhaseStatus           `json:"status"`
	Results    []model.AthleteResult `json:"results,omitempty"`
	Qualified  []string              `json:"qualified,omitempty"`
	Eliminated []string              `json:"eliminated,omitempty"`
}

// State is the in-memory tournament progress. It is created by
// InitializeTournament, mutated only by the engine's own phase-transition
// calls, and discarded with the engine; persistence is the caller's job.
type State struct {
	TournamentID string `json:"tournament_id"`
	// CurrentPhase indexes Phases; it advances when a phase completes.
	CurrentPhase int          `json:"current_phase"`
	Phases       []PhaseState `json:"phases"`
	// OverallRanking is the running ranking after the latest completed
	// phase, strongest first.
	OverallRanking []string `json:"overall_ranking,omitempty"`
}

func newState(cfg *TournamentConfig) *State {
	s := &State{
		TournamentID: cfg.ID,
		Phases:       make([]PhaseState, 0, len(cfg.Phases)),
	}
	for i := range cfg.Phases {
		s.Phases = append(s.Phases, PhaseState{
			PhaseID: cfg.Phases[i].ID,
			Order:   cfg.Phases[i].Order,
			Status:  PhasePending,
		})
	}
	return s
}

func (s *State) snapshot() *State {
	out := *s
	out.Phases = make([]PhaseState, len(s.Phases))
	for i, p := range s.Phases {
		out.Phases[i] = p
		out.Phases[i].Results = append([]model.AthleteResult(nil), p.Results...)
		out.Phases[i].Qualified = append([]string(nil), p.Qualified...)
		out.Phases[i].Eliminated = append([]string(nil), p.Eliminated...)
	}
	out.OverallRanking = append([]string(nil), s.OverallRanking...)
	return &out
}

// phaseState finds the bookkeeping entry for a phase order.
func (s *State) phaseState(order int) *PhaseState {
	for i := range s.Phases {
		if s.Phases[i].Order == order {
			return &s.Phases[i]
		}
	}
	return nil
}
