// Package app exposes the tournament formula engine as a service: it owns
// the per-tournament engines, persists their state through the repository,
// and instruments every operation with logging and metrics.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/piste/internal/adapters/repository"
	"github.com/okian/piste/internal/domain/formula"
	"github.com/okian/piste/internal/domain/model"
	"github.com/okian/piste/internal/domain/poule"
	"github.com/okian/piste/pkg/logger"
	"github.com/okian/piste/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets the logger used by the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStore sets the tournament state store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngineOptions sets the default per-call engine options. Callers can
// still override them per generation.
func WithEngineOptions(opts formula.Options) Option {
	return func(s *Service) {
		s.defaults = opts
	}
}

type tournament struct {
	engine *formula.Engine
	config formula.TournamentConfig
}

// Service drives tournaments through their formulas. It is safe for
// concurrent use; each tournament is still driven by one logical flow at a
// time, matching how a tournament actually runs.
type Service struct {
	mu          sync.RWMutex
	tournaments map[string]*tournament

	log      logger.Logger
	store    repository.Store
	defaults formula.Options
}

// New creates a service with an in-memory store and the global logger.
func New(opts ...Option) *Service {
	s := &Service{
		tournaments: make(map[string]*tournament),
		log:         logger.Named("app"),
		store:       repository.NewMemStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTournament validates the config and, when valid, registers a new
// engine for it and persists the initial state. The validation result is
// returned either way.
func (s *Service) CreateTournament(ctx context.Context, cfg formula.TournamentConfig) (*formula.ValidationResult, error) {
	eng := formula.NewEngine()
	res := eng.InitializeTournament(cfg)
	if !res.Valid {
		for _, e := range res.Errors {
			metrics.RecordValidationError(e.Type)
		}
		s.log.Warn(ctx, "tournament rejected",
			logger.String("tournament", cfg.ID),
			logger.Int("errors", len(res.Errors)))
		return res, nil
	}

	state := eng.State()
	if err := s.store.Put(ctx, state); err != nil {
		return nil, fmt.Errorf("persisting tournament %q: %w", cfg.ID, err)
	}

	// The engine assigns ids to phases that arrived without one; mirror them
	// so callers see the same ids the state tracks.
	idByOrder := make(map[int]string, len(state.Phases))
	for _, ps := range state.Phases {
		idByOrder[ps.Order] = ps.PhaseID
	}
	cfg.Phases = append([]formula.PhaseConfig(nil), cfg.Phases...)
	for i := range cfg.Phases {
		if cfg.Phases[i].ID == "" {
			cfg.Phases[i].ID = idByOrder[cfg.Phases[i].Order]
		}
	}

	s.mu.Lock()
	s.tournaments[cfg.ID] = &tournament{engine: eng, config: cfg}
	count := len(s.tournaments)
	s.mu.Unlock()

	metrics.RecordTournamentInitialized()
	metrics.UpdateActiveTournaments(count)
	s.log.Info(ctx, "tournament created",
		logger.String("tournament", cfg.ID),
		logger.String("name", cfg.Name),
		logger.Int("athletes", cfg.TotalAthletes),
		logger.Int("phases", len(cfg.Phases)))
	return res, nil
}

// CreateFromPreset adapts a named preset to the roster and creates the
// tournament from it.
func (s *Service) CreateFromPreset(
	ctx context.Context,
	presetID, tournamentID, name string,
	athletes []model.Athlete,
) (*formula.ValidationResult, error) {
	if athletes == nil {
		return nil, ErrNilRoster
	}

	tpl, err := formula.Preset(presetID)
	if err != nil {
		return nil, err
	}

	adaptOpts := formula.AdaptOptions{TotalAthletes: len(athletes)}
	if len(athletes) > 0 {
		adaptOpts.Weapon = athletes[0].Weapon
	}
	adapted := formula.Adapt(tpl, adaptOpts)
	cfg := adapted.Config(tournamentID, name, len(athletes))

	return s.CreateTournament(ctx, cfg)
}

// ImportPreset parses and validates an exchanged formula preset.
func (s *Service) ImportPreset(ctx context.Context, data []byte) (*formula.Template, error) {
	tpl, err := formula.ImportPreset(data)
	if err != nil {
		s.log.Warn(ctx, "preset rejected", logger.Error(err))
		return nil, err
	}

	metrics.RecordPresetImport()
	s.log.Info(ctx, "preset imported",
		logger.String("preset", tpl.Name),
		logger.Int("phases", len(tpl.Phases)))
	return tpl, nil
}

// ExportPreset serializes a template for exchange with other systems.
func (s *Service) ExportPreset(ctx context.Context, tpl *formula.Template) ([]byte, error) {
	data, err := formula.ExportPreset(tpl)
	if err != nil {
		return nil, err
	}

	metrics.RecordPresetExport()
	s.log.Info(ctx, "preset exported", logger.String("preset", tpl.Name))
	return data, nil
}

// GeneratePoules builds the poules of one phase, seeding from the previous
// phase's results when given, and persists the updated state.
func (s *Service) GeneratePoules(
	ctx context.Context,
	tournamentID string,
	phaseOrder int,
	athletes []model.Athlete,
	previous []model.AthleteResult,
) (*formula.GenerationResult, error) {
	t, err := s.lookup(tournamentID)
	if err != nil {
		return nil, err
	}
	phase, err := t.phase(phaseOrder)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := t.engine.GeneratePoules(phase, athletes, previous, s.defaults)
	metrics.RecordGenerationDuration(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		if errors.Is(err, poule.ErrSeparationInfeasible) {
			metrics.RecordSeparationFailure()
		}
		s.log.Error(ctx, "poule generation failed",
			logger.String("tournament", tournamentID),
			logger.Int("phase", phaseOrder),
			logger.Error(err))
		return nil, err
	}

	metrics.RecordPoulesGenerated(len(res.Poules))
	metrics.RecordAthletesPlaced(len(athletes))
	metrics.RecordForcedPlacements(len(res.Violations))
	metrics.UpdateSeparationSuccess(res.Statistics.SeparationSuccess)
	for i := range res.Poules {
		metrics.RecordPouleSize(len(res.Poules[i].Athletes))
	}

	if err := s.store.Put(ctx, t.engine.State()); err != nil {
		return nil, fmt.Errorf("persisting tournament %q: %w", tournamentID, err)
	}

	s.log.Info(ctx, "poules generated",
		logger.String("tournament", tournamentID),
		logger.Int("phase", phaseOrder),
		logger.Int("poules", len(res.Poules)),
		logger.Int("forced_placements", len(res.Violations)),
		logger.Float64("separation_success", res.Statistics.SeparationSuccess))
	return res, nil
}

// CompletePhase ranks the phase results, applies the qualification cut, and
// persists the advanced state.
func (s *Service) CompletePhase(
	ctx context.Context,
	tournamentID string,
	phaseOrder int,
	results []model.AthleteResult,
) (*formula.TransitionResult, error) {
	t, err := s.lookup(tournamentID)
	if err != nil {
		return nil, err
	}
	phase, err := t.phase(phaseOrder)
	if err != nil {
		return nil, err
	}

	res, err := t.engine.CalculateQualification(phase, results)
	if err != nil {
		return nil, err
	}

	metrics.RecordQualificationComputed()
	if res.Success {
		metrics.RecordQualificationOutcome(len(res.Qualified), len(res.Eliminated))
		if err := s.store.Put(ctx, t.engine.State()); err != nil {
			return nil, fmt.Errorf("persisting tournament %q: %w", tournamentID, err)
		}
	}
	for _, w := range res.Warnings {
		s.log.Warn(ctx, "qualification warning",
			logger.String("tournament", tournamentID),
			logger.Int("phase", phaseOrder),
			logger.String("warning", w))
	}

	s.log.Info(ctx, "phase completed",
		logger.String("tournament", tournamentID),
		logger.Int("phase", phaseOrder),
		logger.Bool("success", res.Success),
		logger.Int("qualified", len(res.Qualified)),
		logger.Int("eliminated", len(res.Eliminated)))
	return res, nil
}

// Phases returns the phase plan of a tournament in execution order.
func (s *Service) Phases(tournamentID string) ([]formula.PhaseConfig, error) {
	t, err := s.lookup(tournamentID)
	if err != nil {
		return nil, err
	}

	phases := append([]formula.PhaseConfig(nil), t.config.Phases...)
	sort.Slice(phases, func(i, j int) bool { return phases[i].Order < phases[j].Order })
	return phases, nil
}

// State returns the stored state snapshot for a tournament.
func (s *Service) State(ctx context.Context, tournamentID string) (*formula.State, error) {
	state, err := s.store.Get(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTournament, tournamentID)
	}
	return state, nil
}

// CloseTournament drops a finished tournament's engine and state.
func (s *Service) CloseTournament(ctx context.Context, tournamentID string) {
	s.mu.Lock()
	delete(s.tournaments, tournamentID)
	count := len(s.tournaments)
	s.mu.Unlock()

	s.store.Delete(ctx, tournamentID)
	metrics.UpdateActiveTournaments(count)
	s.log.Info(ctx, "tournament closed", logger.String("tournament", tournamentID))
}

func (s *Service) lookup(tournamentID string) (*tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tournaments[tournamentID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTournament, tournamentID)
	}
	return t, nil
}

func (t *tournament) phase(order int) (formula.PhaseConfig, error) {
	for _, p := range t.config.Phases {
		if p.Order == order {
			return p, nil
		}
	}
	return formula.PhaseConfig{}, fmt.Errorf("%w: order %d", ErrUnknownPhase, order)
}
