// Command piste runs a demo tournament end to end: it generates a synthetic
// roster, picks a suitable formula preset, drives every poule round with
// simulated results, and reports the final ranking.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/okian/piste/internal/adapters/repository"
	"github.com/okian/piste/internal/app"
	"github.com/okian/piste/internal/config"
	"github.com/okian/piste/internal/domain/formula"
	"github.com/okian/piste/internal/domain/model"
	"github.com/okian/piste/internal/domain/poule"
	"github.com/okian/piste/internal/domain/types"
	"github.com/okian/piste/internal/rostergen"
	"github.com/okian/piste/pkg/logger"
)

const finalRankingDisplay = 8

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	gen := rostergen.New(
		rostergen.WithSize(cfg.DemoAthletes),
		rostergen.WithClubs(cfg.DemoClubs),
		rostergen.WithSeed(cfg.DemoSeed),
		rostergen.WithWeapon(types.WeaponEpee),
	)
	roster := gen.Roster()

	suggested := formula.SuggestPresets(len(roster), false)
	presetID := formula.PresetClassic
	if len(suggested) > 0 {
		presetID = suggested[0]
	}
	log.Info(ctx, "formula chosen",
		logger.String("preset", presetID),
		logger.Int("athletes", len(roster)))

	svc := app.New(
		app.WithLogger(log),
		app.WithStore(repository.NewMemStore(repository.WithCapacityHint(cfg.StoreCapacityHint))),
		app.WithEngineOptions(formula.Options{
			StrictSeparation: cfg.StrictSeparation,
			DefaultPouleSizes: &poule.SizePolicy{
				Method:  poule.SizeOptimal,
				MinSize: cfg.MinPouleSize,
				MaxSize: cfg.MaxPouleSize,
			},
		}),
	)

	tournamentID := uuid.New().String()
	res, err := svc.CreateFromPreset(ctx, presetID, tournamentID, "Demo Tournament", roster)
	if err != nil {
		log.Error(ctx, "tournament creation failed", logger.Error(err))
		return
	}
	if !res.Valid {
		for _, e := range res.Errors {
			log.Error(ctx, "formula problem", logger.String("type", e.Type), logger.String("message", e.Message))
		}
		return
	}

	if err := run(ctx, svc, gen, tournamentID, roster); err != nil {
		log.Error(ctx, "tournament run failed", logger.Error(err))
		return
	}

	report(ctx, svc, tournamentID, roster)
	svc.CloseTournament(ctx, tournamentID)
}

// run drives every poule phase in order, feeding each round's qualifiers
// into the next. Elimination phases end the demo; seeding them is the
// engine's last word here.
func run(ctx context.Context, svc *app.Service, gen *rostergen.Generator, tournamentID string, roster []model.Athlete) error {
	log := logger.Named("demo")

	phases, err := svc.Phases(tournamentID)
	if err != nil {
		return err
	}

	field := roster
	var previous []model.AthleteResult
	for _, phase := range phases {
		if phase.Type != types.PhasePoule {
			log.Info(ctx, "elimination table seeded",
				logger.String("phase", phase.Name),
				logger.Int("athletes", len(field)))
			break
		}

		gres, err := svc.GeneratePoules(ctx, tournamentID, phase.Order, field, previous)
		if err != nil {
			return err
		}

		results := gen.SimulateResults(gres.Poules, phase.ID)
		tres, err := svc.CompletePhase(ctx, tournamentID, phase.Order, results)
		if err != nil {
			return err
		}
		if !tres.Success {
			for _, msg := range tres.Errors {
				log.Error(ctx, "qualification problem", logger.String("message", msg))
			}
			break
		}

		field = filterRoster(field, tres.Qualified)
		previous = results
	}
	return nil
}

// report logs the head of the overall ranking by athlete name.
func report(ctx context.Context, svc *app.Service, tournamentID string, roster []model.Athlete) {
	log := logger.Named("demo")

	state, err := svc.State(ctx, tournamentID)
	if err != nil {
		log.Error(ctx, "state lookup failed", logger.Error(err))
		return
	}

	names := make(map[string]string, len(roster))
	for _, a := range roster {
		names[a.ID] = a.Name
	}

	top := state.OverallRanking
	if len(top) > finalRankingDisplay {
		top = top[:finalRankingDisplay]
	}
	for i, id := range top {
		log.Info(ctx, "final ranking",
			logger.Int("rank", i+1),
			logger.String("athlete", names[id]))
	}
}

func filterRoster(roster []model.Athlete, qualified []string) []model.Athlete {
	keep := make(map[string]bool, len(qualified))
	for _, id := range qualified {
		keep[id] = true
	}

	out := make([]model.Athlete, 0, len(qualified))
	for _, a := range roster {
		if keep[a.ID] {
			out = append(out, a)
		}
	}
	return out
}
