package formula_test

import (
	"fmt"
	"testing"

	"github.com/okian/piste/internal/domain/formula"
	"github.com/okian/piste/internal/domain/model"
	"github.com/okian/piste/internal/domain/poule"
	"github.com/okian/piste/internal/domain/qualification"
	"github.com/okian/piste/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// roster builds n athletes ranked 1..n, cycling through the given clubs.
func roster(n int, clubs ...string) []model.Athlete {
	athletes := make([]model.Athlete, 0, n)
	for i := 0; i < n; i++ {
		a := model.Athlete{
			ID:          fmt.Sprintf("a-%d", i+1),
			Name:        fmt.Sprintf("Fencer %d", i+1),
			Nationality: "FRA",
			Ranking:     &model.Ranking{Rank: i + 1},
		}
		if len(clubs) > 0 {
			club := clubs[i%len(clubs)]
			a.Club = &model.Club{ID: club, Name: club}
		}
		athletes = append(athletes, a)
	}
	return athletes
}

func initialized(cfg formula.TournamentConfig) *formula.Engine {
	e := formula.NewEngine()
	res := e.InitializeTournament(cfg)
	So(res.Valid, ShouldBeTrue)
	return e
}

func TestInitializeTournament(t *testing.T) {
	Convey("Given a formula engine", t, func() {
		e := formula.NewEngine()

		Convey("When initializing with a valid config", func() {
			res := e.InitializeTournament(validConfig())

			Convey("Then the state tracks every phase as pending", func() {
				So(res.Valid, ShouldBeTrue)
				st := e.State()
				So(st, ShouldNotBeNil)
				So(st.TournamentID, ShouldEqual, "t-1")
				So(st.Phases, ShouldHaveLength, 2)
				So(st.Phases[0].Status, ShouldEqual, formula.PhasePending)
				So(st.CurrentPhase, ShouldEqual, 0)
			})
		})

		Convey("When initializing with a broken config", func() {
			cfg := validConfig()
			cfg.Phases[1].Order = 5
			res := e.InitializeTournament(cfg)

			Convey("Then the error list comes back and no state is created", func() {
				So(res.Valid, ShouldBeFalse)
				So(res.Errors, ShouldNotBeEmpty)
				So(e.State(), ShouldBeNil)
			})
		})

		Convey("When generating before initialization", func() {
			_, err := e.GeneratePoules(formula.PhaseConfig{Type: types.PhasePoule}, roster(10), nil, formula.Options{})
			So(err, ShouldWrap, formula.ErrNotInitialized)
		})
	})
}

func TestGeneratePoulesScenarioA(t *testing.T) {
	Convey("Given 20 athletes and the optimal policy with default bounds", t, func() {
		cfg := validConfig()
		e := initialized(cfg)

		res, err := e.GeneratePoules(cfg.Phases[0], roster(20), nil, formula.Options{})

		Convey("Then three poules partition the field as 7,7,6", func() {
			So(err, ShouldBeNil)
			So(res.Statistics.PouleCount, ShouldEqual, 3)
			So(res.Statistics.SizeDistribution[7], ShouldEqual, 2)
			So(res.Statistics.SizeDistribution[6], ShouldEqual, 1)
			So(res.Statistics.AverageSize, ShouldAlmostEqual, 20.0/3.0, 0.001)
		})

		Convey("Then the separation success is a real 100 percent", func() {
			So(res.Violations, ShouldBeEmpty)
			So(res.Statistics.SeparationSuccess, ShouldEqual, 100)
			So(res.Statistics.ForcedPlacements, ShouldEqual, 0)
		})

		Convey("Then the phase moves to active", func() {
			So(e.State().Phases[0].Status, ShouldEqual, formula.PhaseActive)
		})
	})
}

func TestGeneratePoulesDefaultBounds(t *testing.T) {
	Convey("Given 20 athletes and default bounds of 4 to 6", t, func() {
		cfg := validConfig()
		e := initialized(cfg)
		opts := formula.Options{
			DefaultPouleSizes: &poule.SizePolicy{Method: poule.SizeOptimal, MinSize: 4, MaxSize: 6},
		}

		Convey("When the phase states a bare optimal policy", func() {
			res, err := e.GeneratePoules(cfg.Phases[0], roster(20), nil, opts)

			Convey("Then the configured bounds shape the partition", func() {
				So(err, ShouldBeNil)
				So(res.Statistics.PouleCount, ShouldEqual, 4)
				So(res.Statistics.SizeDistribution[6], ShouldEqual, 2)
				So(res.Statistics.SizeDistribution[4], ShouldEqual, 2)
			})
		})

		Convey("When the phase states its own bounds", func() {
			cfg.Phases[0].PouleSizes = &poule.SizePolicy{Method: poule.SizeOptimal, MinSize: 5, MaxSize: 7}
			res, err := e.GeneratePoules(cfg.Phases[0], roster(20), nil, opts)

			Convey("Then the phase bounds win over the defaults", func() {
				So(err, ShouldBeNil)
				So(res.Statistics.PouleCount, ShouldEqual, 3)
				So(res.Statistics.SizeDistribution[7], ShouldEqual, 2)
				So(res.Statistics.SizeDistribution[6], ShouldEqual, 1)
			})
		})

		Convey("When the phase uses the fixed method", func() {
			cfg.Phases[0].PouleSizes = &poule.SizePolicy{Method: poule.SizeFixed, FixedSize: 5}
			res, err := e.GeneratePoules(cfg.Phases[0], roster(20), nil, opts)

			Convey("Then the defaults do not interfere", func() {
				So(err, ShouldBeNil)
				So(res.Statistics.PouleCount, ShouldEqual, 4)
				So(res.Statistics.SizeDistribution[5], ShouldEqual, 4)
			})
		})
	})
}

func TestGeneratePoulesScenarioB(t *testing.T) {
	Convey("Given eight athletes from eight distinct clubs and two poules of four", t, func() {
		cfg := validConfig()
		cfg.TotalAthletes = 8
		cfg.Phases[0].PouleSizes = &poule.SizePolicy{Method: poule.SizeVariable, Sizes: []int{4, 4}}
		cfg.Phases[0].Separation = &poule.Rules{Club: true, MaxSameClub: 1}
		e := initialized(cfg)

		athletes := roster(8, "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8")
		res, err := e.GeneratePoules(cfg.Phases[0], athletes, nil, formula.Options{StrictSeparation: true})

		Convey("Then no poule holds two athletes from one club", func() {
			So(err, ShouldBeNil)
			for _, p := range res.Poules {
				for _, club := range []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"} {
					So(p.CountClub(club), ShouldBeLessThanOrEqualTo, 1)
				}
			}
			So(res.Violations, ShouldBeEmpty)
		})
	})
}

func TestGeneratePoulesSeparationFailure(t *testing.T) {
	Convey("Given a field the separation rules cannot split", t, func() {
		cfg := validConfig()
		cfg.TotalAthletes = 10
		cfg.Phases[0].Separation = &poule.Rules{Club: true, MaxSameClub: 1}
		e := initialized(cfg)

		athletes := roster(10, "onlyclub")

		Convey("When generation is strict", func() {
			_, err := e.GeneratePoules(cfg.Phases[0], athletes, nil, formula.Options{StrictSeparation: true})

			Convey("Then the whole generation fails with the rule context", func() {
				So(err, ShouldWrap, poule.ErrSeparationInfeasible)
				So(err.Error(), ShouldContainSubstring, "club")
			})
		})

		Convey("When generation is relaxed", func() {
			res, err := e.GeneratePoules(cfg.Phases[0], athletes, nil, formula.Options{})

			Convey("Then forced placements are counted and success drops below 100", func() {
				So(err, ShouldBeNil)
				So(res.Violations, ShouldNotBeEmpty)
				So(res.Statistics.ForcedPlacements, ShouldEqual, len(res.Violations))
				So(res.Statistics.SeparationSuccess, ShouldBeLessThan, 100)
			})
		})
	})
}

func TestGeneratePoulesOptions(t *testing.T) {
	Convey("Given engine options", t, func() {
		Convey("When balancing is requested for 26 athletes", func() {
			cfg := validConfig()
			cfg.TotalAthletes = 26
			e := initialized(cfg)

			res, err := e.GeneratePoules(cfg.Phases[0], roster(26), nil, formula.Options{OptimizeForBalance: true})

			Convey("Then sizes differ by at most one", func() {
				So(err, ShouldBeNil)
				So(res.Statistics.PouleCount, ShouldEqual, 4)
				So(res.Statistics.SizeDistribution[7], ShouldEqual, 2)
				So(res.Statistics.SizeDistribution[6], ShouldEqual, 2)
			})
		})

		Convey("When incomplete poules are disallowed under a fixed policy", func() {
			cfg := validConfig()
			cfg.Phases[0].PouleSizes = &poule.SizePolicy{Method: poule.SizeFixed, FixedSize: 6}
			e := initialized(cfg)

			_, err := e.GeneratePoules(cfg.Phases[0], roster(20), nil, formula.Options{})

			Convey("Then the truncated remainder is rejected", func() {
				So(err, ShouldWrap, formula.ErrIncompletePoule)
			})

			Convey("And allowing incomplete poules lets it through", func() {
				res, err := e.GeneratePoules(cfg.Phases[0], roster(20), nil, formula.Options{AllowIncompletePoules: true})
				So(err, ShouldBeNil)
				So(res.Statistics.SizeDistribution[2], ShouldEqual, 1)
			})
		})

		Convey("When the phase is not a poule phase", func() {
			cfg := validConfig()
			e := initialized(cfg)

			_, err := e.GeneratePoules(cfg.Phases[1], roster(20), nil, formula.Options{})
			So(err, ShouldWrap, formula.ErrInvalidPhase)
		})
	})
}

func TestSeedingOrder(t *testing.T) {
	Convey("Given a second-round generation with previous results", t, func() {
		cfg := validConfig()
		e := initialized(cfg)
		athletes := roster(6)

		// Previous phase reversed the initial ranking.
		previous := make([]model.AthleteResult, 0, 6)
		for i := 0; i < 6; i++ {
			previous = append(previous, model.AthleteResult{
				AthleteID: fmt.Sprintf("a-%d", i+1),
				Rank:      6 - i,
			})
		}
		phase := cfg.Phases[0]
		phase.PouleSizes = &poule.SizePolicy{Method: poule.SizeVariable, Sizes: []int{6}}
		phase.Separation = nil

		res, err := e.GeneratePoules(phase, athletes, previous, formula.Options{})

		Convey("Then seeding follows the previous results, not the initial ranking", func() {
			So(err, ShouldBeNil)
			So(res.Poules[0].Athletes[0].AthleteID, ShouldEqual, "a-6")
			So(res.Poules[0].Athletes[5].AthleteID, ShouldEqual, "a-1")
		})
	})

	Convey("Given unranked athletes in the roster", t, func() {
		cfg := validConfig()
		cfg.TotalAthletes = 5
		e := initialized(cfg)

		athletes := roster(5)
		athletes[0].Ranking = nil // the former top seed loses their ranking
		phase := cfg.Phases[0]
		phase.PouleSizes = &poule.SizePolicy{Method: poule.SizeVariable, Sizes: []int{5}}
		phase.Separation = nil

		res, err := e.GeneratePoules(phase, athletes, nil, formula.Options{})

		Convey("Then the unranked athlete seeds last", func() {
			So(err, ShouldBeNil)
			last := res.Poules[0].Athletes[len(res.Poules[0].Athletes)-1]
			So(last.AthleteID, ShouldEqual, "a-1")
		})
	})
}

func TestCalculateQualificationScenarioC(t *testing.T) {
	Convey("Given ten results and a quota of four", t, func() {
		cfg := validConfig()
		cfg.Phases[0].Qualification = &qualification.Rule{Method: types.QualifyByQuota, Quota: 4}
		e := initialized(cfg)

		results := make([]model.AthleteResult, 0, 10)
		for i := 0; i < 10; i++ {
			results = append(results, model.AthleteResult{
				AthleteID:     fmt.Sprintf("a-%d", i+1),
				Victories:     9 - i,
				Indicator:     20 - i,
				TouchesScored: 25,
			})
		}

		res, err := e.CalculateQualification(cfg.Phases[0], results)

		Convey("Then exactly four qualify by the cascade and six are out", func() {
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(res.Qualified, ShouldResemble, []string{"a-1", "a-2", "a-3", "a-4"})
			So(res.Eliminated, ShouldHaveLength, 6)
		})

		Convey("Then the state advances to the next phase", func() {
			st := e.State()
			So(st.Phases[0].Status, ShouldEqual, formula.PhaseCompleted)
			So(st.Phases[0].Qualified, ShouldHaveLength, 4)
			So(st.CurrentPhase, ShouldEqual, 1)
			So(st.OverallRanking[0], ShouldEqual, "a-1")
		})
	})

	Convey("Given a poule phase without a qualification rule", t, func() {
		cfg := validConfig()
		cfg.Phases[0].Qualification = nil
		e := initialized(cfg)

		res, err := e.CalculateQualification(cfg.Phases[0], []model.AthleteResult{{AthleteID: "a-1"}})

		Convey("Then the transition fails as data, not as a thrown error", func() {
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeFalse)
			So(res.Errors, ShouldNotBeEmpty)
		})
	})

	Convey("Given a quota larger than the results", t, func() {
		cfg := validConfig()
		cfg.Phases[0].Qualification = &qualification.Rule{Method: types.QualifyByQuota, Quota: 30}
		e := initialized(cfg)

		res, err := e.CalculateQualification(cfg.Phases[0], []model.AthleteResult{
			{AthleteID: "a-1", Victories: 2},
			{AthleteID: "a-2", Victories: 1},
		})

		Convey("Then everyone qualifies with a warning", func() {
			So(err, ShouldBeNil)
			So(res.Success, ShouldBeTrue)
			So(res.Qualified, ShouldHaveLength, 2)
			So(res.Warnings, ShouldNotBeEmpty)
		})
	})
}

func TestRankingCascadeThroughEngine(t *testing.T) {
	Convey("Given three fencers whose victories and indicators disagree", t, func() {
		cfg := validConfig()
		cfg.Phases[0].Qualification = &qualification.Rule{Method: types.QualifyByQuota, Quota: 2}
		e := initialized(cfg)

		res, err := e.CalculateQualification(cfg.Phases[0], []model.AthleteResult{
			{AthleteID: "five-ten", Victories: 5, Indicator: 10},
			{AthleteID: "five-three", Victories: 5, Indicator: 3},
			{AthleteID: "three-ninetynine", Victories: 3, Indicator: 99},
		})

		Convey("Then victories dominate the indicator at the cut", func() {
			So(err, ShouldBeNil)
			So(res.Qualified, ShouldResemble, []string{"five-ten", "five-three"})
			So(res.Eliminated, ShouldResemble, []string{"three-ninetynine"})
		})
	})
}
