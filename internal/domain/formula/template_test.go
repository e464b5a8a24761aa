package formula_test

import (
	"testing"

	"github.com/okian/piste/internal/domain/formula"
	"github.com/okian/piste/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPresetExchange(t *testing.T) {
	Convey("Given a built-in preset", t, func() {
		tpl, err := formula.Preset(formula.PresetFIEWorldCup)
		So(err, ShouldBeNil)

		Convey("When exporting and importing it", func() {
			data, err := formula.ExportPreset(tpl)
			So(err, ShouldBeNil)

			back, err := formula.ImportPreset(data)

			Convey("Then the round trip preserves the phase plan", func() {
				So(err, ShouldBeNil)
				So(back.Name, ShouldEqual, tpl.Name)
				So(back.Phases, ShouldHaveLength, len(tpl.Phases))
				So(back.Phases[0].Separation.Country, ShouldBeTrue)
				So(back.Phases[0].Qualification.Percentage, ShouldEqual, 70)
			})
		})
	})

	Convey("Given invalid preset payloads", t, func() {
		Convey("When the payload is not JSON", func() {
			_, err := formula.ImportPreset([]byte("not json at all"))
			So(err, ShouldWrap, formula.ErrInvalidPreset)
		})

		Convey("When the template has no name", func() {
			_, err := formula.ImportPreset([]byte(`{"phases":[{"name":"Poules","type":"POULE","order":1}]}`))
			So(err, ShouldWrap, formula.ErrInvalidPreset)
		})

		Convey("When the phase sequence has a gap", func() {
			_, err := formula.ImportPreset([]byte(`{
				"name": "Broken",
				"phases": [
					{"name": "Poules", "type": "POULE", "order": 1},
					{"name": "Table", "type": "DIRECT_ELIMINATION", "order": 3}
				]
			}`))

			Convey("Then the import is rejected with the sequence problem", func() {
				So(err, ShouldWrap, formula.ErrInvalidPreset)
				So(err.Error(), ShouldContainSubstring, "sequence")
			})
		})
	})
}

func TestTemplateConfig(t *testing.T) {
	Convey("Given a preset materialized into a config", t, func() {
		tpl, err := formula.Preset(formula.PresetClassic)
		So(err, ShouldBeNil)
		tpl = formula.Adapt(tpl, formula.AdaptOptions{TotalAthletes: 20, Weapon: types.WeaponFoil})

		cfg := tpl.Config("t-42", "Sunday Open", 20)

		Convey("Then the config carries the template's plan", func() {
			So(cfg.ID, ShouldEqual, "t-42")
			So(cfg.Weapon, ShouldEqual, types.WeaponFoil)
			So(cfg.TotalAthletes, ShouldEqual, 20)
			So(cfg.Phases, ShouldHaveLength, 2)
		})

		Convey("Then the config validates", func() {
			So(formula.Validate(&cfg).Valid, ShouldBeTrue)
		})

		Convey("Then mutating the config does not touch the template", func() {
			cfg.Phases[0].Qualification.Percentage = 5
			So(tpl.Phases[0].Qualification.Percentage, ShouldEqual, 80)
		})
	})
}
