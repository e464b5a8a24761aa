package formula_test

import (
	"testing"

	"github.com/okian/piste/internal/domain/formula"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPresetTable(t *testing.T) {
	Convey("Given the built-in preset table", t, func() {
		Convey("Then all seven presets exist and validate", func() {
			ids := formula.PresetIDs()
			So(ids, ShouldHaveLength, 7)

			for _, id := range ids {
				tpl, err := formula.Preset(id)
				So(err, ShouldBeNil)
				So(tpl.ID, ShouldEqual, id)

				res := formula.ValidateTemplate(tpl)
				So(res.Valid, ShouldBeTrue)
			}
		})

		Convey("Then an unknown id is rejected", func() {
			_, err := formula.Preset("secret-society")
			So(err, ShouldWrap, formula.ErrUnknownPreset)
		})

		Convey("Then accessors hand out independent clones", func() {
			first, err := formula.Preset(formula.PresetClassic)
			So(err, ShouldBeNil)

			first.Name = "Hacked"
			first.Phases[0].Qualification.Quota = 999

			second, err := formula.Preset(formula.PresetClassic)
			So(err, ShouldBeNil)
			So(second.Name, ShouldEqual, "Classic")
			So(second.Phases[0].Qualification.Quota, ShouldNotEqual, 999)
		})

		Convey("Then every preset's phases run contiguously from 1", func() {
			for _, id := range formula.PresetIDs() {
				tpl, _ := formula.Preset(id)
				for i, p := range tpl.Phases {
					So(p.Order, ShouldEqual, i+1)
				}
			}
		})
	})
}
