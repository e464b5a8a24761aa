package poule_test

import (
	"testing"

	"github.com/okian/piste/internal/domain/model"
	"github.com/okian/piste/internal/domain/poule"
	. "github.com/smartystreets/goconvey/convey"
)

func athlete(id, club, country string) model.Athlete {
	a := model.Athlete{ID: id, Name: id, Nationality: country}
	if club != "" {
		a.Club = &model.Club{ID: club, Name: club}
	}
	return a
}

func pouleWith(size int, members ...model.Athlete) *model.Poule {
	p := &model.Poule{ID: "p-1", Number: 1, Size: size}
	for i, m := range members {
		p.Athletes = append(p.Athletes, model.Assignment{
			AthleteID: m.ID,
			Position:  i + 1,
			Club:      m.ClubName(),
			Country:   m.Nationality,
		})
	}
	return p
}

func TestCanPlace(t *testing.T) {
	Convey("Given a poule with one athlete from CE Melun / FRA", t, func() {
		p := pouleWith(6, athlete("a-1", "CE Melun", "FRA"))

		Convey("When club separation is on with the default limit", func() {
			rules := poule.Rules{Club: true}

			Convey("Then a clubmate is rejected", func() {
				So(poule.CanPlace(athlete("a-2", "CE Melun", "FRA"), p, rules), ShouldBeFalse)
			})

			Convey("Then an athlete from another club is accepted", func() {
				So(poule.CanPlace(athlete("a-3", "Lyon SE", "FRA"), p, rules), ShouldBeTrue)
			})

			Convey("Then an unaffiliated athlete is accepted", func() {
				So(poule.CanPlace(athlete("a-4", "", "FRA"), p, rules), ShouldBeTrue)
			})
		})

		Convey("When country separation is on with the default limit", func() {
			rules := poule.Rules{Country: true}

			Convey("Then a compatriot is rejected even from another club", func() {
				So(poule.CanPlace(athlete("a-5", "Lyon SE", "FRA"), p, rules), ShouldBeFalse)
			})

			Convey("Then a foreign athlete is accepted", func() {
				So(poule.CanPlace(athlete("a-6", "Oxford FC", "GBR"), p, rules), ShouldBeTrue)
			})
		})

		Convey("When both flags are off", func() {
			Convey("Then the limits are unbounded", func() {
				So(poule.CanPlace(athlete("a-7", "CE Melun", "FRA"), p, poule.Rules{}), ShouldBeTrue)
			})
		})
	})

	Convey("Given a raised club limit", t, func() {
		p := pouleWith(6,
			athlete("a-1", "CE Melun", "FRA"),
			athlete("a-2", "CE Melun", "FRA"),
		)
		rules := poule.Rules{Club: true, MaxSameClub: 2}

		Convey("Then the third clubmate is rejected at the limit", func() {
			So(poule.CanPlace(athlete("a-3", "CE Melun", "FRA"), p, rules), ShouldBeFalse)
		})

		Convey("Then other clubs are unaffected", func() {
			So(poule.CanPlace(athlete("a-4", "Lyon SE", "FRA"), p, rules), ShouldBeTrue)
		})
	})

	Convey("Given a full poule", t, func() {
		p := pouleWith(2,
			athlete("a-1", "CE Melun", "FRA"),
			athlete("a-2", "Lyon SE", "ITA"),
		)

		Convey("Then nobody can be placed regardless of rules", func() {
			So(poule.CanPlace(athlete("a-3", "Oxford FC", "GBR"), p, poule.Rules{}), ShouldBeFalse)
		})
	})
}
