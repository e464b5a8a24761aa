package poule_test

import (
	"testing"

	"github.com/okian/piste/internal/domain/poule"
	. "github.com/smartystreets/goconvey/convey"
)

func sum(sizes []int) int {
	total := 0
	for _, s := range sizes {
		total += s
	}
	return total
}

func TestComputeSizesOptimal(t *testing.T) {
	Convey("Given the optimal sizing policy with default bounds", t, func() {
		policy := poule.SizePolicy{Method: poule.SizeOptimal}

		Convey("When sizing a 20 athlete field", func() {
			sizes, err := poule.ComputeSizes(policy, 20)

			Convey("Then it should produce three poules of 7,7,6", func() {
				So(err, ShouldBeNil)
				So(sizes, ShouldResemble, []int{7, 7, 6})
			})
		})

		Convey("When sizing an empty field", func() {
			sizes, err := poule.ComputeSizes(policy, 0)

			Convey("Then it should produce no poules", func() {
				So(err, ShouldBeNil)
				So(sizes, ShouldBeEmpty)
			})
		})

		Convey("When the field is smaller than the minimum size", func() {
			sizes, err := poule.ComputeSizes(policy, 3)

			Convey("Then a single undersized poule is returned", func() {
				So(err, ShouldBeNil)
				So(sizes, ShouldResemble, []int{3})
			})
		})

		Convey("When the remainder is undersized", func() {
			sizes, err := poule.ComputeSizes(policy, 23)

			Convey("Then the previous allocation is split with the remainder", func() {
				So(err, ShouldBeNil)
				So(sizes, ShouldResemble, []int{7, 7, 5, 4})
				So(sum(sizes), ShouldEqual, 23)
			})
		})

		Convey("Then sizes conserve the athlete count for every field size", func() {
			for n := 0; n <= 300; n++ {
				sizes, err := poule.ComputeSizes(policy, n)
				So(err, ShouldBeNil)
				So(sum(sizes), ShouldEqual, n)
			}
		})

		Convey("Then at most one redistributed pair falls outside the bounds", func() {
			for n := poule.DefaultMinSize; n <= 300; n++ {
				sizes, _ := poule.ComputeSizes(policy, n)
				outside := 0
				for _, s := range sizes {
					if s < poule.DefaultMinSize || s > poule.DefaultMaxSize {
						outside++
					}
				}
				So(outside, ShouldBeLessThanOrEqualTo, 1)
			}
		})
	})

	Convey("Given custom optimal bounds", t, func() {
		policy := poule.SizePolicy{Method: poule.SizeOptimal, MinSize: 4, MaxSize: 6}

		Convey("When sizing 14 athletes", func() {
			sizes, err := poule.ComputeSizes(policy, 14)

			Convey("Then the bounds are honored", func() {
				So(err, ShouldBeNil)
				So(sizes, ShouldResemble, []int{6, 4, 4})
				So(sum(sizes), ShouldEqual, 14)
			})
		})

		Convey("When the bounds are inverted", func() {
			_, err := poule.ComputeSizes(poule.SizePolicy{Method: poule.SizeOptimal, MinSize: 8, MaxSize: 6}, 20)

			Convey("Then the policy is rejected", func() {
				So(err, ShouldWrap, poule.ErrInvalidPolicy)
			})
		})
	})
}

func TestComputeSizesFixed(t *testing.T) {
	Convey("Given the fixed sizing policy", t, func() {
		Convey("When the field divides evenly", func() {
			sizes, err := poule.ComputeSizes(poule.SizePolicy{Method: poule.SizeFixed, FixedSize: 6}, 18)

			Convey("Then all poules have the fixed size", func() {
				So(err, ShouldBeNil)
				So(sizes, ShouldResemble, []int{6, 6, 6})
			})
		})

		Convey("When there is a remainder", func() {
			sizes, err := poule.ComputeSizes(poule.SizePolicy{Method: poule.SizeFixed, FixedSize: 6}, 20)

			Convey("Then the last poule is truncated to the remainder", func() {
				So(err, ShouldBeNil)
				So(sizes, ShouldResemble, []int{6, 6, 6, 2})
				So(sum(sizes), ShouldEqual, 20)
			})
		})

		Convey("When the fixed size is missing", func() {
			_, err := poule.ComputeSizes(poule.SizePolicy{Method: poule.SizeFixed}, 20)

			Convey("Then the policy is rejected", func() {
				So(err, ShouldWrap, poule.ErrInvalidPolicy)
			})
		})
	})
}

func TestComputeSizesVariable(t *testing.T) {
	Convey("Given the variable sizing policy", t, func() {
		policy := poule.SizePolicy{Method: poule.SizeVariable, Sizes: []int{7, 6, 6}}

		Convey("When computing sizes", func() {
			sizes, err := poule.ComputeSizes(policy, 19)

			Convey("Then the caller-supplied list is returned as a copy", func() {
				So(err, ShouldBeNil)
				So(sizes, ShouldResemble, []int{7, 6, 6})
				sizes[0] = 99
				So(policy.Sizes[0], ShouldEqual, 7)
			})
		})

		Convey("When the sum does not match the field", func() {
			sizes, err := poule.ComputeSizes(policy, 25)

			Convey("Then the caller's list is still authoritative", func() {
				// The mismatch is a validation warning, not this package's error.
				So(err, ShouldBeNil)
				So(sum(sizes), ShouldEqual, 19)
			})
		})
	})
}

func TestComputeSizesRejects(t *testing.T) {
	Convey("Given invalid inputs", t, func() {
		Convey("When the method is unknown", func() {
			_, err := poule.ComputeSizes(poule.SizePolicy{Method: "guess"}, 10)
			So(err, ShouldWrap, poule.ErrInvalidPolicy)
		})

		Convey("When the athlete count is negative", func() {
			_, err := poule.ComputeSizes(poule.SizePolicy{}, -1)
			So(err, ShouldWrap, poule.ErrInvalidPolicy)
		})
	})
}
