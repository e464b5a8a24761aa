package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/piste/internal/adapters/repository"
	"github.com/okian/piste/internal/domain/formula"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemStore(t *testing.T) {
	Convey("Given an empty in-memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When storing a tournament state", func() {
			err := store.Put(ctx, &formula.State{TournamentID: "t-1"})

			Convey("Then it can be read back", func() {
				So(err, ShouldBeNil)
				state, err := store.Get(ctx, "t-1")
				So(err, ShouldBeNil)
				So(state.TournamentID, ShouldEqual, "t-1")
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("Then replacing it keeps a single entry", func() {
				So(store.Put(ctx, &formula.State{TournamentID: "t-1", CurrentPhase: 1}), ShouldBeNil)
				state, _ := store.Get(ctx, "t-1")
				So(state.CurrentPhase, ShouldEqual, 1)
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When reading an unknown id", func() {
			_, err := store.Get(ctx, "nope")
			So(err, ShouldWrap, repository.ErrNotFound)
		})

		Convey("When storing invalid states", func() {
			So(store.Put(ctx, nil), ShouldWrap, repository.ErrNilState)
			So(store.Put(ctx, &formula.State{}), ShouldWrap, repository.ErrNoID)
		})

		Convey("When deleting", func() {
			So(store.Put(ctx, &formula.State{TournamentID: "t-1"}), ShouldBeNil)
			store.Delete(ctx, "t-1")
			store.Delete(ctx, "t-1") // idempotent

			So(store.Count(ctx), ShouldEqual, 0)
		})

		Convey("When several tournaments run concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					id := fmt.Sprintf("t-%d", i)
					_ = store.Put(ctx, &formula.State{TournamentID: id})
					_, _ = store.Get(ctx, id)
				}(i)
			}
			wg.Wait()

			Convey("Then all of them are tracked", func() {
				So(store.Count(ctx), ShouldEqual, 20)
				So(store.IDs(ctx), ShouldHaveLength, 20)
			})
		})
	})
}
