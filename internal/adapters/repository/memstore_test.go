package repository_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/okian/solvemap/internal/adapters/repository"
	"github.com/okian/solvemap/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sample(url string) model.SolvedProblem {
	return model.SolvedProblem{
		ProblemURL: url,
		Difficulty: "1500",
		Tags:       "dp",
		SolvedAt:   "2024-03-15 09:41:30",
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	Convey("Given an empty in-memory store", t, func() {
		fixed := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
		store := repository.NewMemoryStore(repository.WithClock(func() time.Time { return fixed }))
		ctx := context.Background()

		Convey("Then it should start empty", func() {
			So(store.Count(ctx), ShouldEqual, 0)
			all, err := store.GetAll(ctx)
			So(err, ShouldBeNil)
			So(all, ShouldBeEmpty)
		})

		Convey("When adding records", func() {
			id1, err1 := store.Add(ctx, sample("url-1"))
			id2, err2 := store.Add(ctx, sample("url-2"))

			Convey("Then ids should be assigned sequentially from 1", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(id1, ShouldEqual, 1)
				So(id2, ShouldEqual, 2)
			})

			Convey("Then GetAll should return them ordered by id", func() {
				all, err := store.GetAll(ctx)
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 2)
				So(all[0].ID, ShouldEqual, 1)
				So(all[0].ProblemURL, ShouldEqual, "url-1")
				So(all[1].ProblemURL, ShouldEqual, "url-2")
			})

			Convey("Then SyncedAt should come from the clock", func() {
				all, _ := store.GetAll(ctx)
				So(all[0].SyncedAt, ShouldEqual, fixed.UnixMilli())
			})
		})

		Convey("When updating an existing record", func() {
			id, _ := store.Add(ctx, sample("url-1"))
			note := "greedy from the left"
			err := store.Update(ctx, id, model.ProblemPatch{SolutionNote: &note})

			Convey("Then the patch should apply", func() {
				So(err, ShouldBeNil)
				all, _ := store.GetAll(ctx)
				So(all[0].SolutionNote, ShouldEqual, "greedy from the left")
				So(all[0].ProblemURL, ShouldEqual, "url-1")
			})
		})

		Convey("When updating a missing record", func() {
			err := store.Update(ctx, 42, model.ProblemPatch{})

			Convey("Then it should report ErrNotFound", func() {
				So(err, ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When deleting", func() {
			id, _ := store.Add(ctx, sample("url-1"))

			Convey("Then an existing record should be removed", func() {
				So(store.Delete(ctx, id), ShouldBeNil)
				So(store.Count(ctx), ShouldEqual, 0)
			})

			Convey("Then a missing record should report ErrNotFound", func() {
				So(store.Delete(ctx, 42), ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When clearing", func() {
			_, _ = store.Add(ctx, sample("url-1"))
			_, _ = store.Add(ctx, sample("url-2"))
			So(store.Clear(ctx), ShouldBeNil)

			Convey("Then the store should be empty", func() {
				So(store.Count(ctx), ShouldEqual, 0)
			})

			Convey("And ids should not be reused", func() {
				id, err := store.Add(ctx, sample("url-3"))
				So(err, ShouldBeNil)
				So(id, ShouldEqual, 3)
			})
		})

		Convey("When bulk-adding", func() {
			n, err := store.AddBatch(ctx, []model.SolvedProblem{sample("a"), sample("b"), sample("c")})

			Convey("Then the inserted count should be returned", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 3)
				So(store.Count(ctx), ShouldEqual, 3)
			})
		})
	})
}

func TestMemoryStoreImportBatch(t *testing.T) {
	Convey("Given a store with existing records", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()
		_, _ = store.AddBatch(ctx, []model.SolvedProblem{sample("old-1"), sample("old-2")})

		Convey("When importing with clearExisting", func() {
			n, err := store.ImportBatch(ctx, []model.SolvedProblem{sample("new-1")}, true)

			Convey("Then the batch should fully replace the content", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
				all, _ := store.GetAll(ctx)
				So(all, ShouldHaveLength, 1)
				So(all[0].ProblemURL, ShouldEqual, "new-1")
			})
		})

		Convey("When importing without clearExisting", func() {
			n, err := store.ImportBatch(ctx, []model.SolvedProblem{sample("new-1")}, false)

			Convey("Then the batch should append", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
				So(store.Count(ctx), ShouldEqual, 3)
			})
		})
	})
}

func TestMemoryStoreClose(t *testing.T) {
	Convey("Given a closed store", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()
		So(store.Close(), ShouldBeNil)

		Convey("When calling any operation", func() {
			Convey("Then all should fail with ErrStoreClosed", func() {
				_, err := store.GetAll(ctx)
				So(err, ShouldEqual, repository.ErrStoreClosed)

				_, err = store.Add(ctx, sample("x"))
				So(err, ShouldEqual, repository.ErrStoreClosed)

				So(store.Update(ctx, 1, model.ProblemPatch{}), ShouldEqual, repository.ErrStoreClosed)
				So(store.Delete(ctx, 1), ShouldEqual, repository.ErrStoreClosed)
				So(store.Clear(ctx), ShouldEqual, repository.ErrStoreClosed)

				_, err = store.ImportBatch(ctx, nil, false)
				So(err, ShouldEqual, repository.ErrStoreClosed)
			})
		})
	})
}
