package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	judge "github.com/okian/solvemap/internal/adapters/judge"
	codeforces "github.com/okian/solvemap/internal/adapters/judge/codeforces"
	repository "github.com/okian/solvemap/internal/adapters/repository"
	service "github.com/okian/solvemap/internal/app"
	"github.com/okian/solvemap/internal/domain/model"
	"github.com/okian/solvemap/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const okEnvelope = `{
	"status": "OK",
	"result": [
		{"id": 1, "contestId": 1850, "creationTimeSeconds": 1000,
		 "problem": {"contestId": 1850, "index": "A", "rating": 800, "tags": ["math"]},
		 "verdict": "OK"},
		{"id": 2, "contestId": 1850, "creationTimeSeconds": 2000,
		 "problem": {"contestId": 1850, "index": "B", "rating": 900, "tags": []},
		 "verdict": "OK"}
	]
}`

// newImportService wires a service against a fake judge API and returns the
// request hit counter alongside.
func newImportService(t *testing.T, body string) (*service.Service, *repository.MemoryStore, *atomic.Int64) {
	t.Helper()
	store := repository.NewMemoryStore()
	svc, hits := newImportServiceWithStore(t, body, store)
	return svc, store, hits
}

// newImportServiceWithStore is newImportService with an injected store.
func newImportServiceWithStore(t *testing.T, body string, store repository.Store) (*service.Service, *atomic.Int64) {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	svc := service.New(
		service.WithStore(store),
		service.WithRegistry(judge.NewRegistry(
			codeforces.New(codeforces.WithBaseURL(server.URL)),
		)),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc, &hits
}

func TestStartImport(t *testing.T) {
	Convey("Given a service wired to a responding judge", t, func() {
		svc, _, hits := newImportService(t, okEnvelope)
		ctx := context.Background()

		Convey("Then the import state should begin idle", func() {
			status := svc.ImportStatus()
			So(status.State, ShouldEqual, "idle")
			So(status.PendingCount, ShouldEqual, 0)
		})

		Convey("When starting an import with a valid handle", func() {
			status, err := svc.StartImport(ctx, "codeforces", "tourist")

			Convey("Then a preview should be held with a batch id", func() {
				So(err, ShouldBeNil)
				So(status.State, ShouldEqual, "fetched_preview")
				So(status.Judge, ShouldEqual, "codeforces")
				So(status.BatchID, ShouldNotBeEmpty)
				So(status.PendingCount, ShouldEqual, 2)
			})

			Convey("And nothing should reach the store before confirmation", func() {
				records, _ := svc.Problems(ctx)
				So(records, ShouldBeEmpty)
			})
		})

		Convey("When the handle is blank", func() {
			_, err := svc.StartImport(ctx, "codeforces", "   ")

			Convey("Then validation should fail before any network I/O", func() {
				So(errors.Is(err, service.ErrValidation), ShouldBeTrue)
				So(hits.Load(), ShouldEqual, 0)
			})
		})

		Convey("When the judge is unknown", func() {
			_, err := svc.StartImport(ctx, "topcoder", "tourist")

			Convey("Then it should be rejected before any network I/O", func() {
				So(errors.Is(err, judge.ErrUnknownJudge), ShouldBeTrue)
				So(hits.Load(), ShouldEqual, 0)
			})
		})

		Convey("When a second import follows a completed fetch", func() {
			_, _ = svc.StartImport(ctx, "codeforces", "tourist")
			status, err := svc.StartImport(ctx, "codeforces", "petr")

			Convey("Then it should replace the previous preview", func() {
				So(err, ShouldBeNil)
				So(status.State, ShouldEqual, "fetched_preview")
			})
		})
	})

	Convey("Given a judge that reports a failure envelope", t, func() {
		svc, _, _ := newImportService(t,
			`{"status": "FAILED", "comment": "handle: User with handle nobody not found"}`)
		ctx := context.Background()

		Convey("When starting an import", func() {
			status, err := svc.StartImport(ctx, "codeforces", "nobody")

			Convey("Then the failure should surface the judge message verbatim", func() {
				So(errors.Is(err, service.ErrFetch), ShouldBeTrue)
				So(status.State, ShouldEqual, "fetch_failed")
				So(status.Error, ShouldEqual, "handle: User with handle nobody not found")
			})

			Convey("And confirming afterwards should fail with no preview", func() {
				_, err := svc.ConfirmImport(ctx, false)
				So(errors.Is(err, service.ErrNoPreview), ShouldBeTrue)
			})
		})
	})

	Convey("Given a judge that fails without an envelope", t, func() {
		svc, _, _ := newImportService(t, `not json`)
		ctx := context.Background()

		Convey("When starting an import", func() {
			status, err := svc.StartImport(ctx, "codeforces", "someone")

			Convey("Then a generic message should be reported", func() {
				So(errors.Is(err, service.ErrFetch), ShouldBeTrue)
				So(status.Error, ShouldEqual, "failed to fetch submissions")
			})
		})
	})
}

func TestConfirmImport(t *testing.T) {
	Convey("Given a held preview", t, func() {
		svc, store, _ := newImportService(t, okEnvelope)
		ctx := context.Background()
		_, err := svc.StartImport(ctx, "codeforces", "tourist")
		So(err, ShouldBeNil)

		Convey("When confirming without clearing", func() {
			n, err := svc.ConfirmImport(ctx, false)

			Convey("Then the preview should land in the store", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
				So(store.Count(ctx), ShouldEqual, 2)
			})

			Convey("And the state machine should return to idle", func() {
				status := svc.ImportStatus()
				So(status.State, ShouldEqual, "idle")
				So(status.BatchID, ShouldBeEmpty)
				So(status.PendingCount, ShouldEqual, 0)
			})
		})

		Convey("When confirming with clearExisting on a populated store", func() {
			_, _ = store.Add(ctx, model.SolvedProblem{ProblemURL: "manual", SolvedAt: "2024-01-01 00:00:00"})
			n, err := svc.ConfirmImport(ctx, true)

			Convey("Then the store should hold exactly the batch", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
				So(store.Count(ctx), ShouldEqual, 2)
			})
		})

		Convey("When confirming twice", func() {
			_, _ = svc.ConfirmImport(ctx, false)
			_, err := svc.ConfirmImport(ctx, false)

			Convey("Then the second confirm should find no preview", func() {
				So(errors.Is(err, service.ErrNoPreview), ShouldBeTrue)
			})
		})
	})

	Convey("Given no preview", t, func() {
		svc, _, _ := newImportService(t, okEnvelope)

		Convey("When confirming", func() {
			_, err := svc.ConfirmImport(context.Background(), false)

			Convey("Then it should fail with ErrNoPreview", func() {
				So(errors.Is(err, service.ErrNoPreview), ShouldBeTrue)
			})
		})
	})
}

func TestSelectJudge(t *testing.T) {
	Convey("Given a service with a held preview", t, func() {
		svc, _, _ := newImportService(t, okEnvelope)
		ctx := context.Background()
		_, _ = svc.StartImport(ctx, "codeforces", "tourist")

		Convey("When selecting a judge", func() {
			status, err := svc.SelectJudge("codeforces")

			Convey("Then the preview should be discarded and the state reset", func() {
				So(err, ShouldBeNil)
				So(status.State, ShouldEqual, "idle")
				So(status.Judge, ShouldEqual, "codeforces")
				So(status.PendingCount, ShouldEqual, 0)
			})
		})

		Convey("When selecting an unknown judge", func() {
			_, err := svc.SelectJudge("topcoder")

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, judge.ErrUnknownJudge), ShouldBeTrue)
			})
		})
	})
}
