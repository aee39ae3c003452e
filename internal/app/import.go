package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/solvemap/internal/adapters/judge"
	"github.com/okian/solvemap/internal/domain/model"
	"github.com/okian/solvemap/internal/domain/types"
	"github.com/okian/solvemap/pkg/logger"
	"github.com/okian/solvemap/pkg/metrics"
)

// ImportState is the tagged state of the import flow. Using one value
// instead of independent flags makes illegal combinations (fetching and
// previewing at once) unrepresentable.
type ImportState int

const (
	// StateIdle means no import is in progress.
	StateIdle ImportState = iota
	// StateFetching means an adapter call is in flight.
	StateFetching
	// StateFetchedPreview means records are held uncommitted.
	StateFetchedPreview
	// StateFetchFailed means the last fetch failed; the message is kept.
	StateFetchFailed
	// StateCommitting means a confirmed batch is being written to the store.
	StateCommitting
)

// String returns the wire name of the state.
func (s ImportState) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateFetchedPreview:
		return "fetched_preview"
	case StateFetchFailed:
		return "fetch_failed"
	case StateCommitting:
		return "committing"
	default:
		return "idle"
	}
}

// genericFetchMessage is the fallback when a fetch fails with an error that
// carries no user-facing message.
const genericFetchMessage = "failed to fetch submissions"

// importSession holds the import state machine. The preview never leaves
// the service; only its count is exposed.
type importSession struct {
	state   ImportState
	judge   string
	batchID string
	preview []model.SolvedProblem
	errMsg  string
}

func (s *Service) statusLocked() types.ImportStatus {
	return types.ImportStatus{
		State:        s.imp.state.String(),
		Judge:        s.imp.judge,
		BatchID:      s.imp.batchID,
		PendingCount: len(s.imp.preview),
		Error:        s.imp.errMsg,
	}
}

// ImportStatus returns a snapshot of the import state machine.
func (s *Service) ImportStatus() types.ImportStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusLocked()
}

// StartImport validates the request, runs the selected judge adapter, and
// holds the result as an uncommitted preview. A blank handle is rejected
// before any network I/O. The adapter call runs without the service lock.
func (s *Service) StartImport(ctx context.Context, judgeName, handle string) (types.ImportStatus, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return s.ImportStatus(), fmt.Errorf("%w: handle must not be empty", ErrValidation)
	}
	adapter, ok := s.registry.Get(judgeName)
	if !ok {
		return s.ImportStatus(), fmt.Errorf("%w: %q", judge.ErrUnknownJudge, judgeName)
	}

	s.mu.Lock()
	if s.imp.state == StateFetching || s.imp.state == StateCommitting {
		status := s.statusLocked()
		s.mu.Unlock()
		return status, ErrImportBusy
	}
	s.imp = importSession{state: StateFetching, judge: judgeName}
	s.mu.Unlock()

	metrics.RecordImportStarted(judgeName)
	s.logger.Info(ctx, "fetching submissions",
		logger.String("judge", judgeName),
		logger.String("handle", handle),
	)

	begin := time.Now()
	records, err := adapter.Fetch(ctx, handle)
	metrics.RecordFetchLatency(judgeName, float64(time.Since(begin).Milliseconds()))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		msg := genericFetchMessage
		var fe *judge.FetchError
		if errors.As(err, &fe) {
			msg = fe.Message
		}
		s.imp = importSession{state: StateFetchFailed, judge: judgeName, errMsg: msg}
		metrics.RecordImportFailed(judgeName, "fetch")
		s.logger.Warn(ctx, "fetch failed",
			logger.String("judge", judgeName),
			logger.Error(err),
		)
		return s.statusLocked(), fmt.Errorf("%w: %s", ErrFetch, msg)
	}

	s.imp = importSession{
		state:   StateFetchedPreview,
		judge:   judgeName,
		batchID: uuid.New().String(),
		preview: records,
	}
	metrics.RecordRecordsFetched(judgeName, len(records))
	s.logger.Info(ctx, "fetched submissions",
		logger.String("judge", judgeName),
		logger.Int("records", len(records)),
	)
	return s.statusLocked(), nil
}

// ConfirmImport commits the held preview to the store. On store failure
// the preview is retained so the caller can retry without re-fetching.
func (s *Service) ConfirmImport(ctx context.Context, clearExisting bool) (int, error) {
	s.mu.Lock()
	if s.imp.state != StateFetchedPreview {
		s.mu.Unlock()
		return 0, ErrNoPreview
	}
	batch := s.imp.preview
	s.imp.state = StateCommitting
	s.mu.Unlock()

	n, err := s.store.ImportBatch(ctx, batch, clearExisting)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.imp.state = StateFetchedPreview
		metrics.RecordStoreError()
		s.logger.Error(ctx, "import commit failed", logger.Error(err))
		return 0, fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.logger.Info(ctx, "import committed",
		logger.String("judge", s.imp.judge),
		logger.Int("records", n),
		logger.Any("clear_existing", clearExisting),
	)
	s.imp = importSession{}
	metrics.RecordImportCommit()
	metrics.RecordRecordsImported(n)
	return n, nil
}

// SelectJudge switches the active judge, discarding any held preview or
// error without re-fetching. Rejected while a fetch or commit is in flight.
func (s *Service) SelectJudge(judgeName string) (types.ImportStatus, error) {
	if _, ok := s.registry.Get(judgeName); !ok {
		return s.ImportStatus(), fmt.Errorf("%w: %q", judge.ErrUnknownJudge, judgeName)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imp.state == StateFetching || s.imp.state == StateCommitting {
		return s.statusLocked(), ErrImportBusy
	}
	s.imp = importSession{judge: judgeName}
	return s.statusLocked(), nil
}
