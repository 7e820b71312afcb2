package worksheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/progress"
)

// ErrSaveInFlight is returned when a save is attempted while another save
// for the same (user, pillar) is still running. Rejecting the second call
// keeps upserts ordered; the caller retries once the first save lands.
var ErrSaveInFlight = errors.New("save already in flight for this worksheet")

// StoreError wraps a backend failure (network, database). Load and save
// callers decide on retry policy; the store itself never retries and
// never swallows the cause.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store is the persistence contract for worksheet documents and per-pillar
// progression state.
//
// LoadWorksheet returns a fresh default document when no record exists;
// first use is not an error. SaveWorksheet is an upsert keyed by
// (user, pillar) with last-write-wins semantics and exactly one attempt
// per call, so retry policy composes on top (see RetryStore).
type Store interface {
	LoadWorksheet(ctx context.Context, userID uuid.UUID, pillarID int) (*Document, error)
	SaveWorksheet(ctx context.Context, doc *Document) error

	LoadProgress(ctx context.Context, userID uuid.UUID, pillarID int) (*progress.State, error)
	SaveProgress(ctx context.Context, userID uuid.UUID, pillarID int, st *progress.State) error
}
