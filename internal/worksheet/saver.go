package worksheet

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Saver serializes saves per worksheet: at most one in-flight save per
// (user, pillar). A second save while one is running returns
// ErrSaveInFlight instead of racing it, so an older document can never
// overwrite a newer one through reordered upserts.
type Saver struct {
	store Store

	mu    sync.Mutex
	slots map[string]*semaphore.Weighted
}

// NewSaver wraps a store with per-document save serialization.
func NewSaver(store Store) *Saver {
	return &Saver{
		store: store,
		slots: make(map[string]*semaphore.Weighted),
	}
}

func (s *Saver) slot(key string) *semaphore.Weighted {
	s.mu.Lock()
	defer s.mu.Unlock()
	sem, ok := s.slots[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		s.slots[key] = sem
	}
	return sem
}

// Save performs the underlying save if no save for the same document is
// in flight, and returns ErrSaveInFlight otherwise.
func (s *Saver) Save(ctx context.Context, doc *Document) error {
	sem := s.slot(memKey(doc.UserID, doc.Pillar))
	if !sem.TryAcquire(1) {
		return ErrSaveInFlight
	}
	defer sem.Release(1)
	return s.store.SaveWorksheet(ctx, doc)
}
