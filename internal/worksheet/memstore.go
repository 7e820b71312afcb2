package worksheet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/progress"
)

// MemStore is an in-memory Store used by tests and by `serve --dev`.
// It honors the same contract as the Postgres store: defaults on first
// load, last-write-wins upserts.
type MemStore struct {
	mu       sync.RWMutex
	docs     map[string]*Document
	progress map[string]*progress.State
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		docs:     make(map[string]*Document),
		progress: make(map[string]*progress.State),
	}
}

func memKey(userID uuid.UUID, pillarID int) string {
	return fmt.Sprintf("%s/%d", userID, pillarID)
}

// LoadWorksheet returns the stored document, or a fresh default one when
// the user has never saved this pillar.
func (s *MemStore) LoadWorksheet(_ context.Context, userID uuid.UUID, pillarID int) (*Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[memKey(userID, pillarID)]
	s.mu.RUnlock()
	if !ok {
		return NewDocument(userID, pillarID)
	}
	return doc.Clone(), nil
}

// SaveWorksheet overwrites any previous document for (user, pillar).
func (s *MemStore) SaveWorksheet(_ context.Context, doc *Document) error {
	stored := doc.Clone()
	stored.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	key := memKey(doc.UserID, doc.Pillar)
	if prev, ok := s.docs[key]; ok {
		stored.CreatedAt = prev.CreatedAt
	}
	s.docs[key] = stored
	return nil
}

// LoadProgress returns the stored progression state, or a fresh one.
func (s *MemStore) LoadProgress(_ context.Context, userID uuid.UUID, pillarID int) (*progress.State, error) {
	s.mu.RLock()
	st, ok := s.progress[memKey(userID, pillarID)]
	s.mu.RUnlock()
	if !ok {
		return progress.NewState(), nil
	}
	return st.Clone(), nil
}

// SaveProgress overwrites the progression state for (user, pillar).
func (s *MemStore) SaveProgress(_ context.Context, userID uuid.UUID, pillarID int, st *progress.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[memKey(userID, pillarID)] = st.Clone()
	return nil
}
