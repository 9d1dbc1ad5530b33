package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/mosaic"
)

// MemoryStore keeps layouts in a map. Contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]StoredLayout
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]StoredLayout)}
}

// Put assigns a fresh id and stores the layout.
func (s *MemoryStore) Put(ctx context.Context, l mosaic.Layout) (StoredLayout, error) {
	stored := StoredLayout{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Layout:    l,
	}

	s.mu.Lock()
	s.layouts[stored.ID] = stored
	s.mu.Unlock()

	return stored, nil
}

// Get looks up a layout by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (StoredLayout, error) {
	s.mu.RLock()
	stored, ok := s.layouts[id]
	s.mu.RUnlock()

	if !ok {
		return StoredLayout{}, errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
	}
	return stored, nil
}

// Delete removes a layout by id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.layouts[id]; !ok {
		return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
	}
	delete(s.layouts, id)
	return nil
}

// List returns layouts newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]StoredLayout, error) {
	s.mu.RLock()
	all := make([]StoredLayout, 0, len(s.layouts))
	for _, stored := range s.layouts {
		all = append(all, stored)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
