package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/baton/internal/domain/model"
	"github.com/okian/baton/pkg/metrics"
)

// BookStore implements Store with a mutex-guarded map plus an
// insertion-order index. Replacing a record keeps its original
// position so snapshot order, and everything derived from it, stays
// stable across edits.
type BookStore struct {
	mu      sync.RWMutex
	byID    map[string]model.Client
	order   []string
	maxSize int
}

// NewBookStore creates a new in-memory client book.
func NewBookStore(ctx context.Context, opts ...Option) *BookStore {
	s := &BookStore{
		byID: make(map[string]model.Client),
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateBookSize(0)
	return s
}

// Upsert inserts or replaces a client record.
func (s *BookStore) Upsert(ctx context.Context, c model.Client) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, exists := s.byID[c.ID]; !exists {
		if s.maxSize > 0 && len(s.order) >= s.maxSize {
			return "", ErrBookFull
		}
		s.order = append(s.order, c.ID)
	}
	s.byID[c.ID] = c
	metrics.UpdateBookSize(len(s.order))
	return c.ID, nil
}

// Get returns the client with the given id.
func (s *BookStore) Get(ctx context.Context, id string) (model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return model.Client{}, ErrNotFound
	}
	return c, nil
}

// Delete removes a client record.
func (s *BookStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	metrics.UpdateBookSize(len(s.order))
	return nil
}

// Snapshot returns a value copy of the book in insertion order.
func (s *BookStore) Snapshot(ctx context.Context) []model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Client, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Count returns the number of clients in the book.
func (s *BookStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
