package repository

import (
	"context"
	"sync"
)

// MemoryRepository keeps collections in process memory. It backs tests and
// runs without a configured database.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[Collection]string
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[Collection]string)}
}

// Load returns the stored payload or "" when absent.
func (r *MemoryRepository) Load(_ context.Context, name Collection) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data[name], nil
}

// Save overwrites the stored payload.
func (r *MemoryRepository) Save(_ context.Context, name Collection, payload string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[name] = payload
	return nil
}
