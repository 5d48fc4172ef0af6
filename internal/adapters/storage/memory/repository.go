// Package memory provides a mutex-guarded in-memory implementation of the
// todo repository port. It backs the local profile and the application-layer
// tests; the contract matches the Postgres adapter, including soft-delete
// visibility and duplicate-id detection.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// Compile-time check that Repository implements ports.TodoRepository.
var _ ports.TodoRepository = (*Repository)(nil)

// Repository stores entries in a map keyed by id, with a separate slice
// preserving insertion order for listing. Safe for concurrent use.
type Repository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*todo.Entry
	order   []uuid.UUID
	now     func() time.Time
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{
		entries: make(map[uuid.UUID]*todo.Entry),
		now:     time.Now,
	}
}

// Create stores a copy of entry. The id must be unique among all stored
// rows, soft-deleted ones included.
func (r *Repository) Create(_ context.Context, entry *todo.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[entry.ID]; exists {
		return fmt.Errorf("entry %s: %w", entry.ID, domain.ErrConflict)
	}

	stored := *entry
	r.entries[entry.ID] = &stored
	r.order = append(r.order, entry.ID)
	return nil
}

// Get returns a copy of the entry, or (nil, nil) when absent or soft-deleted.
func (r *Repository) Get(_ context.Context, id uuid.UUID) (*todo.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok || entry.Deleted {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

// Update applies the non-nil patch fields and bumps UpdatedAt. Returns
// (nil, nil) when the entry is absent or soft-deleted.
func (r *Repository) Update(_ context.Context, id uuid.UUID, patch todo.Patch) (*todo.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok || entry.Deleted {
		return nil, nil
	}

	if patch.Title != nil {
		entry.Title = *patch.Title
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	if patch.Done != nil {
		entry.Done = *patch.Done
	}
	updatedAt := r.now()
	entry.UpdatedAt = &updatedAt

	copied := *entry
	return &copied, nil
}

// SoftDelete marks the entry deleted. Returns false when the entry is absent
// or already deleted.
func (r *Repository) SoftDelete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok || entry.Deleted {
		return false, nil
	}

	entry.Deleted = true
	updatedAt := r.now()
	entry.UpdatedAt = &updatedAt
	return true, nil
}

// HardDelete removes the entry entirely, soft-deleted or not.
func (r *Repository) HardDelete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false, nil
	}

	delete(r.entries, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// List returns up to limit non-deleted entries in insertion order, starting
// at offset among the non-deleted ones.
func (r *Repository) List(_ context.Context, limit, offset int) ([]todo.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || offset < 0 {
		return []todo.Entry{}, nil
	}

	result := make([]todo.Entry, 0, limit)
	skipped := 0
	for _, id := range r.order {
		entry := r.entries[id]
		if entry.Deleted {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		result = append(result, *entry)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}
