package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
)

// TodoRepository defines the persistence port for todo entries.
// Implemented by storage adapters; called by the application layer.
//
// "Absent" results are reported as (nil, nil) or (false, nil) rather than
// errors: classifying absence is the service layer's job. Duplicate-id
// violations wrap domain.ErrConflict so the service can distinguish them
// from other persistence failures.
type TodoRepository interface {
	// Create persists a new entry. The uniqueness constraint on the id spans
	// soft-deleted rows; a duplicate wraps domain.ErrConflict.
	Create(ctx context.Context, entry *todo.Entry) error

	// Get returns the entry with the given id, or (nil, nil) if it does not
	// exist or is soft-deleted.
	Get(ctx context.Context, id uuid.UUID) (*todo.Entry, error)

	// Update applies the non-nil fields of patch and bumps updated_at.
	// Returns (nil, nil) if the entry does not exist or is soft-deleted.
	Update(ctx context.Context, id uuid.UUID, patch todo.Patch) (*todo.Entry, error)

	// SoftDelete marks the entry deleted and bumps updated_at. Returns false
	// if the entry does not exist or was already deleted.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)

	// HardDelete permanently removes the entry's stored representation,
	// soft-deleted or not. Administrative operation; not used by the
	// standard service flows. Returns false if no row existed.
	HardDelete(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns up to limit non-deleted entries starting at offset, in
	// repository-defined order (insertion order in practice).
	List(ctx context.Context, limit, offset int) ([]todo.Entry, error)
}
