package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
)

// CreateTodoInput is the transient creation payload. The client supplies the
// id; an empty ID means the field was absent. A nil Description means the
// field was absent and is normalized to empty.
type CreateTodoInput struct {
	ID          string
	Title       string
	Description *string
}

// UpdateTodoInput is the transient partial-update payload. Nil fields were
// absent from the request and are left untouched ("exclude unset").
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Done        *bool
}

// TodoService defines the service port for todo entry operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type TodoService interface {
	// CreateTodo validates the payload through the sanitization pipeline,
	// constructs the entry with defaults, and persists it.
	// Returns domain.ErrValidation for malformed input, domain.ErrConflict
	// for a duplicate id, and domain.ErrRepository for any other
	// persistence failure.
	CreateTodo(ctx context.Context, input CreateTodoInput) (*todo.Entry, error)

	// GetTodo returns a single entry by id. The id is validated before the
	// repository is touched.
	// Returns domain.ErrValidation for a malformed id and domain.ErrNotFound
	// if the entry does not exist or is soft-deleted.
	GetTodo(ctx context.Context, id string) (*todo.Entry, error)

	// UpdateTodo applies the present fields of input to the entry, bumping
	// its updated_at. Present fields are validated; absent fields are left
	// untouched. A done toggle is applied together with any other present
	// fields in one atomic update.
	// Returns domain.ErrValidation, domain.ErrNotFound, domain.ErrConflict,
	// or domain.ErrRepository.
	UpdateTodo(ctx context.Context, id string, input UpdateTodoInput) (*todo.Entry, error)

	// DeleteTodo soft-deletes the entry. Deleting an entry that is absent or
	// already soft-deleted returns domain.ErrNotFound; the operation is
	// deliberately not idempotent.
	DeleteTodo(ctx context.Context, id string) (bool, error)

	// ListTodos returns up to page.Limit non-deleted entries starting at the
	// page's offset. Non-positive limit or page values are rejected with
	// domain.ErrValidation. Stored entries that fail output validation are
	// skipped and logged rather than failing the whole page.
	ListTodos(ctx context.Context, page todo.Page) ([]todo.Entry, error)
}
