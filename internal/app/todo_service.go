package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/todo-backend/internal/app/validate"
	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService by composing the entry builder
// and validators with a repository port. Validation errors pass through
// unchanged; repository duplicate/absent conditions are translated into
// domain.ErrConflict/domain.ErrNotFound at this boundary; every other
// repository failure is wrapped as domain.ErrRepository so collaborator
// failure types never leak to callers.
//
// The service holds no state across operations and issues at most one
// repository call per operation. Concurrent updates to the same id resolve
// last-writer-wins through the repository's per-statement atomicity.
type TodoService struct {
	repo           ports.TodoRepository
	builder        *EntryBuilder
	uuidValidator  *validate.UUIDValidator
	fieldValidator *validate.FieldValidator
	logger         *slog.Logger
}

// NewTodoService creates a TodoService. A nil logger is replaced with a
// no-op logger.
func NewTodoService(
	repo ports.TodoRepository,
	builder *EntryBuilder,
	uuidValidator *validate.UUIDValidator,
	fieldValidator *validate.FieldValidator,
	logger *slog.Logger,
) *TodoService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TodoService{
		repo:           repo,
		builder:        builder,
		uuidValidator:  uuidValidator,
		fieldValidator: fieldValidator,
		logger:         logger,
	}
}

// CreateTodo validates and constructs the entry, then persists it. Nothing
// is persisted when any field fails validation.
func (s *TodoService) CreateTodo(ctx context.Context, input ports.CreateTodoInput) (*todo.Entry, error) {
	s.logger.InfoContext(ctx, "creating todo", slog.String("id", input.ID))

	entry, err := s.builder.Build(&input)
	if err != nil {
		s.logger.WarnContext(ctx, "todo create payload rejected",
			slog.String("operation", "CreateTodo"),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.ErrorContext(ctx, "todo id already exists",
				slog.String("operation", "CreateTodo"),
				slog.String("id", entry.ID.String()),
			)
			return nil, err
		}
		s.logger.ErrorContext(ctx, "failed to create todo",
			slog.String("operation", "CreateTodo"),
			slog.String("id", entry.ID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("creating todo: %v: %w", err, domain.ErrRepository)
	}

	return entry, nil
}

// GetTodo returns the entry with the given id. The id is validated before
// any repository access; soft-deleted entries are reported as not found.
func (s *TodoService) GetTodo(ctx context.Context, id string) (*todo.Entry, error) {
	entryID, err := s.uuidValidator.Validate(id)
	if err != nil {
		s.logger.WarnContext(ctx, "invalid todo id",
			slog.String("operation", "GetTodo"),
			slog.String("id", id),
		)
		return nil, err
	}

	entry, err := s.repo.Get(ctx, entryID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch todo",
			slog.String("operation", "GetTodo"),
			slog.String("id", entryID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetching todo: %v: %w", err, domain.ErrRepository)
	}
	if entry == nil {
		s.logger.ErrorContext(ctx, "todo not found",
			slog.String("operation", "GetTodo"),
			slog.String("id", entryID.String()),
		)
		return nil, fmt.Errorf("todo %s: %w", entryID, domain.ErrNotFound)
	}

	// Defensive: well-formed stored data never fails this, so a failure is a
	// persistence problem, not a caller problem.
	if err := entry.Validate(); err != nil {
		s.logger.ErrorContext(ctx, "stored todo failed output validation",
			slog.String("operation", "GetTodo"),
			slog.String("id", entryID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("stored todo %s is malformed: %w", entryID, domain.ErrRepository)
	}

	return entry, nil
}

// UpdateTodo applies the present fields of input in one atomic partial
// update. Present title/description values run through the field validators;
// absent fields are neither validated nor touched. A done toggle is applied
// together with the other present fields rather than in a separate flow, so
// a single call carrying done=true and a new title applies both.
func (s *TodoService) UpdateTodo(ctx context.Context, id string, input ports.UpdateTodoInput) (*todo.Entry, error) {
	entryID, err := s.uuidValidator.Validate(id)
	if err != nil {
		s.logger.WarnContext(ctx, "invalid todo id",
			slog.String("operation", "UpdateTodo"),
			slog.String("id", id),
		)
		return nil, err
	}

	patch, err := s.buildPatch(input)
	if err != nil {
		s.logger.WarnContext(ctx, "todo update payload rejected",
			slog.String("operation", "UpdateTodo"),
			slog.String("id", entryID.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, entryID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.ErrorContext(ctx, "todo update conflicts",
				slog.String("operation", "UpdateTodo"),
				slog.String("id", entryID.String()),
			)
			return nil, err
		}
		s.logger.ErrorContext(ctx, "failed to update todo",
			slog.String("operation", "UpdateTodo"),
			slog.String("id", entryID.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("updating todo: %v: %w", err, domain.ErrRepository)
	}
	if updated == nil {
		s.logger.ErrorContext(ctx, "todo not found",
			slog.String("operation", "UpdateTodo"),
			slog.String("id", entryID.String()),
		)
		return nil, fmt.Errorf("todo %s: %w", entryID, domain.ErrNotFound)
	}

	return updated, nil
}

// buildPatch validates the present fields of input and converts them to a
// repository patch. Title keeps required semantics (present but empty is an
// error); description keeps optional semantics (present but empty clears it).
func (s *TodoService) buildPatch(input ports.UpdateTodoInput) (todo.Patch, error) {
	var patch todo.Patch

	if input.Title != nil {
		title, err := s.fieldValidator.Required(*input.Title, "title")
		if err != nil {
			return todo.Patch{}, err
		}
		patch.Title = &title
	}
	if input.Description != nil {
		description, err := s.fieldValidator.Optional(*input.Description)
		if err != nil {
			return todo.Patch{}, err
		}
		patch.Description = &description
	}
	patch.Done = input.Done

	return patch, nil
}

// DeleteTodo soft-deletes the entry. The entry stays in storage but becomes
// unreachable through get/list/update/delete. A second delete of the same id
// reports not found; idempotence is deliberately not provided.
func (s *TodoService) DeleteTodo(ctx context.Context, id string) (bool, error) {
	entryID, err := s.uuidValidator.Validate(id)
	if err != nil {
		s.logger.WarnContext(ctx, "invalid todo id",
			slog.String("operation", "DeleteTodo"),
			slog.String("id", id),
		)
		return false, err
	}

	deleted, err := s.repo.SoftDelete(ctx, entryID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete todo",
			slog.String("operation", "DeleteTodo"),
			slog.String("id", entryID.String()),
			slog.Any("error", err),
		)
		return false, fmt.Errorf("deleting todo: %v: %w", err, domain.ErrRepository)
	}
	if !deleted {
		s.logger.ErrorContext(ctx, "todo not found",
			slog.String("operation", "DeleteTodo"),
			slog.String("id", entryID.String()),
		)
		return false, fmt.Errorf("todo %s: %w", entryID, domain.ErrNotFound)
	}

	return true, nil
}

// ListTodos returns one page of non-deleted entries. Entries that fail
// output validation are skipped and logged so one malformed row cannot fail
// the whole page.
func (s *TodoService) ListTodos(ctx context.Context, page todo.Page) ([]todo.Entry, error) {
	if fields := validatePage(page); len(fields) > 0 {
		s.logger.WarnContext(ctx, "rejecting non-positive pagination",
			slog.String("operation", "ListTodos"),
			slog.Int("limit", page.Limit),
			slog.Int("page", page.Page),
		)
		return nil, &domain.ValidationError{Fields: fields}
	}

	entries, err := s.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list todos",
			slog.String("operation", "ListTodos"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("listing todos: %v: %w", err, domain.ErrRepository)
	}

	result := make([]todo.Entry, 0, len(entries))
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			s.logger.WarnContext(ctx, "skipping malformed stored todo",
				slog.String("operation", "ListTodos"),
				slog.String("id", entries[i].ID.String()),
				slog.Any("error", err),
			)
			continue
		}
		result = append(result, entries[i])
	}

	return result, nil
}

// validatePage returns per-field messages for non-positive pagination values.
func validatePage(page todo.Page) map[string]string {
	fields := make(map[string]string)
	if page.Limit <= 0 {
		fields["limit"] = "must be positive"
	}
	if page.Page <= 0 {
		fields["page"] = "must be positive"
	}
	return fields
}
