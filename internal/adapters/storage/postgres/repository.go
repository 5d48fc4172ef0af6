// Package postgres implements the todo repository port on PostgreSQL using
// pgx. Soft deletion is a boolean column: deleted rows stay in the table,
// keep their primary key reserved, and are filtered out of every normal
// read and write path. Schema management lives in embedded goose migrations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

const entryColumns = "id, title, description, created_at, updated_at, deleted, done"

// Compile-time checks.
var (
	_ ports.TodoRepository = (*Repository)(nil)
	_ ports.HealthChecker  = (*Repository)(nil)
)

// Repository is the pgx-backed todo repository.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Repository on the given connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts the entry. A primary-key violation is reported as
// domain.ErrConflict; the constraint spans soft-deleted rows, so re-creating
// a deleted id conflicts too.
func (r *Repository) Create(ctx context.Context, entry *todo.Entry) error {
	query := `
		INSERT INTO todo_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		entry.ID, entry.Title, entry.Description,
		entry.CreatedAt, entry.UpdatedAt, entry.Deleted, entry.Done,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("entry %s: %w", entry.ID, domain.ErrConflict)
		}
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

// Get returns the entry, or (nil, nil) when absent or soft-deleted.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*todo.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM todo_entries
		WHERE id = $1 AND deleted = false`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting entry: %w", err)
	}
	return entry, nil
}

// Update applies the non-nil patch fields in a single UPDATE that also bumps
// updated_at. Returns (nil, nil) when the entry is absent or soft-deleted.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch todo.Patch) (*todo.Entry, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		appendSet("title", *patch.Title)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Done != nil {
		appendSet("done", *patch.Done)
	}

	query := `
		UPDATE todo_entries
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = $1 AND deleted = false
		RETURNING ` + entryColumns

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("entry %s: %w", id, domain.ErrConflict)
		}
		return nil, fmt.Errorf("updating entry: %w", err)
	}
	return entry, nil
}

// SoftDelete marks the entry deleted and bumps updated_at. Returns false
// when no live row matched.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE todo_entries
		SET deleted = true, updated_at = now()
		WHERE id = $1 AND deleted = false`, id)
	if err != nil {
		return false, fmt.Errorf("soft-deleting entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// HardDelete permanently removes the row, soft-deleted or not.
func (r *Repository) HardDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM todo_entries WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("hard-deleting entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List returns up to limit non-deleted entries in insertion order.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]todo.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM todo_entries
		WHERE deleted = false
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	entries := make([]todo.Entry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Name identifies this component in readiness checks.
func (r *Repository) Name() string {
	return "postgres"
}

// HealthCheck pings the pool.
func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close releases the underlying connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// scanEntry reads one entry row from a pgx row.
func scanEntry(row pgx.Row) (*todo.Entry, error) {
	var entry todo.Entry
	err := row.Scan(
		&entry.ID, &entry.Title, &entry.Description,
		&entry.CreatedAt, &entry.UpdatedAt, &entry.Deleted, &entry.Done,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
