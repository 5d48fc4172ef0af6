// Package breaker decorates a todo repository with a circuit breaker so a
// struggling database fails fast instead of queueing callers behind timeouts.
// Domain-classified outcomes (conflicts, absent rows) are successes from the
// breaker's point of view; only genuine persistence failures trip it.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/platform/config"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// Compile-time check that Repository implements ports.TodoRepository.
var _ ports.TodoRepository = (*Repository)(nil)

// Repository wraps an inner repository with a shared circuit breaker across
// all operations: the breaker watches the health of the database connection,
// not of individual queries.
type Repository struct {
	inner ports.TodoRepository
	cb    *gobreaker.CircuitBreaker[any]
}

// New creates a breaker decorator over inner. The breaker trips after the
// configured number of consecutive failures and logs state changes at warn.
func New(inner ports.TodoRepository, cfg config.BreakerConfig, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "todo-repository",
		MaxRequests: toUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			// Conflicts are well-classified domain outcomes, not signs of a
			// failing database.
			return err == nil || errors.Is(err, domain.ErrConflict)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Repository{inner: inner, cb: cb}
}

func (r *Repository) Create(ctx context.Context, entry *todo.Entry) error {
	_, err := execute(r.cb, func() (struct{}, error) {
		return struct{}{}, r.inner.Create(ctx, entry)
	})
	return err
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*todo.Entry, error) {
	return execute(r.cb, func() (*todo.Entry, error) {
		return r.inner.Get(ctx, id)
	})
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch todo.Patch) (*todo.Entry, error) {
	return execute(r.cb, func() (*todo.Entry, error) {
		return r.inner.Update(ctx, id, patch)
	})
}

func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	return execute(r.cb, func() (bool, error) {
		return r.inner.SoftDelete(ctx, id)
	})
}

func (r *Repository) HardDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	return execute(r.cb, func() (bool, error) {
		return r.inner.HardDelete(ctx, id)
	})
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]todo.Entry, error) {
	return execute(r.cb, func() ([]todo.Entry, error) {
		return r.inner.List(ctx, limit, offset)
	})
}

// execute runs fn through the breaker, translating an open or saturated
// circuit into a repository failure the service layer already understands.
func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	v, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("repository circuit open: %w", domain.ErrRepository)
		}
		return zero, err
	}
	result, _ := v.(T)
	return result, nil
}

// toUint32 clamps an int config value into uint32 range for gobreaker.
func toUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
