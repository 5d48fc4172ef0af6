// Package rediscache decorates a todo repository with a Redis read-through
// cache. Gets and lists are cached with a TTL; every write invalidates.
// Cache failures are logged and degrade to the inner repository, never to
// the caller.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

const (
	keyEntryPrefix = "todo:entry:"
	keyListPrefix  = "todo:list:"
	keyListPattern = keyListPrefix + "*"
)

// Compile-time checks.
var (
	_ ports.TodoRepository = (*Repository)(nil)
	_ ports.HealthChecker  = (*Repository)(nil)
)

// Repository wraps an inner repository with Redis caching. List reads go
// through singleflight so a cold key triggers at most one repository query
// per process.
type Repository struct {
	inner  ports.TodoRepository
	rdb    *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	logger *slog.Logger
}

// New creates a caching decorator over inner. A nil logger is replaced with
// a no-op logger.
func New(inner ports.TodoRepository, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

// Create delegates to the inner repository and invalidates list keys.
func (r *Repository) Create(ctx context.Context, entry *todo.Entry) error {
	if err := r.inner.Create(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx, entry.ID)
	return nil
}

// Get returns the cached entry when present, otherwise reads through to the
// inner repository. Absence is not cached.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*todo.Entry, error) {
	key := keyEntryPrefix + id.String()

	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var entry todo.Entry
		if err := json.Unmarshal(raw, &entry); err == nil {
			return &entry, nil
		}
		r.logger.WarnContext(ctx, "dropping undecodable cache entry", slog.String("key", key))
		r.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	entry, err := r.inner.Get(ctx, id)
	if err != nil || entry == nil {
		return entry, err
	}

	r.set(ctx, key, entry)
	return entry, nil
}

// Update delegates to the inner repository and invalidates on success.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch todo.Patch) (*todo.Entry, error) {
	updated, err := r.inner.Update(ctx, id, patch)
	if err != nil || updated == nil {
		return updated, err
	}
	r.invalidate(ctx, id)
	return updated, nil
}

// SoftDelete delegates to the inner repository and invalidates on success.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := r.inner.SoftDelete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	r.invalidate(ctx, id)
	return true, nil
}

// HardDelete delegates to the inner repository and invalidates on success.
func (r *Repository) HardDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := r.inner.HardDelete(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	r.invalidate(ctx, id)
	return true, nil
}

// List returns the cached page when present, otherwise reads through under
// singleflight so concurrent misses on the same page share one query.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]todo.Entry, error) {
	key := fmt.Sprintf("%s%d:%d", keyListPrefix, limit, offset)

	v, err, _ := r.sf.Do(key, func() (any, error) {
		raw, err := r.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var entries []todo.Entry
			if err := json.Unmarshal(raw, &entries); err == nil {
				return entries, nil
			}
			r.logger.WarnContext(ctx, "dropping undecodable cache entry", slog.String("key", key))
			r.rdb.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.Any("error", err))
		}

		entries, err := r.inner.List(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		r.set(ctx, key, entries)
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]todo.Entry), nil
}

// Name identifies this component in readiness checks.
func (r *Repository) Name() string {
	return "redis"
}

// HealthCheck pings the Redis client.
func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// set stores v under key with the configured TTL. Failures are logged only.
func (r *Repository) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		r.logger.WarnContext(ctx, "cache encode failed", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := r.rdb.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// invalidate removes the entry key and every list page key. List keys are
// discovered with SCAN to avoid blocking Redis on large keyspaces.
func (r *Repository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.rdb.Del(ctx, keyEntryPrefix+id.String()).Err(); err != nil {
		r.logger.WarnContext(ctx, "cache invalidation failed",
			slog.String("id", id.String()), slog.Any("error", err))
	}

	iter := r.rdb.Scan(ctx, 0, keyListPattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			r.logger.WarnContext(ctx, "cache invalidation failed",
				slog.String("key", iter.Val()), slog.Any("error", err))
		}
	}
	if err := iter.Err(); err != nil {
		r.logger.WarnContext(ctx, "cache invalidation scan failed", slog.Any("error", err))
	}
}
