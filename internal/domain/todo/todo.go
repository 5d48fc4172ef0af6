// Package todo defines the todo entry entity and its transient request types.
package todo

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
)

// Entry represents a single todo item.
//
// ID and CreatedAt are immutable once the entry is created. UpdatedAt is nil
// until the first mutation and is bumped on every successful one, including
// marking done and soft-deleting. Deleted entries stay in storage but are
// invisible to all normal read and write paths.
type Entry struct {
	ID          uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	Deleted     bool
	Done        bool
}

// Validate checks that a stored entry is well-formed enough to be returned
// to callers. It guards against malformed rows coming back from persistence;
// input validation happens earlier, in the sanitization pipeline.
func (e *Entry) Validate() error {
	fields := make(map[string]string)

	if e.ID == uuid.Nil {
		fields["id"] = domain.MsgRequired
	}
	if strings.TrimSpace(e.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if e.CreatedAt.IsZero() {
		fields["created_at"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Patch carries a partial update. Nil fields mean "do not change this field";
// repositories apply only the non-nil ones and bump UpdatedAt.
type Patch struct {
	Title       *string
	Description *string
	Done        *bool
}

// Empty reports whether the patch carries no fields at all.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Done == nil
}

// Pagination defaults applied by callers when a value is absent.
const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// Page describes one page of a listing: Limit entries starting at page
// number Page (1-based). Both values must be positive.
type Page struct {
	Limit int
	Page  int
}

// Offset returns the number of entries to skip before this page starts.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}
