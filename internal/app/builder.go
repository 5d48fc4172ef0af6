// Package app provides application services that orchestrate use cases by
// coordinating the validation pipeline and storage through port interfaces.
package app

import (
	"fmt"
	"time"

	"github.com/jsamuelsen11/todo-backend/internal/app/validate"
	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// EntryBuilder turns creation payloads into fully-formed domain entries by
// composing the UUID and field validators. It performs no persistence.
type EntryBuilder struct {
	uuidValidator  *validate.UUIDValidator
	fieldValidator *validate.FieldValidator
	now            func() time.Time
}

// NewEntryBuilder creates an EntryBuilder using the given validators.
func NewEntryBuilder(uuidValidator *validate.UUIDValidator, fieldValidator *validate.FieldValidator) *EntryBuilder {
	return &EntryBuilder{
		uuidValidator:  uuidValidator,
		fieldValidator: fieldValidator,
		now:            time.Now,
	}
}

// Build validates payload and constructs an entry with creation defaults:
// created_at captured once per call, no updated_at, not deleted, not done.
//
// Validation is all-or-nothing and ordered: id, then title, then
// description. The first failure aborts with no partial construction. The
// id presence check runs before the UUID validator so an absent id is
// reported as missing rather than malformed.
func (b *EntryBuilder) Build(payload *ports.CreateTodoInput) (*todo.Entry, error) {
	if payload == nil {
		return nil, fmt.Errorf("invalid payload: payload cannot be nil: %w", domain.ErrValidation)
	}
	if payload.ID == "" {
		return nil, &domain.ValidationError{
			Fields: map[string]string{"id": domain.MsgRequired},
		}
	}

	id, err := b.uuidValidator.Validate(payload.ID)
	if err != nil {
		return nil, err
	}

	title, err := b.fieldValidator.Required(payload.Title, "title")
	if err != nil {
		return nil, err
	}

	description, err := b.fieldValidator.Optional(payload.Description)
	if err != nil {
		return nil, err
	}

	return &todo.Entry{
		ID:          id,
		Title:       title,
		Description: description,
		CreatedAt:   b.now(),
		UpdatedAt:   nil,
		Deleted:     false,
		Done:        false,
	}, nil
}
