package validate

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
)

// UUIDValidator normalizes identifiers into canonical uuid.UUID values.
type UUIDValidator struct {
	logger *slog.Logger
}

// NewUUIDValidator creates a UUIDValidator. A nil logger is replaced with a
// no-op logger.
func NewUUIDValidator(logger *slog.Logger) *UUIDValidator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &UUIDValidator{logger: logger}
}

// Validate returns the canonical UUID for value. A uuid.UUID passes through
// unchanged. Anything else is rendered to its string form and parsed,
// accepting hyphenated, bare-hex, braced, and URN representations in any
// case. Two textual variants of the same 128-bit value validate to equal
// UUIDs. Parse failures wrap domain.ErrValidation and are logged at warn.
func (v *UUIDValidator) Validate(value any) (uuid.UUID, error) {
	if id, ok := value.(uuid.UUID); ok {
		return id, nil
	}

	id, err := uuid.Parse(fmt.Sprint(value))
	if err != nil {
		v.logger.Warn("invalid UUID provided", slog.Any("value", value))
		return uuid.Nil, fmt.Errorf("invalid UUID %v: %w", value, domain.ErrValidation)
	}
	return id, nil
}
