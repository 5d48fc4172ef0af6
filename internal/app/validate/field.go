package validate

import (
	"log/slog"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
)

// FieldValidator layers required/optional semantics on top of InputSanitizer.
// Both paths reject injection identically; they differ only in how absence
// is handled.
type FieldValidator struct {
	sanitizer *InputSanitizer
	logger    *slog.Logger
}

// NewFieldValidator creates a FieldValidator delegating to the given
// sanitizer. A nil logger is replaced with a no-op logger.
func NewFieldValidator(sanitizer *InputSanitizer, logger *slog.Logger) *FieldValidator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FieldValidator{sanitizer: sanitizer, logger: logger}
}

// Required sanitizes value and fails when the result is empty or nil. The
// returned error names the field ("<fieldName> is required").
func (f *FieldValidator) Required(value any, fieldName string) (string, error) {
	sanitized, err := f.sanitizer.Sanitize(value)
	if err != nil {
		return "", err
	}
	if sanitized == nil || *sanitized == "" {
		f.logger.Warn("required field is empty", slog.String("field", fieldName))
		return "", &domain.ValidationError{
			Fields: map[string]string{fieldName: domain.MsgRequired},
		}
	}
	return *sanitized, nil
}

// Optional sanitizes value, normalizing an empty or nil result to the empty
// string. Absence is never an error on this path.
func (f *FieldValidator) Optional(value any) (string, error) {
	sanitized, err := f.sanitizer.Sanitize(value)
	if err != nil {
		return "", err
	}
	if sanitized == nil {
		return "", nil
	}
	return *sanitized, nil
}

// Validate dispatches to Required or Optional for interface uniformity.
func (f *FieldValidator) Validate(value any, fieldName string, required bool) (string, error) {
	if required {
		return f.Required(value, fieldName)
	}
	return f.Optional(value)
}
