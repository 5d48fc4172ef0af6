// Package validate implements the input sanitization pipeline: an injection
// blocklist, UUID canonicalization, and required/optional field semantics.
// All validators are stateless and safe for concurrent use.
package validate

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
)

// injectionPattern rejects comment/operator tokens anywhere in the input and
// SQL keywords as whole words. Whole-word matching keeps legitimate text like
// "This was updated yesterday" valid while still catching an isolated
// "UPDATE". This is a crude blocklist, not a parser; parameterized queries at
// the repository boundary remain the primary defense.
var injectionPattern = regexp.MustCompile(
	`(?i)(--|;|/\*|\*/|\bxp_cmdshell\b|\b(?:drop|delete|insert|update|exec(?:ute)?|union|select|shutdown|create|alter|rename|truncate|declare|or)\b)`,
)

// InputSanitizer validates text input against the injection blocklist and
// trims surrounding whitespace on success.
type InputSanitizer struct {
	logger *slog.Logger
}

// NewInputSanitizer creates an InputSanitizer. A nil logger is replaced with
// a no-op logger.
func NewInputSanitizer(logger *slog.Logger) *InputSanitizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &InputSanitizer{logger: logger}
}

// Sanitize checks value against the injection blocklist and returns the
// trimmed string. A nil value passes through as nil with no error. Values of
// any other non-string type are coerced to their string representation and
// logged at warn level, since they signal an unexpected call site. Rejected
// input is never silently altered; the error carries the offending value.
func (s *InputSanitizer) Sanitize(value any) (*string, error) {
	if value == nil {
		return nil, nil
	}

	str, ok := value.(string)
	if !ok {
		if p, isPtr := value.(*string); isPtr {
			if p == nil {
				return nil, nil
			}
			str = *p
		} else {
			s.logger.Warn("sanitizer received non-string value",
				slog.String("type", fmt.Sprintf("%T", value)),
			)
			str = fmt.Sprint(value)
		}
	}

	if injectionPattern.MatchString(str) {
		s.logger.Warn("injection pattern detected in input", slog.String("value", str))
		return nil, fmt.Errorf("invalid characters or SQL keywords in input %q: %w",
			str, domain.ErrValidation)
	}

	trimmed := strings.TrimSpace(str)
	return &trimmed, nil
}
