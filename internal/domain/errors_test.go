package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
)

func TestValidationError_MessageSortedByField(t *testing.T) {
	t.Parallel()

	err := &domain.ValidationError{Fields: map[string]string{
		"title": "is required",
		"id":    "must be a valid UUID",
	}}

	want := "validation error: id must be a valid UUID; title is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := &domain.ValidationError{Fields: map[string]string{
		"title": domain.MsgRequired,
	}}

	want := "validation error: title is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	t.Parallel()

	var err error = &domain.ValidationError{Fields: map[string]string{"id": "bad"}}

	if !errors.Is(err, domain.ErrValidation) {
		t.Error("errors.Is(err, ErrValidation) = false, want true")
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("errors.As failed to extract *ValidationError")
	}
	if verr.Fields["id"] != "bad" {
		t.Errorf("Fields = %v, want id entry preserved", verr.Fields)
	}
}

func TestValidationError_SurvivesWrapping(t *testing.T) {
	t.Parallel()

	inner := &domain.ValidationError{Fields: map[string]string{"title": domain.MsgRequired}}
	wrapped := fmt.Errorf("building entry: %w", inner)

	if !errors.Is(wrapped, domain.ErrValidation) {
		t.Error("wrapped error lost the validation sentinel")
	}

	var verr *domain.ValidationError
	if !errors.As(wrapped, &verr) {
		t.Error("wrapped error lost the *ValidationError type")
	}
}

func TestSentinels_Distinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrValidation,
		domain.ErrConflict,
		domain.ErrRepository,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v matches %v, want distinct", a, b)
			}
		}
	}
}
