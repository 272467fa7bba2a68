package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("scoring.rarity", "required")

	if got := err.Error(); got != "validation: scoring.rarity: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "answer", Message: "required"},
		{Field: "count", Message: "must be >= 0"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestMalformedGridError(t *testing.T) {
	t.Parallel()

	err := &MalformedGridError{Row: 2, Reason: "row has 4 cells, want 5"}
	if got := err.Error(); got != "malformed grid: row 2: row has 4 cells, want 5" {
		t.Fatalf("unexpected Error(): %q", got)
	}

	wrapped := fmt.Errorf("load puzzle: %w", err)
	if !errors.Is(wrapped, ErrMalformedGrid) {
		t.Fatal("wrapped MalformedGridError should match ErrMalformedGrid")
	}

	var mg *MalformedGridError
	if !errors.As(wrapped, &mg) || mg.Row != 2 {
		t.Fatalf("errors.As failed or wrong row: %+v", mg)
	}

	noRow := &MalformedGridError{Row: -1, Reason: "grid has no rows"}
	if got := noRow.Error(); got != "malformed grid: grid has no rows" {
		t.Fatalf("unexpected Error(): %q", got)
	}
}

func TestUnknownAlgorithmError(t *testing.T) {
	t.Parallel()

	err := &UnknownAlgorithmError{Kind: "rarity", Name: "magic", Known: []string{"unsplit", "split_avg"}}
	if got := err.Error(); got != `unknown rarity algorithm "magic" (known: unsplit, split_avg)` {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatal("errors.Is(err, ErrUnknownAlgorithm) = false")
	}
}

func TestWordError_Unwrap(t *testing.T) {
	t.Parallel()

	err := &WordError{Word: "1234", Err: ErrInvalidWord}
	if !errors.Is(err, ErrInvalidWord) {
		t.Fatal("WordError should unwrap to its cause")
	}
	if got := err.Error(); got != `word "1234": invalid word` {
		t.Fatalf("unexpected Error(): %q", got)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrValidation, ErrMalformedGrid,
		ErrUnknownAlgorithm, ErrInvalidWord, ErrLookupFailed,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
