package tablature_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/simonhull/tablature"
)

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("measures: %w", &tablature.Error{
		Kind:   tablature.KindResourceLimit,
		What:   "beats",
		Offset: 42,
	})

	if !errors.Is(err, tablature.ErrResourceLimit) {
		t.Error("should match ErrResourceLimit")
	}
	if !errors.Is(err, tablature.ErrInvalidData) {
		t.Error("resource limit should match ErrInvalidData")
	}
	if errors.Is(err, tablature.ErrEOF) {
		t.Error("should not match ErrEOF")
	}
	if errors.Is(tablature.ErrInvalidData, tablature.ErrResourceLimit) {
		t.Error("invalid data is not a resource limit")
	}
}

func TestErrorMessage(t *testing.T) {
	err := &tablature.Error{
		Kind:   tablature.KindInvalidData,
		What:   "barre count",
		Offset: 120,
		Reason: "6 barres, at most 5 allowed",
	}
	want := "invalid data at offset 120 while reading barre count: 6 barres, at most 5 allowed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := &tablature.Error{Kind: tablature.KindCancelled, What: "title", Err: context.DeadlineExceeded}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("should unwrap to the context error")
	}
	if !errors.Is(err, tablature.ErrCancelled) {
		t.Error("should match ErrCancelled")
	}
}

func TestWarningString(t *testing.T) {
	w := tablature.Warning{Stage: "beat", Message: "invalid 4-tuplet ignored", Offset: 77}
	if got := w.String(); got != "beat (at offset 77): invalid 4-tuplet ignored" {
		t.Errorf("unexpected warning string %q", got)
	}
}
