// Package storage provides the data persistence layer for materials and their
// lifecycle profiles.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidRecord   = errors.New("invalid profile record")
	ErrInvalidMaterial = errors.New("invalid material")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateMaterial validates a single material.
func validateMaterial(m *model.Material) error {
	if m == nil {
		return fmt.Errorf("%w: material", ErrNilParameter)
	}
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidMaterial)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: %s missing name", ErrInvalidMaterial, m.ID)
	}
	return nil
}

// validateRecord checks that a record is complete before it is stored.
func validateRecord(r *model.ProfileRecord) error {
	if r == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if strings.TrimSpace(r.MaterialID) == "" {
		return fmt.Errorf("%w: missing material ID", ErrInvalidRecord)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("%w: %s: %w", ErrInvalidRecord, r.MaterialID, model.ErrUnknownCategory)
	}
	if len(r.Phases) != len(model.Phases()) {
		return fmt.Errorf("%w: %s has %d phases, want %d", ErrInvalidRecord, r.MaterialID, len(r.Phases), len(model.Phases()))
	}
	for i, phase := range model.Phases() {
		if r.Phases[i].Phase != phase {
			return fmt.Errorf("%w: %s phase %d is %q, want %q", ErrInvalidRecord, r.MaterialID, i, r.Phases[i].Phase, phase)
		}
		if err := r.Phases[i].Validate(); err != nil {
			return fmt.Errorf("%w: %s/%s: %w", ErrInvalidRecord, r.MaterialID, phase, err)
		}
	}
	return nil
}
