// Package profile holds the static category lifecycle table and turns a
// classified material into a profile record.
package profile

import (
	"errors"
	"fmt"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// Table errors.
var (
	ErrIncompleteTable = errors.New("profile table incomplete")
	ErrInvalidRating   = errors.New("invalid rating in profile table")
)

// Table maps each material category to its lifecycle profile.
type Table map[model.Category]model.Profile

func r(impact int, confidence model.Confidence) model.Rating {
	return model.Rating{Impact: impact, Confidence: confidence}
}

const (
	high   = model.ConfidenceHigh
	medium = model.ConfidenceMedium
	low    = model.ConfidenceLow
)

// DefaultTable returns a fresh copy of the built-in lifecycle profiles.
func DefaultTable() Table {
	return Table{
		model.CategoryTimber: {
			model.PhaseRaw:           r(1, high),
			model.PhaseManufacturing: r(2, high),
			model.PhaseTransport:     r(2, medium),
			model.PhaseInstallation:  r(2, high),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(2, medium),
			model.PhaseEndOfLife:     r(1, high),
		},
		model.CategoryMetal: {
			model.PhaseRaw:           r(5, high),
			model.PhaseManufacturing: r(5, high),
			model.PhaseTransport:     r(3, medium),
			model.PhaseInstallation:  r(2, high),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(1, high),
			model.PhaseEndOfLife:     r(1, high),
		},
		model.CategoryConcrete: {
			model.PhaseRaw:           r(3, high),
			model.PhaseManufacturing: r(5, high),
			model.PhaseTransport:     r(3, medium),
			model.PhaseInstallation:  r(3, high),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(1, high),
			model.PhaseEndOfLife:     r(3, medium),
		},
		model.CategoryGlass: {
			model.PhaseRaw:           r(3, high),
			model.PhaseManufacturing: r(4, high),
			model.PhaseTransport:     r(3, medium),
			model.PhaseInstallation:  r(2, high),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(1, high),
			model.PhaseEndOfLife:     r(3, medium),
		},
		model.CategoryCeramic: {
			model.PhaseRaw:           r(2, high),
			model.PhaseManufacturing: r(5, high),
			model.PhaseTransport:     r(3, medium),
			model.PhaseInstallation:  r(2, high),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(1, high),
			model.PhaseEndOfLife:     r(2, medium),
		},
		model.CategoryPlastic: {
			model.PhaseRaw:           r(4, high),
			model.PhaseManufacturing: r(4, high),
			model.PhaseTransport:     r(2, medium),
			model.PhaseInstallation:  r(1, high),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(1, high),
			model.PhaseEndOfLife:     r(4, low),
		},
		model.CategoryBiobased: {
			model.PhaseRaw:           r(1, high),
			model.PhaseManufacturing: r(1, high),
			model.PhaseTransport:     r(2, medium),
			model.PhaseInstallation:  r(2, medium),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(1, high),
			model.PhaseEndOfLife:     r(1, high),
		},
		model.CategoryEarth: {
			model.PhaseRaw:           r(1, high),
			model.PhaseManufacturing: r(1, high),
			model.PhaseTransport:     r(1, high),
			model.PhaseInstallation:  r(2, medium),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(1, high),
			model.PhaseEndOfLife:     r(1, high),
		},
		model.CategoryStone: {
			model.PhaseRaw:           r(3, high),
			model.PhaseManufacturing: r(3, high),
			model.PhaseTransport:     r(4, medium),
			model.PhaseInstallation:  r(2, high),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(1, high),
			model.PhaseEndOfLife:     r(2, medium),
		},
		model.CategoryTextile: {
			model.PhaseRaw:           r(2, medium),
			model.PhaseManufacturing: r(3, medium),
			model.PhaseTransport:     r(2, medium),
			model.PhaseInstallation:  r(1, high),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(2, medium),
			model.PhaseEndOfLife:     r(2, low),
		},
		model.CategoryPaint: {
			model.PhaseRaw:           r(3, medium),
			model.PhaseManufacturing: r(3, medium),
			model.PhaseTransport:     r(2, medium),
			model.PhaseInstallation:  r(2, medium),
			model.PhaseInUse:         r(1, high),
			model.PhaseMaintenance:   r(2, medium),
			model.PhaseEndOfLife:     r(2, low),
		},
	}
}

// Validate checks that every required category has a profile and that every
// profile rates all seven phases with valid values. All problems are reported.
func (t Table) Validate(required []model.Category) error {
	var errs []error

	for _, c := range required {
		if _, ok := t[c]; !ok {
			errs = append(errs, fmt.Errorf("%w: no profile for category %q", ErrIncompleteTable, c))
		}
	}

	for _, c := range model.AllCategories() {
		p, ok := t[c]
		if !ok {
			continue
		}
		for _, phase := range model.Phases() {
			rating, ok := p[phase]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s has no %s rating", ErrIncompleteTable, c, phase))
				continue
			}
			if err := rating.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s/%s: %w", ErrInvalidRating, c, phase, err))
			}
		}
		if len(p) > len(model.Phases()) {
			errs = append(errs, fmt.Errorf("%w: %s rates unknown phases", ErrInvalidRating, c))
		}
	}

	for c := range t {
		if !c.Valid() {
			errs = append(errs, fmt.Errorf("%w: %q", model.ErrUnknownCategory, c))
		}
	}

	return errors.Join(errs...)
}
