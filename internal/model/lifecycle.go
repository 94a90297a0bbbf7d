package model

import (
	"errors"
	"fmt"
	"strings"
)

// Lifecycle validation errors.
var (
	ErrUnknownCategory   = errors.New("unknown material category")
	ErrUnknownPhase      = errors.New("unknown lifecycle phase")
	ErrInvalidImpact     = errors.New("impact must be between 1 and 5")
	ErrInvalidConfidence = errors.New("invalid confidence")
)

// Impact bounds.
const (
	MinImpact = 1
	MaxImpact = 5
)

// Category is a coarse material-type bucket sharing one lifecycle profile.
type Category string

// Material categories. The set is closed.
const (
	CategoryTimber   Category = "timber"
	CategoryMetal    Category = "metal"
	CategoryConcrete Category = "concrete"
	CategoryGlass    Category = "glass"
	CategoryCeramic  Category = "ceramic"
	CategoryPlastic  Category = "plastic"
	CategoryBiobased Category = "biobased"
	CategoryEarth    Category = "earth"
	CategoryStone    Category = "stone"
	CategoryTextile  Category = "textile"
	CategoryPaint    Category = "paint"
)

var allCategories = []Category{
	CategoryTimber,
	CategoryMetal,
	CategoryConcrete,
	CategoryGlass,
	CategoryCeramic,
	CategoryPlastic,
	CategoryBiobased,
	CategoryEarth,
	CategoryStone,
	CategoryTextile,
	CategoryPaint,
}

// AllCategories returns every known category.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a user-supplied string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Phase is one stage of a material's life.
type Phase string

// Lifecycle phases, in order.
const (
	PhaseRaw           Phase = "raw"
	PhaseManufacturing Phase = "manufacturing"
	PhaseTransport     Phase = "transport"
	PhaseInstallation  Phase = "installation"
	PhaseInUse         Phase = "in-use"
	PhaseMaintenance   Phase = "maintenance"
	PhaseEndOfLife     Phase = "end-of-life"
)

var phases = []Phase{
	PhaseRaw,
	PhaseManufacturing,
	PhaseTransport,
	PhaseInstallation,
	PhaseInUse,
	PhaseMaintenance,
	PhaseEndOfLife,
}

// Phases returns the seven lifecycle phases in their fixed order.
func Phases() []Phase {
	out := make([]Phase, len(phases))
	copy(out, phases)
	return out
}

// FieldName returns the camelCase key used for the phase in the constants file.
func (p Phase) FieldName() string {
	switch p {
	case PhaseInUse:
		return "inUse"
	case PhaseEndOfLife:
		return "endOfLife"
	default:
		return string(p)
	}
}

// PhaseFromFieldName is the inverse of FieldName.
func PhaseFromFieldName(name string) (Phase, error) {
	for _, p := range phases {
		if p.FieldName() == name || string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPhase, name)
}

// Confidence expresses how certain an impact rating is.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is a known confidence level.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// Rating is the impact score of a single phase.
type Rating struct {
	Confidence Confidence `json:"confidence" yaml:"confidence"`
	Impact     int        `json:"impact" yaml:"impact"`
}

// Validate checks the impact range and confidence label.
func (r Rating) Validate() error {
	if r.Impact < MinImpact || r.Impact > MaxImpact {
		return fmt.Errorf("%w: got %d", ErrInvalidImpact, r.Impact)
	}
	if !r.Confidence.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidConfidence, r.Confidence)
	}
	return nil
}

// Profile maps every lifecycle phase to its rating.
type Profile map[Phase]Rating

// PhaseRating pairs a phase with its rating inside a ProfileRecord.
type PhaseRating struct {
	Phase  Phase `json:"phase" yaml:"phase"`
	Rating `yaml:",inline"`
}

// ProfileRecord is the synthesized lifecycle profile for one material.
type ProfileRecord struct {
	MaterialID string        `json:"material_id" yaml:"material_id"`
	Category   Category      `json:"category" yaml:"category"`
	Phases     []PhaseRating `json:"phases" yaml:"phases"`
}

// Get returns the rating for phase, if present.
func (r ProfileRecord) Get(phase Phase) (Rating, bool) {
	for _, pr := range r.Phases {
		if pr.Phase == phase {
			return pr.Rating, true
		}
	}
	return Rating{}, false
}
