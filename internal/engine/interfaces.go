package engine

import "github.com/Veraticus/lifecycle-profiles/internal/model"

// Classifier defines the contract for material categorization.
type Classifier interface {
	ClassifyMaterial(m model.Material) model.Category
}

// Synthesizer defines the contract for turning a category into a profile record.
type Synthesizer interface {
	Synthesize(materialID string, category model.Category) (model.ProfileRecord, error)
}

// ProgressFunc is called after each material is processed.
type ProgressFunc func(done, total int, m model.Material)
