package profile

import (
	"fmt"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// Synthesizer renders profile records from a validated table.
type Synthesizer struct {
	table Table
}

// NewSynthesizer validates table against the categories a classifier can
// produce and keeps a private copy of it.
func NewSynthesizer(table Table, required []model.Category) (*Synthesizer, error) {
	if err := table.Validate(required); err != nil {
		return nil, err
	}

	own := make(Table, len(table))
	for c, p := range table {
		cp := make(model.Profile, len(p))
		for phase, rating := range p {
			cp[phase] = rating
		}
		own[c] = cp
	}

	return &Synthesizer{table: own}, nil
}

// Synthesize builds the record for materialID using the category's profile.
// A category missing from the table means the classifier and table disagree
// and is returned as model.ErrUnknownCategory.
func (s *Synthesizer) Synthesize(materialID string, category model.Category) (model.ProfileRecord, error) {
	p, ok := s.table[category]
	if !ok {
		return model.ProfileRecord{}, fmt.Errorf("%w: no profile for %q", model.ErrUnknownCategory, category)
	}

	record := model.ProfileRecord{
		MaterialID: materialID,
		Category:   category,
		Phases:     make([]model.PhaseRating, 0, len(model.Phases())),
	}
	for _, phase := range model.Phases() {
		record.Phases = append(record.Phases, model.PhaseRating{
			Phase:  phase,
			Rating: p[phase],
		})
	}

	return record, nil
}

// Profile returns a copy of the profile for category.
func (s *Synthesizer) Profile(category model.Category) (model.Profile, bool) {
	p, ok := s.table[category]
	if !ok {
		return nil, false
	}
	cp := make(model.Profile, len(p))
	for phase, rating := range p {
		cp[phase] = rating
	}
	return cp, true
}
