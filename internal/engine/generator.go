// Package engine generates lifecycle profile records for materials that do not
// have one yet.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// Generator classifies materials and synthesizes their profile records.
type Generator struct {
	classifier  Classifier
	synthesizer Synthesizer
	progress    ProgressFunc
}

// Config holds optional generator settings.
type Config struct {
	Progress ProgressFunc
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{}
}

// New creates a generator with the default configuration.
func New(classifier Classifier, synthesizer Synthesizer) *Generator {
	return NewWithConfig(classifier, synthesizer, DefaultConfig())
}

// NewWithConfig creates a generator with custom configuration.
func NewWithConfig(classifier Classifier, synthesizer Synthesizer, config Config) *Generator {
	return &Generator{
		classifier:  classifier,
		synthesizer: synthesizer,
		progress:    config.Progress,
	}
}

// Stats summarizes a generation run.
type Stats struct {
	ByCategory map[model.Category]int
	Total      int
	Generated  int
	Existing   int
	Duplicates int
	Invalid    int
	Duration   time.Duration
}

// Result holds the generated records and the IDs that were passed over.
type Result struct {
	Records []model.ProfileRecord
	Skipped []string
	Stats   Stats
}

// Generate produces a record for every material whose ID is not in existing.
// Repeated IDs in the input are generated once. Materials without an ID are
// skipped. A synthesis failure aborts the run since it means the classifier
// and profile table disagree.
func (g *Generator) Generate(ctx context.Context, materials []model.Material, existing map[string]bool) (*Result, error) {
	start := time.Now()
	slog.Info("Starting profile generation", "materials", len(materials), "existing_profiles", len(existing))

	result := &Result{
		Records: make([]model.ProfileRecord, 0, len(materials)),
		Stats: Stats{
			Total:      len(materials),
			ByCategory: make(map[model.Category]int),
		},
	}
	seen := make(map[string]bool, len(materials))

	for i, m := range materials {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		id := strings.TrimSpace(m.ID)
		switch {
		case id == "":
			slog.Warn("Skipping material without ID", "name", m.Name)
			result.Stats.Invalid++
		case existing[id]:
			slog.Debug("Profile already exists", "material_id", id)
			result.Skipped = append(result.Skipped, id)
			result.Stats.Existing++
		case seen[id]:
			slog.Warn("Duplicate material ID", "material_id", id)
			result.Stats.Duplicates++
		default:
			seen[id] = true

			category := g.classifier.ClassifyMaterial(m)
			record, err := g.synthesizer.Synthesize(id, category)
			if err != nil {
				return nil, fmt.Errorf("failed to synthesize profile for %s: %w", id, err)
			}

			slog.Debug("Generated profile",
				"material_id", id,
				"name", m.Name,
				"category", category)

			result.Records = append(result.Records, record)
			result.Stats.Generated++
			result.Stats.ByCategory[category]++
		}

		if g.progress != nil {
			g.progress(i+1, len(materials), m)
		}
	}

	result.Stats.Duration = time.Since(start)

	slog.Info("Profile generation complete",
		"generated", result.Stats.Generated,
		"existing", result.Stats.Existing,
		"duplicates", result.Stats.Duplicates,
		"invalid", result.Stats.Invalid,
		"duration", result.Stats.Duration)

	return result, nil
}

// CategoryCount is one row of a category breakdown.
type CategoryCount struct {
	Category model.Category
	Count    int
}

// Breakdown returns the per-category counts, largest first.
func (s Stats) Breakdown() []CategoryCount {
	out := make([]CategoryCount, 0, len(s.ByCategory))
	for c, n := range s.ByCategory {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}
