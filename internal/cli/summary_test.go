package cli

import (
	"testing"
	"time"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(GenerationSummary{
		Total:      5,
		Generated:  3,
		Existing:   1,
		Duplicates: 1,
		Duration:   1500 * time.Millisecond,
		Breakdown: []CategoryCount{
			{Category: model.CategoryTimber, Count: 2},
			{Category: model.CategoryMetal, Count: 1},
		},
		Destination: "constants.ts",
	})

	assert.Contains(t, out, "Lifecycle Profiles")
	assert.Contains(t, out, "Materials read: 5")
	assert.Contains(t, out, "Already profiled: 1")
	assert.Contains(t, out, "Duplicate IDs skipped: 1")
	assert.Contains(t, out, "timber")
	assert.Contains(t, out, "Written to constants.ts")
	assert.NotContains(t, out, "Materials without ID")
}

func TestRenderSummary_DryRun(t *testing.T) {
	out := RenderSummary(GenerationSummary{DryRun: true, Destination: "constants.ts"})
	assert.Contains(t, out, "Dry run")
	assert.NotContains(t, out, "Written to")
}

func TestRenderProfile(t *testing.T) {
	out := RenderProfile(model.CategoryTimber, model.Profile{
		model.PhaseRaw: {Impact: 1, Confidence: model.ConfidenceHigh},
	})

	assert.Contains(t, out, "timber")
	assert.Contains(t, out, "raw")
	assert.Contains(t, out, "(high)")
	assert.Contains(t, out, "end-of-life")
	assert.Contains(t, out, "missing")
}

func TestImpactStyle(t *testing.T) {
	assert.Equal(t, SuccessStyle.Render("x"), ImpactStyle(1).Render("x"))
	assert.Equal(t, ErrorStyle.Render("x"), ImpactStyle(5).Render("x"))
}
