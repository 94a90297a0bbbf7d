package profile

import (
	"testing"

	"github.com/Veraticus/lifecycle-profiles/internal/classification"
	"github.com/Veraticus/lifecycle-profiles/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable_CoversClassifier(t *testing.T) {
	c, err := classification.NewDefaultClassifier()
	require.NoError(t, err)

	table := DefaultTable()
	require.NoError(t, table.Validate(c.Categories()))

	for _, category := range c.Categories() {
		_, ok := table[category]
		assert.True(t, ok, "missing profile for %s", category)
	}
	assert.Len(t, table, len(model.AllCategories()))
}

func TestDefaultTable_Values(t *testing.T) {
	tests := []struct {
		category   model.Category
		phase      model.Phase
		impact     int
		confidence model.Confidence
	}{
		{model.CategoryTimber, model.PhaseRaw, 1, model.ConfidenceHigh},
		{model.CategoryTimber, model.PhaseManufacturing, 2, model.ConfidenceHigh},
		{model.CategoryTimber, model.PhaseTransport, 2, model.ConfidenceMedium},
		{model.CategoryTimber, model.PhaseInstallation, 2, model.ConfidenceHigh},
		{model.CategoryTimber, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryTimber, model.PhaseMaintenance, 2, model.ConfidenceMedium},
		{model.CategoryTimber, model.PhaseEndOfLife, 1, model.ConfidenceHigh},
		{model.CategoryMetal, model.PhaseRaw, 5, model.ConfidenceHigh},
		{model.CategoryMetal, model.PhaseManufacturing, 5, model.ConfidenceHigh},
		{model.CategoryMetal, model.PhaseTransport, 3, model.ConfidenceMedium},
		{model.CategoryMetal, model.PhaseInstallation, 2, model.ConfidenceHigh},
		{model.CategoryMetal, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryMetal, model.PhaseMaintenance, 1, model.ConfidenceHigh},
		{model.CategoryMetal, model.PhaseEndOfLife, 1, model.ConfidenceHigh},
		{model.CategoryConcrete, model.PhaseRaw, 3, model.ConfidenceHigh},
		{model.CategoryConcrete, model.PhaseManufacturing, 5, model.ConfidenceHigh},
		{model.CategoryConcrete, model.PhaseTransport, 3, model.ConfidenceMedium},
		{model.CategoryConcrete, model.PhaseInstallation, 3, model.ConfidenceHigh},
		{model.CategoryConcrete, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryConcrete, model.PhaseMaintenance, 1, model.ConfidenceHigh},
		{model.CategoryConcrete, model.PhaseEndOfLife, 3, model.ConfidenceMedium},
		{model.CategoryGlass, model.PhaseRaw, 3, model.ConfidenceHigh},
		{model.CategoryGlass, model.PhaseManufacturing, 4, model.ConfidenceHigh},
		{model.CategoryGlass, model.PhaseTransport, 3, model.ConfidenceMedium},
		{model.CategoryGlass, model.PhaseInstallation, 2, model.ConfidenceHigh},
		{model.CategoryGlass, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryGlass, model.PhaseMaintenance, 1, model.ConfidenceHigh},
		{model.CategoryGlass, model.PhaseEndOfLife, 3, model.ConfidenceMedium},
		{model.CategoryCeramic, model.PhaseRaw, 2, model.ConfidenceHigh},
		{model.CategoryCeramic, model.PhaseManufacturing, 5, model.ConfidenceHigh},
		{model.CategoryCeramic, model.PhaseTransport, 3, model.ConfidenceMedium},
		{model.CategoryCeramic, model.PhaseInstallation, 2, model.ConfidenceHigh},
		{model.CategoryCeramic, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryCeramic, model.PhaseMaintenance, 1, model.ConfidenceHigh},
		{model.CategoryCeramic, model.PhaseEndOfLife, 2, model.ConfidenceMedium},
		{model.CategoryPlastic, model.PhaseRaw, 4, model.ConfidenceHigh},
		{model.CategoryPlastic, model.PhaseManufacturing, 4, model.ConfidenceHigh},
		{model.CategoryPlastic, model.PhaseTransport, 2, model.ConfidenceMedium},
		{model.CategoryPlastic, model.PhaseInstallation, 1, model.ConfidenceHigh},
		{model.CategoryPlastic, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryPlastic, model.PhaseMaintenance, 1, model.ConfidenceHigh},
		{model.CategoryPlastic, model.PhaseEndOfLife, 4, model.ConfidenceLow},
		{model.CategoryBiobased, model.PhaseRaw, 1, model.ConfidenceHigh},
		{model.CategoryBiobased, model.PhaseManufacturing, 1, model.ConfidenceHigh},
		{model.CategoryBiobased, model.PhaseTransport, 2, model.ConfidenceMedium},
		{model.CategoryBiobased, model.PhaseInstallation, 2, model.ConfidenceMedium},
		{model.CategoryBiobased, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryBiobased, model.PhaseMaintenance, 1, model.ConfidenceHigh},
		{model.CategoryBiobased, model.PhaseEndOfLife, 1, model.ConfidenceHigh},
		{model.CategoryEarth, model.PhaseRaw, 1, model.ConfidenceHigh},
		{model.CategoryEarth, model.PhaseManufacturing, 1, model.ConfidenceHigh},
		{model.CategoryEarth, model.PhaseTransport, 1, model.ConfidenceHigh},
		{model.CategoryEarth, model.PhaseInstallation, 2, model.ConfidenceMedium},
		{model.CategoryEarth, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryEarth, model.PhaseMaintenance, 1, model.ConfidenceHigh},
		{model.CategoryEarth, model.PhaseEndOfLife, 1, model.ConfidenceHigh},
		{model.CategoryStone, model.PhaseRaw, 3, model.ConfidenceHigh},
		{model.CategoryStone, model.PhaseManufacturing, 3, model.ConfidenceHigh},
		{model.CategoryStone, model.PhaseTransport, 4, model.ConfidenceMedium},
		{model.CategoryStone, model.PhaseInstallation, 2, model.ConfidenceHigh},
		{model.CategoryStone, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryStone, model.PhaseMaintenance, 1, model.ConfidenceHigh},
		{model.CategoryStone, model.PhaseEndOfLife, 2, model.ConfidenceMedium},
		{model.CategoryTextile, model.PhaseRaw, 2, model.ConfidenceMedium},
		{model.CategoryTextile, model.PhaseManufacturing, 3, model.ConfidenceMedium},
		{model.CategoryTextile, model.PhaseTransport, 2, model.ConfidenceMedium},
		{model.CategoryTextile, model.PhaseInstallation, 1, model.ConfidenceHigh},
		{model.CategoryTextile, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryTextile, model.PhaseMaintenance, 2, model.ConfidenceMedium},
		{model.CategoryTextile, model.PhaseEndOfLife, 2, model.ConfidenceLow},
		{model.CategoryPaint, model.PhaseRaw, 3, model.ConfidenceMedium},
		{model.CategoryPaint, model.PhaseManufacturing, 3, model.ConfidenceMedium},
		{model.CategoryPaint, model.PhaseTransport, 2, model.ConfidenceMedium},
		{model.CategoryPaint, model.PhaseInstallation, 2, model.ConfidenceMedium},
		{model.CategoryPaint, model.PhaseInUse, 1, model.ConfidenceHigh},
		{model.CategoryPaint, model.PhaseMaintenance, 2, model.ConfidenceMedium},
		{model.CategoryPaint, model.PhaseEndOfLife, 2, model.ConfidenceLow},
	}

	require.Len(t, tests, len(model.AllCategories())*len(model.Phases()))

	table := DefaultTable()
	for _, tt := range tests {
		t.Run(string(tt.category)+"/"+string(tt.phase), func(t *testing.T) {
			got, ok := table[tt.category][tt.phase]
			require.True(t, ok)
			assert.Equal(t, model.Rating{Impact: tt.impact, Confidence: tt.confidence}, got)
		})
	}
}

func TestDefaultTable_RatingsInRange(t *testing.T) {
	for category, p := range DefaultTable() {
		require.Len(t, p, len(model.Phases()), category)
		for phase, rating := range p {
			assert.GreaterOrEqual(t, rating.Impact, model.MinImpact, "%s/%s", category, phase)
			assert.LessOrEqual(t, rating.Impact, model.MaxImpact, "%s/%s", category, phase)
			assert.True(t, rating.Confidence.Valid(), "%s/%s", category, phase)
		}
	}
}

func TestDefaultTable_ReturnsCopy(t *testing.T) {
	a := DefaultTable()
	a[model.CategoryTimber][model.PhaseRaw] = model.Rating{Impact: 5, Confidence: model.ConfidenceLow}

	b := DefaultTable()
	assert.Equal(t, 1, b[model.CategoryTimber][model.PhaseRaw].Impact)
}

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		mutate   func(Table)
		name     string
		wantErr  error
		required []model.Category
	}{
		{
			name:     "complete",
			mutate:   func(Table) {},
			required: model.AllCategories(),
		},
		{
			name:     "missing category",
			mutate:   func(tb Table) { delete(tb, model.CategoryPaint) },
			required: model.AllCategories(),
			wantErr:  ErrIncompleteTable,
		},
		{
			name:     "missing category not required",
			mutate:   func(tb Table) { delete(tb, model.CategoryPaint) },
			required: []model.Category{model.CategoryTimber},
		},
		{
			name:     "missing phase",
			mutate:   func(tb Table) { delete(tb[model.CategoryGlass], model.PhaseEndOfLife) },
			required: model.AllCategories(),
			wantErr:  ErrIncompleteTable,
		},
		{
			name: "impact out of range",
			mutate: func(tb Table) {
				tb[model.CategoryMetal][model.PhaseRaw] = model.Rating{Impact: 6, Confidence: model.ConfidenceHigh}
			},
			required: model.AllCategories(),
			wantErr:  model.ErrInvalidImpact,
		},
		{
			name: "bad confidence",
			mutate: func(tb Table) {
				tb[model.CategoryMetal][model.PhaseRaw] = model.Rating{Impact: 3, Confidence: "certain"}
			},
			required: model.AllCategories(),
			wantErr:  model.ErrInvalidConfidence,
		},
		{
			name: "unknown category",
			mutate: func(tb Table) {
				tb["unobtainium"] = tb[model.CategoryMetal]
			},
			required: model.AllCategories(),
			wantErr:  model.ErrUnknownCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := DefaultTable()
			tt.mutate(table)

			err := table.Validate(tt.required)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTable_Validate_ReportsEveryProblem(t *testing.T) {
	table := DefaultTable()
	delete(table, model.CategoryPaint)
	delete(table, model.CategoryTextile)

	err := table.Validate(model.AllCategories())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"paint"`)
	assert.Contains(t, err.Error(), `"textile"`)
}
