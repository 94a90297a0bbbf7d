package classification

import (
	"context"
	"testing"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassifier(t *testing.T) {
	tests := []struct {
		name     string
		errMsg   string
		fallback model.Category
		rules    []Rule
		wantErr  bool
	}{
		{
			name:     "default rules",
			rules:    DefaultRules(),
			fallback: DefaultCategory,
		},
		{
			name:     "invalid regex",
			rules:    []Rule{{Category: model.CategoryMetal, Pattern: `[invalid regex`}},
			fallback: DefaultCategory,
			wantErr:  true,
			errMsg:   "failed to compile pattern",
		},
		{
			name:     "empty rules",
			rules:    []Rule{},
			fallback: DefaultCategory,
			wantErr:  true,
			errMsg:   "no classification rules",
		},
		{
			name:     "unknown rule category",
			rules:    []Rule{{Category: "unobtainium", Pattern: `unobtainium`}},
			fallback: DefaultCategory,
			wantErr:  true,
			errMsg:   "unknown material category",
		},
		{
			name:     "unknown fallback",
			rules:    []Rule{{Category: model.CategoryMetal, Pattern: `steel`}},
			fallback: "plasma",
			wantErr:  true,
			errMsg:   "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClassifier(tt.rules, tt.fallback)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, c)
			assert.Len(t, c.Rules(), len(tt.rules))
		})
	}
}

func TestClassifier_PreservesRuleOrder(t *testing.T) {
	c, err := NewDefaultClassifier()
	require.NoError(t, err)

	want := []model.Category{
		model.CategoryTimber,
		model.CategoryMetal,
		model.CategoryConcrete,
		model.CategoryGlass,
		model.CategoryCeramic,
		model.CategoryPlastic,
		model.CategoryBiobased,
		model.CategoryEarth,
		model.CategoryStone,
		model.CategoryTextile,
		model.CategoryPaint,
	}

	rules := c.Rules()
	require.Len(t, rules, len(want))
	for i, rule := range rules {
		assert.Equal(t, want[i], rule.Category, "rule %d", i)
	}
}

func TestClassifier_Classify(t *testing.T) {
	c, err := NewDefaultClassifier()
	require.NoError(t, err)

	tests := []struct {
		name        string
		material    string
		description string
		want        model.Category
		keywords    []string
	}{
		{
			name:        "oak flooring",
			material:    "Oak Flooring",
			description: "solid oak boards",
			keywords:    []string{"wood", "flooring"},
			want:        model.CategoryTimber,
		},
		{
			name:        "metal wins over glass",
			material:    "steel-framed glass partition",
			description: "partition of glass panes held in steel",
			want:        model.CategoryMetal,
		},
		{
			name:     "unmatched falls back to concrete",
			material: "widget",
			want:     model.CategoryConcrete,
		},
		{
			name:        "match from keywords only",
			material:    "Acoustic Panel",
			description: "sound absorbing",
			keywords:    []string{"Hemp"},
			want:        model.CategoryBiobased,
		},
		{
			name:     "case insensitive",
			material: "POLISHED GRANITE WORKTOP",
			want:     model.CategoryStone,
		},
		{
			name:     "timber",
			material: "Timber Frame",
			want:     model.CategoryTimber,
		},
		{
			name:     "bamboo is timber",
			material: "Bamboo Flooring",
			want:     model.CategoryTimber,
		},
		{
			name:     "larch",
			material: "Larch Cladding",
			want:     model.CategoryTimber,
		},
		{
			name:     "cedar",
			material: "Cedar Shingles",
			want:     model.CategoryTimber,
		},
		{
			name:     "plywood",
			material: "Plywood Sheathing",
			want:     model.CategoryTimber,
		},
		{
			name:     "metal",
			material: "Expanded Metal Mesh",
			want:     model.CategoryMetal,
		},
		{
			name:     "aluminium",
			material: "Aluminium Window Frame",
			want:     model.CategoryMetal,
		},
		{
			name:     "aluminum",
			material: "Anodized Aluminum",
			want:     model.CategoryMetal,
		},
		{
			name:     "brass",
			material: "Brass Handle",
			want:     model.CategoryMetal,
		},
		{
			name:     "copper",
			material: "Copper Cladding",
			want:     model.CategoryMetal,
		},
		{
			name:     "zinc",
			material: "Zinc Roof",
			want:     model.CategoryMetal,
		},
		{
			name:     "concrete",
			material: "Precast Concrete",
			want:     model.CategoryConcrete,
		},
		{
			name:     "microcement",
			material: "Microcement Floor",
			want:     model.CategoryConcrete,
		},
		{
			name:     "cement",
			material: "Cement Board",
			want:     model.CategoryConcrete,
		},
		{
			name:     "glass",
			material: "Float Glass",
			want:     model.CategoryGlass,
		},
		{
			name:     "glazing",
			material: "Triple Glazing Unit",
			want:     model.CategoryGlass,
		},
		{
			name:     "ceramic",
			material: "Ceramic Basin",
			want:     model.CategoryCeramic,
		},
		{
			name:     "terracotta",
			material: "Terracotta Rainscreen",
			want:     model.CategoryCeramic,
		},
		{
			name:     "porcelain before stone",
			material: "Porcelain Stoneware",
			want:     model.CategoryCeramic,
		},
		{
			name:     "clay render is ceramic",
			material: "Clay Render",
			want:     model.CategoryCeramic,
		},
		{
			name:     "brick",
			material: "Reclaimed Brick",
			want:     model.CategoryCeramic,
		},
		{
			name:     "plastic",
			material: "Plastic Sheet",
			want:     model.CategoryPlastic,
		},
		{
			name:        "vinyl",
			material:    "Sheet Vinyl",
			description: "flexible floor covering",
			want:        model.CategoryPlastic,
		},
		{
			name:     "upvc",
			material: "uPVC Window",
			want:     model.CategoryPlastic,
		},
		{
			name:     "composite",
			material: "Composite Decking",
			want:     model.CategoryPlastic,
		},
		{
			name:     "grp",
			material: "GRP Panel",
			want:     model.CategoryPlastic,
		},
		{
			name:     "pet before felt",
			material: "Recycled PET Felt",
			want:     model.CategoryPlastic,
		},
		{
			name:     "epoxy",
			material: "Epoxy Floor",
			want:     model.CategoryPlastic,
		},
		{
			name:     "resin",
			material: "Resin Bound Gravel",
			want:     model.CategoryPlastic,
		},
		{
			name:     "cork",
			material: "Cork Board",
			want:     model.CategoryBiobased,
		},
		{
			name:     "mycelium",
			material: "Mycelium Panel",
			want:     model.CategoryBiobased,
		},
		{
			name:     "bio-based",
			material: "Bio-based Insulation",
			want:     model.CategoryBiobased,
		},
		{
			name:     "biobased",
			material: "Biobased Board",
			want:     model.CategoryBiobased,
		},
		{
			name:     "wool felt",
			material: "Wool Felt Panel",
			want:     model.CategoryBiobased,
		},
		{
			name:        "rammed earth",
			material:    "Rammed Earth Wall",
			description: "compacted subsoil",
			want:        model.CategoryEarth,
		},
		{
			name:     "lime plaster",
			material: "Lime Plaster",
			want:     model.CategoryEarth,
		},
		{
			name:     "render",
			material: "Rendered Facade",
			want:     model.CategoryEarth,
		},
		{
			name:     "stone",
			material: "Natural Stone",
			want:     model.CategoryStone,
		},
		{
			name:     "marble",
			material: "Marble Countertop",
			want:     model.CategoryStone,
		},
		{
			name:     "slate",
			material: "Slate Roofing",
			want:     model.CategoryStone,
		},
		{
			name:     "travertine",
			material: "Travertine Paver",
			want:     model.CategoryStone,
		},
		{
			name:     "fabric",
			material: "Linen Fabric",
			want:     model.CategoryTextile,
		},
		{
			name:     "leather",
			material: "Leather Upholstered Bench",
			want:     model.CategoryTextile,
		},
		{
			name:     "upholster",
			material: "Upholstery Panel",
			want:     model.CategoryTextile,
		},
		{
			name:     "carpet matches pet",
			material: "Wool Carpet",
			want:     model.CategoryPlastic,
		},
		{
			name:     "textile matches tile",
			material: "Textile Wall Covering",
			want:     model.CategoryCeramic,
		},
		{
			name:        "paint",
			material:    "Mineral Paint",
			description: "silicate based",
			want:        model.CategoryPaint,
		},
		{
			name:     "emulsion",
			material: "Matt Emulsion",
			want:     model.CategoryPaint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.material, tt.description, tt.keywords)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	c, err := NewDefaultClassifier()
	require.NoError(t, err)

	m := model.Material{
		ID:          "mat-1",
		Name:        "Cork Tiles",
		Description: "natural cork over a ceramic backing",
		Keywords:    []string{"flooring"},
	}

	first := c.ClassifyMaterial(m)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, c.ClassifyMaterial(m))
	}
}

func TestClassifier_Explain(t *testing.T) {
	c, err := NewDefaultClassifier()
	require.NoError(t, err)

	t.Run("matched rule", func(t *testing.T) {
		match := c.Explain("Oak Flooring", "solid oak boards", []string{"wood", "flooring"})
		assert.Equal(t, model.CategoryTimber, match.Category)
		assert.Equal(t, "oak", match.Term)
		assert.Equal(t, 0, match.RuleIndex)
		assert.False(t, match.Fallback)
	})

	t.Run("fallback", func(t *testing.T) {
		match := c.Explain("widget", "", nil)
		assert.Equal(t, model.CategoryConcrete, match.Category)
		assert.Equal(t, -1, match.RuleIndex)
		assert.True(t, match.Fallback)
		assert.Empty(t, match.Term)
	})
}

func TestClassifier_Categories(t *testing.T) {
	t.Run("fallback already covered by a rule", func(t *testing.T) {
		c, err := NewDefaultClassifier()
		require.NoError(t, err)
		assert.ElementsMatch(t, model.AllCategories(), c.Categories())
	})

	t.Run("fallback appended", func(t *testing.T) {
		c, err := NewClassifier([]Rule{
			{Category: model.CategoryMetal, Pattern: `steel`},
			{Category: model.CategoryMetal, Pattern: `iron`},
		}, model.CategoryConcrete)
		require.NoError(t, err)
		assert.Equal(t, []model.Category{model.CategoryMetal, model.CategoryConcrete}, c.Categories())
	})
}

func TestClassifier_ClassifyBatch(t *testing.T) {
	c, err := NewDefaultClassifier()
	require.NoError(t, err)

	materials := []model.Material{
		{ID: "1", Name: "Oak Flooring"},
		{ID: "2", Name: "Copper Cladding"},
		{ID: "3", Name: "widget"},
	}

	results, err := c.ClassifyBatch(context.Background(), materials)
	require.NoError(t, err)
	assert.Equal(t, map[string]model.Category{
		"1": model.CategoryTimber,
		"2": model.CategoryMetal,
		"3": model.CategoryConcrete,
	}, results)
}

func TestClassifier_ClassifyBatch_ContextCancellation(t *testing.T) {
	c, err := NewDefaultClassifier()
	require.NoError(t, err)

	materials := make([]model.Material, 100)
	for i := range materials {
		materials[i] = model.Material{ID: string(rune('a' + i%26)), Name: "Oak"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.ClassifyBatch(ctx, materials)
	assert.Equal(t, context.Canceled, err)
}
