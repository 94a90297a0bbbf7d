package classification

import "github.com/Veraticus/lifecycle-profiles/internal/model"

// DefaultCategory is returned when no rule matches.
const DefaultCategory = model.CategoryConcrete

// DefaultRules returns the material classification rules in evaluation order.
// Earlier rules win when a material mentions several materials, so a
// steel-framed glass partition is metal, not glass.
//
// Patterns are unanchored substring alternations: "carpet" contains "pet" and
// is plastic, "textile" contains "tile" and is ceramic. Profiles already in
// constants files were generated with these exact patterns.
func DefaultRules() []Rule {
	return []Rule{
		{Category: model.CategoryTimber, Pattern: `timber|wood|oak|bamboo|larch|cedar|plywood`},
		{Category: model.CategoryMetal, Pattern: `steel|aluminum|aluminium|metal|brass|copper|zinc`},
		{Category: model.CategoryConcrete, Pattern: `concrete|cement|microcement`},
		{Category: model.CategoryGlass, Pattern: `glass|glazing`},
		{Category: model.CategoryCeramic, Pattern: `ceramic|terracotta|porcelain|clay|brick|tile`},
		{Category: model.CategoryPlastic, Pattern: `plastic|vinyl|upvc|composite|grp|pet|epoxy|resin`},
		{Category: model.CategoryBiobased, Pattern: `hemp|cork|mycelium|bio-based|biobased|wool|felt`},
		{Category: model.CategoryEarth, Pattern: `earth|rammed|lime|plaster|render`},
		{Category: model.CategoryStone, Pattern: `stone|marble|granite|slate|travertine`},
		{Category: model.CategoryTextile, Pattern: `fabric|textile|carpet|leather|upholster`},
		{Category: model.CategoryPaint, Pattern: `paint|emulsion`},
	}
}
