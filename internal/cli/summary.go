package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// CategoryCount is one line of the summary breakdown.
type CategoryCount struct {
	Category model.Category
	Count    int
}

// GenerationSummary is what RenderSummary needs to know about a run.
type GenerationSummary struct {
	Breakdown   []CategoryCount
	Destination string
	Total       int
	Generated   int
	Existing    int
	Duplicates  int
	Invalid     int
	Duration    time.Duration
	DryRun      bool
}

// RenderSummary renders the end-of-run box.
func RenderSummary(s GenerationSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Materials read: %d\n", ChartIcon, s.Total)
	fmt.Fprintf(&b, "  • Profiles generated: %s\n", BoldStyle.Render(fmt.Sprint(s.Generated)))
	fmt.Fprintf(&b, "  • Already profiled: %d\n", s.Existing)
	if s.Duplicates > 0 {
		fmt.Fprintf(&b, "  • %s\n", FormatWarning(fmt.Sprintf("Duplicate IDs skipped: %d", s.Duplicates)))
	}
	if s.Invalid > 0 {
		fmt.Fprintf(&b, "  • %s\n", FormatWarning(fmt.Sprintf("Materials without ID: %d", s.Invalid)))
	}
	fmt.Fprintf(&b, "  • Time taken: %s\n", s.Duration.Round(time.Millisecond))

	if len(s.Breakdown) > 0 {
		b.WriteString("\nBy category:\n")
		for _, c := range s.Breakdown {
			fmt.Fprintf(&b, "  %-10s %d\n", c.Category, c.Count)
		}
	}

	switch {
	case s.DryRun:
		b.WriteString("\n" + FormatInfo("Dry run: nothing was written"))
	case s.Destination != "":
		b.WriteString("\n" + FormatSuccess("Written to "+s.Destination))
	}

	return RenderBox("Lifecycle Profiles", strings.TrimRight(b.String(), "\n"))
}

// RenderProfile renders a category's profile as aligned phase lines.
func RenderProfile(category model.Category, p model.Profile) string {
	var b strings.Builder
	b.WriteString(FormatTitle(string(category)) + "\n")

	for _, phase := range model.Phases() {
		rating, ok := p[phase]
		if !ok {
			fmt.Fprintf(&b, "  %-14s %s\n", phase, FormatError("missing"))
			continue
		}
		bar := strings.Repeat("■", rating.Impact) + strings.Repeat("□", model.MaxImpact-rating.Impact)
		fmt.Fprintf(&b, "  %-14s %s %d %s\n",
			phase,
			ImpactStyle(rating.Impact).Render(bar),
			rating.Impact,
			SubtleStyle.Render("("+string(rating.Confidence)+")"))
	}

	return b.String()
}
