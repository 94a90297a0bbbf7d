package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/lifecycle-profiles/internal/cli"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show which material category a material falls into",
		Long: `Classify a single material from its name, description and keywords and
explain which rule decided it.

Examples:
  lcaprof classify --name "Oak Flooring" --description "solid oak boards" --keywords wood,flooring
  lcaprof classify --name "steel-framed glass partition" --profile`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			keywords, _ := cmd.Flags().GetStringSlice("keywords")
			showProfile, _ := cmd.Flags().GetBool("profile")

			if strings.TrimSpace(name) == "" && strings.TrimSpace(description) == "" && len(keywords) == 0 {
				return fmt.Errorf("at least one of --name, --description or --keywords is required")
			}

			classifier, synthesizer, err := newPipeline()
			if err != nil {
				return err
			}

			match := classifier.Explain(name, description, keywords)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Category: %s\n", cli.BoldStyle.Render(string(match.Category)))
			if match.Fallback {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("No rule matched; using default category %s", classifier.Fallback())))
			} else {
				fmt.Fprintf(out, "Matched: %q (rule %d of %d)\n", match.Term, match.RuleIndex+1, len(classifier.Rules()))
			}

			if showProfile {
				p, _ := synthesizer.Profile(match.Category)
				fmt.Fprintln(out)
				fmt.Fprint(out, cli.RenderProfile(match.Category, p))
			}
			return nil
		},
	}

	cmd.Flags().StringP("name", "n", "", "Material display name")
	cmd.Flags().StringP("description", "d", "", "Material description")
	cmd.Flags().StringSliceP("keywords", "k", nil, "Comma-separated keyword tags")
	cmd.Flags().BoolP("profile", "p", false, "Also print the category's lifecycle profile")

	return cmd
}
