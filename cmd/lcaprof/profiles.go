package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/lifecycle-profiles/internal/catalog"
	"github.com/Veraticus/lifecycle-profiles/internal/classification"
	"github.com/Veraticus/lifecycle-profiles/internal/cli"
	"github.com/Veraticus/lifecycle-profiles/internal/common"
	"github.com/Veraticus/lifecycle-profiles/internal/config"
	"github.com/Veraticus/lifecycle-profiles/internal/model"
	"github.com/Veraticus/lifecycle-profiles/internal/profile"
	"github.com/Veraticus/lifecycle-profiles/internal/storage"
	"github.com/Veraticus/lifecycle-profiles/internal/tsconst"
	"github.com/spf13/cobra"
)

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Inspect lifecycle profiles",
		Long:    `Inspect the built-in category profiles and the profiles stored in the database.`,
	}

	cmd.AddCommand(profilesListCmd())
	cmd.AddCommand(profilesShowCmd())
	cmd.AddCommand(profilesValidateCmd())
	cmd.AddCommand(profilesGetCmd())
	cmd.AddCommand(profilesStatsCmd())

	return cmd
}

func profilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories with their phase impacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := profileTable()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprint(w, "CATEGORY")
			for _, phase := range model.Phases() {
				_, _ = fmt.Fprintf(w, "\t%s", phase)
			}
			_, _ = fmt.Fprintln(w)

			for _, category := range model.AllCategories() {
				p, ok := table[category]
				if !ok {
					continue
				}
				_, _ = fmt.Fprint(w, category)
				for _, phase := range model.Phases() {
					r := p[phase]
					_, _ = fmt.Fprintf(w, "\t%d/%s", r.Impact, r.Confidence)
				}
				_, _ = fmt.Fprintln(w)
			}

			return w.Flush()
		},
	}
}

func profilesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <category>",
		Short: "Show a category's lifecycle profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := model.ParseCategory(args[0])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("Unknown category %q", args[0]), err)
			}

			p, ok := profileTable()[category]
			if !ok {
				return fmt.Errorf("%w: %s", model.ErrUnknownCategory, category)
			}

			fmt.Fprint(cmd.OutOrStdout(), cli.RenderProfile(category, p))
			return nil
		},
	}
}

func profilesValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the profile table and the profiles in a constants file",
		Long: `Check the built-in profile table covers every classifier category.

With --target (or profiles.target in the config), also parse every entry of
the target's profiles object, reject entries with unknown phases or invalid
ratings, report entries missing phases, and count palette materials that
still have no profile.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			classifier, err := classification.NewDefaultClassifier()
			if err != nil {
				return err
			}

			if err := profileTable().Validate(classifier.Categories()); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatError("Profile table is invalid"))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"%d rules, %d categories, every category has a complete profile",
				len(classifier.Rules()), len(classifier.Categories()))))

			target := cfg.Target
			if flag, _ := cmd.Flags().GetString("target"); flag != "" {
				target = config.ExpandPath(flag)
			}
			if target == "" {
				return nil
			}
			return validateTarget(cmd.OutOrStdout(), target, cfg.Anchor, cfg.MaterialsAnchor)
		},
	}

	// Not bound to viper: generate owns the profiles.target binding.
	cmd.Flags().StringP("target", "t", "", "Constants file whose profiles object is checked (default: profiles.target)")

	return cmd
}

// validateTarget parses every profile entry in the constants file at path.
// Invalid ratings, unknown phases and entries missing phases are errors;
// palette materials without a profile are only reported.
func validateTarget(out io.Writer, path, anchor, materialsAnchor string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return fmt.Errorf("failed to read target file: %w", err)
	}
	src := string(data)

	records, err := tsconst.ParseProfiles(src, anchor)
	if err != nil {
		fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("%s: %v", path, err)))
		return common.NewUserError(fmt.Sprintf("Profiles in %s are invalid", path), err)
	}

	var incomplete []string
	for id, record := range records {
		if len(record.Phases) < len(model.Phases()) {
			incomplete = append(incomplete, id)
		}
	}
	sort.Strings(incomplete)
	if len(incomplete) > 0 {
		fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("Missing phases: %s", strings.Join(incomplete, ", "))))
		return common.NewUserError(
			fmt.Sprintf("%d profiles in %s are incomplete", len(incomplete), path),
			fmt.Errorf("%w: %s", tsconst.ErrInvalidProfile, strings.Join(incomplete, ", ")))
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%d profiles in %s are complete", len(records), path)))

	materials, err := tsconst.ParseMaterials(src, materialsAnchor)
	if errors.Is(err, tsconst.ErrAnchorNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	missing := 0
	for _, m := range materials {
		if _, ok := records[m.ID]; !ok {
			missing++
		}
	}
	if missing > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d of %d materials have no profile; run generate", missing, len(materials))))
	}

	return nil
}

func profilesGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <material-id>",
		Short: "Print a stored material profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			formatName, _ := cmd.Flags().GetString("format")
			format, err := catalog.ParseFormat(formatName)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			record, err := store.GetProfileRecord(ctx, args[0])
			if errors.Is(err, storage.ErrNotFound) {
				return common.NewUserError(fmt.Sprintf("No stored profile for %q", args[0]), err)
			}
			if err != nil {
				return err
			}

			return catalog.Write(cmd.OutOrStdout(), format, []model.ProfileRecord{*record})
		},
	}

	cmd.Flags().StringP("format", "f", "yaml", "Output format (ts, yaml, json)")
	return cmd
}

func profilesStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count stored profiles per category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(ctx, cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			counts, err := store.CountByCategory(ctx)
			if err != nil {
				return err
			}

			total := 0
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "CATEGORY\tPROFILES")
			for _, category := range model.AllCategories() {
				total += counts[category]
				_, _ = fmt.Fprintf(w, "%s\t%d\n", category, counts[category])
			}
			_, _ = fmt.Fprintf(w, "total\t%d\n", total)
			return w.Flush()
		},
	}
}

// profileTable returns the built-in category profiles.
func profileTable() profile.Table {
	return profile.DefaultTable()
}
