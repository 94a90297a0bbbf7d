package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/lifecycle-profiles/internal/catalog"
	"github.com/Veraticus/lifecycle-profiles/internal/cli"
	"github.com/spf13/cobra"
)

func materialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "materials",
		Aliases: []string{"material"},
		Short:   "Manage the stored material catalogue",
	}

	cmd.AddCommand(materialsImportCmd())
	cmd.AddCommand(materialsListCmd())

	return cmd
}

func materialsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import materials from a constants, YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			materials, err := catalog.Load(args[0], cfg.MaterialsAnchor)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer closeStorage(store)

			valid := storableMaterials(materials)
			if err := store.SaveMaterials(ctx, valid); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d materials", len(valid))))
			if skipped := len(materials) - len(valid); skipped > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning(fmt.Sprintf("Skipped %d materials without ID or name", skipped)))
			}
			return nil
		},
	}
}

func materialsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored materials with their profile category",
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

			materials, err := store.GetMaterials(ctx)
			if err != nil {
				return err
			}
			profiled, err := store.ProfileIDs(ctx)
			if err != nil {
				return err
			}

			classifier, _, err := newPipeline()
			if err != nil {
				return err
			}
			categories, err := classifier.ClassifyBatch(ctx, materials)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPROFILED\tKEYWORDS")
			for _, m := range materials {
				status := "no"
				if profiled[m.ID] {
					status = "yes"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					m.ID, m.Name, categories[m.ID], status, strings.Join(m.Keywords, ", "))
			}
			return w.Flush()
		},
	}
}
