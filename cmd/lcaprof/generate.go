package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Veraticus/lifecycle-profiles/internal/catalog"
	"github.com/Veraticus/lifecycle-profiles/internal/cli"
	"github.com/Veraticus/lifecycle-profiles/internal/common"
	"github.com/Veraticus/lifecycle-profiles/internal/engine"
	"github.com/Veraticus/lifecycle-profiles/internal/model"
	"github.com/Veraticus/lifecycle-profiles/internal/service"
	"github.com/Veraticus/lifecycle-profiles/internal/tsconst"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate lifecycle profiles for unprofiled materials",
		Long: `Read materials, classify each one that has no lifecycle profile yet, and
write the generated profiles.

Materials come from --materials (TypeScript constants, YAML or JSON), from the
--target constants file, or from the database when --store is set. Existing
profiles are read from the target's profiles object and, with --store, from
the database.

Generated profiles are inserted into the target file, upserted into the
database, or printed to stdout when neither is given.

Examples:
  lcaprof generate --target src/constants/materials.ts
  lcaprof generate --materials export.yaml --format json
  lcaprof generate --target src/constants/materials.ts --store --dry-run`,
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("materials", "m", "", "Materials file (.ts, .yaml, .json); defaults to the target file")
	cmd.Flags().StringP("target", "t", "", "Constants file whose profiles object receives the new profiles")
	cmd.Flags().String("anchor", "", "Name of the profiles object in the target file (default: MATERIAL_LIFECYCLE_PROFILES)")
	cmd.Flags().String("materials-anchor", "", "Name of the materials array in constants files (default: MATERIAL_PALETTE)")
	cmd.Flags().StringP("format", "f", "ts", "Output format when printing (ts, yaml, json)")
	cmd.Flags().Bool("store", false, "Read and upsert materials and profiles in the database")
	cmd.Flags().Bool("dry-run", false, "Print what would be generated without writing anything")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	_ = viper.BindPFlag("profiles.materials", cmd.Flags().Lookup("materials"))
	_ = viper.BindPFlag("profiles.target", cmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("profiles.anchor", cmd.Flags().Lookup("anchor"))
	_ = viper.BindPFlag("profiles.materials_anchor", cmd.Flags().Lookup("materials-anchor"))

	return cmd
}

// generateOptions controls a single generation run.
type generateOptions struct {
	Progress        io.Writer
	MaterialsPath   string
	TargetPath      string
	Anchor          string
	MaterialsAnchor string
	Format          catalog.Format
	DryRun          bool
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	formatName, _ := cmd.Flags().GetString("format")
	format, err := catalog.ParseFormat(formatName)
	if err != nil {
		return err
	}
	useStore, _ := cmd.Flags().GetBool("store")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	opts := generateOptions{
		MaterialsPath:   cfg.Materials,
		TargetPath:      cfg.Target,
		Anchor:          cfg.Anchor,
		MaterialsAnchor: cfg.MaterialsAnchor,
		Format:          format,
		DryRun:          dryRun,
	}
	if !noProgress {
		opts.Progress = cmd.ErrOrStderr()
	}

	var store service.ProfileStore
	if useStore {
		store, err = initStorage(ctx, cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer closeStorage(store)
	}

	result, err := runGenerate(ctx, opts, store, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	destinations := make([]string, 0, 2)
	if opts.TargetPath != "" {
		destinations = append(destinations, opts.TargetPath)
	}
	if store != nil {
		destinations = append(destinations, cfg.DatabasePath)
	}

	breakdown := result.Stats.Breakdown()
	summary := cli.GenerationSummary{
		Breakdown:   make([]cli.CategoryCount, 0, len(breakdown)),
		Destination: strings.Join(destinations, ", "),
		Total:       result.Stats.Total,
		Generated:   result.Stats.Generated,
		Existing:    result.Stats.Existing,
		Duplicates:  result.Stats.Duplicates,
		Invalid:     result.Stats.Invalid,
		Duration:    result.Stats.Duration,
		DryRun:      dryRun,
	}
	for _, c := range breakdown {
		summary.Breakdown = append(summary.Breakdown, cli.CategoryCount{Category: c.Category, Count: c.Count})
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cli.RenderSummary(summary))

	return nil
}

// runGenerate loads materials and existing profiles, generates the missing
// profiles and writes them to the target file, the store, or out.
func runGenerate(ctx context.Context, opts generateOptions, store service.ProfileStore, out io.Writer) (*engine.Result, error) {
	materials, err := loadMaterials(ctx, opts, store)
	if err != nil {
		return nil, err
	}
	if len(materials) == 0 {
		return nil, common.NewUserError("No materials found", common.ErrNoMaterials)
	}

	var targetSrc string
	existing := make(map[string]bool)
	if opts.TargetPath != "" {
		data, readErr := os.ReadFile(opts.TargetPath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read target file: %w", readErr)
		}
		targetSrc = string(data)

		ids, idErr := tsconst.ProfileIDs(targetSrc, opts.Anchor)
		if idErr != nil {
			return nil, fmt.Errorf("failed to read existing profiles from %s: %w", opts.TargetPath, idErr)
		}
		for id := range ids {
			existing[id] = true
		}
	}
	if store != nil {
		ids, idErr := store.ProfileIDs(ctx)
		if idErr != nil {
			return nil, idErr
		}
		for id := range ids {
			existing[id] = true
		}
	}

	classifier, synthesizer, err := newPipeline()
	if err != nil {
		return nil, err
	}

	config := engine.DefaultConfig()
	if opts.Progress != nil {
		config.Progress = cli.NewProgress(opts.Progress, len(materials)).Update
	}

	result, err := engine.NewWithConfig(classifier, synthesizer, config).Generate(ctx, materials, existing)
	if err != nil {
		return nil, err
	}

	if opts.DryRun || (opts.TargetPath == "" && store == nil) {
		if err := catalog.Write(out, opts.Format, result.Records); err != nil {
			return nil, err
		}
		return result, nil
	}

	if opts.TargetPath != "" && len(result.Records) > 0 {
		patched, injectErr := tsconst.InjectProfiles(targetSrc, opts.Anchor, result.Records)
		if injectErr != nil {
			return nil, fmt.Errorf("failed to insert profiles into %s: %w", opts.TargetPath, injectErr)
		}
		if err := writeFileAtomic(opts.TargetPath, []byte(patched)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", opts.TargetPath, err)
		}
		common.LogInfo("Updated constants file", common.Fields{"path": opts.TargetPath, "profiles": len(result.Records)})
	}

	if store != nil {
		if err := store.SaveMaterials(ctx, storableMaterials(materials)); err != nil {
			return nil, err
		}
		if err := store.SaveProfileRecords(ctx, result.Records); err != nil {
			return nil, err
		}
		common.LogInfo("Stored profiles", common.Fields{"profiles": len(result.Records)})
	}

	return result, nil
}

// loadMaterials picks the material source: explicit file, target file, then store.
func loadMaterials(ctx context.Context, opts generateOptions, store service.ProfileStore) ([]model.Material, error) {
	switch {
	case opts.MaterialsPath != "":
		return catalog.Load(opts.MaterialsPath, opts.MaterialsAnchor)
	case opts.TargetPath != "":
		return catalog.Load(opts.TargetPath, opts.MaterialsAnchor)
	case store != nil:
		return store.GetMaterials(ctx)
	default:
		return nil, common.NewUserError("Specify --materials, --target or --store", common.ErrMissingConfig)
	}
}

// storableMaterials drops materials the store would reject.
func storableMaterials(materials []model.Material) []model.Material {
	out := make([]model.Material, 0, len(materials))
	for _, m := range materials {
		if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.Name) == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}
