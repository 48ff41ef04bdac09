// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fade-packs/internal/catalog"
	"github.com/pdiddy/fade-packs/internal/convert"
	"github.com/pdiddy/fade-packs/internal/report"
	"github.com/pdiddy/fade-packs/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a pack database into one JSON file per document",
	Long: `Extract reads packs/<pack>.db (or --file), removes the previous output
for that pack, and writes every document to <output-dir>/<pack>/, inside
directories named after its compendium folders. Folder records are collected
in _folders.json and embedded documents are nested under their parent's
"embedded" array.

Documents that cannot be placed cleanly (missing folders, orphaned embedded
documents, name collisions) are still handled and reported as diagnostics;
use --report to write them to a YAML or JSON file.`,
	SilenceUsage: true,
	RunE:         runExtract,
}

func init() {
	extractCmd.Flags().String("pack", string(types.DefaultPack), "pack to extract: actors, items, macros, or rollTables")
	extractCmd.Flags().String("file", "", "document store to read (default: <packs-dir>/<pack>.db)")
	extractCmd.Flags().Bool("all", false, "extract every pack whose database exists in packs-dir")
	extractCmd.Flags().String("packs-dir", convert.DefaultPacksDir, "directory holding the <pack>.db files")
	extractCmd.Flags().String("output-dir", convert.DefaultOutputDir, "root directory the pack directories are written under")
	extractCmd.Flags().String("naming", string(types.NamingSafe), "file naming: safe (keep names, replace unsafe characters) or slug")
	extractCmd.Flags().Int("workers", 1, "number of documents written concurrently")
	extractCmd.Flags().String("report", "", "write a diagnostics report to this .yaml or .json file")

	viper.BindPFlag("extract.pack", extractCmd.Flags().Lookup("pack"))
	viper.BindPFlag("extract.packs_dir", extractCmd.Flags().Lookup("packs-dir"))
	viper.BindPFlag("extract.output_dir", extractCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("extract.naming", extractCmd.Flags().Lookup("naming"))
	viper.BindPFlag("extract.workers", extractCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	file, _ := cmd.Flags().GetString("file")
	reportPath, _ := cmd.Flags().GetString("report")

	if all && file != "" {
		return fmt.Errorf("--file names a single database and cannot be combined with --all")
	}

	base := extractConfig()
	base.SourcePath = file

	// Build every converter first so a bad setting fails before any
	// output directory is touched.
	var converters []*convert.Converter
	if all {
		for _, p := range types.Packs() {
			cfg := base
			cfg.Pack = p
			c, err := convert.New(cfg, logger)
			if err != nil {
				return err
			}
			if _, err := os.Stat(c.Config().SourcePath); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s (no %s)\n", p, c.Config().SourcePath)
				continue
			}
			converters = append(converters, c)
		}
		if len(converters) == 0 {
			return fmt.Errorf("no pack databases found in %s", base.PacksDir)
		}
	} else {
		c, err := convert.New(base, logger)
		if err != nil {
			return err
		}
		converters = append(converters, c)
	}

	ctx := cmd.Context()
	results, err := extractPacks(ctx, converters, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if reportPath != "" {
		if err := report.WriteFile(reportPath, report.New(results...)); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", reportPath)
	}

	if path := viper.GetString("catalog.path"); path != "" {
		if err := recordRuns(ctx, path, results); err != nil {
			return err
		}
	}
	return nil
}

func extractPacks(ctx context.Context, converters []*convert.Converter, w io.Writer) ([]*types.ExtractionResult, error) {
	results := make([]*types.ExtractionResult, 0, len(converters))
	for _, c := range converters {
		fmt.Fprintf(w, "Extracting %s from %s\n", c.Config().Pack, c.Config().SourcePath)
		res, err := c.Extract(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", c.Config().Pack, err)
		}
		if n := len(res.Diagnostics); n > 0 {
			logger.Info("extraction finished with diagnostics",
				"pack", string(res.Pack), "diagnostics", n, "failed", res.Failed)
		}
		results = append(results, res)
	}
	return results, nil
}

func recordRuns(ctx context.Context, path string, results []*types.ExtractionResult) error {
	store, err := catalog.Open(types.CatalogConfig{Path: path})
	if err != nil {
		return err
	}
	defer store.Close()

	now := time.Now()
	for _, res := range results {
		if err := store.Record(ctx, res, now); err != nil {
			return fmt.Errorf("recording %s in catalog: %w", res.Pack, err)
		}
	}
	return nil
}

// extractConfig merges flags, environment, and config file settings.
func extractConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		Pack:      types.Pack(viper.GetString("extract.pack")),
		PacksDir:  viper.GetString("extract.packs_dir"),
		OutputDir: viper.GetString("extract.output_dir"),
		Naming:    types.NamingStyle(viper.GetString("extract.naming")),
		Workers:   viper.GetInt("extract.workers"),
	}
}
