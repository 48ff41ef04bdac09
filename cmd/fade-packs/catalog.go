// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fade-packs/internal/catalog"
	"github.com/pdiddy/fade-packs/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the extraction catalog (runs, documents, diagnostics)",
	Long: `Catalog reads the SQLite catalog that extract updates when --catalog
(or catalog.path in fade-packs.yaml) is set. Each pack keeps only its latest
run.`,
}

// --- runs subcommand ---

var catalogRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the latest extraction of every pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Runs(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(cmd.OutOrStdout(), runs)
		}

		w := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return nil
		}
		fmt.Fprintf(w, "%-12s  %-25s  %9s  %6s  %7s  %s\n", "Pack", "Extracted at", "Documents", "Failed", "Folders", "Output")
		fmt.Fprintln(w, strings.Repeat("-", 90))
		for _, r := range runs {
			fmt.Fprintf(w, "%-12s  %-25s  %9d  %6d  %7d  %s\n",
				r.Pack, r.ExtractedAt.Format("2006-01-02 15:04:05 MST"), r.Extracted, r.Failed, r.Folders, r.OutputDir)
		}
		return nil
	},
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the documents written by a pack's latest extraction",
	RunE: func(cmd *cobra.Command, args []string) error {
		pack, err := packFlag(cmd)
		if err != nil {
			return err
		}
		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		docs, err := store.Documents(cmd.Context(), pack)
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(cmd.OutOrStdout(), docs)
		}

		w := cmd.OutOrStdout()
		for _, d := range docs {
			embedded := ""
			if d.Embedded > 0 {
				embedded = fmt.Sprintf("  (+%d embedded)", d.Embedded)
			}
			fmt.Fprintf(w, "%-24s  %s%s\n", d.Key, d.Path, embedded)
		}
		fmt.Fprintf(w, "\n%d documents\n", len(docs))
		return nil
	},
}

// --- diagnostics subcommand ---

var catalogDiagnosticsCmd = &cobra.Command{
	Use:   "diagnostics",
	Short: "List the diagnostics of a pack's latest extraction",
	RunE: func(cmd *cobra.Command, args []string) error {
		pack, err := packFlag(cmd)
		if err != nil {
			return err
		}
		kind, _ := cmd.Flags().GetString("kind")

		store, err := openCatalog()
		if err != nil {
			return err
		}
		defer store.Close()

		diags, err := store.Diagnostics(cmd.Context(), pack, types.DiagnosticKind(kind))
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return writeJSON(cmd.OutOrStdout(), diags)
		}

		w := cmd.OutOrStdout()
		if len(diags) == 0 {
			fmt.Fprintln(w, "No diagnostics.")
			return nil
		}
		for _, d := range diags {
			fmt.Fprintf(w, "%-18s  %-24s  %s\n", d.Kind, d.Key, d.Detail)
		}
		return nil
	},
}

// --- shared helpers ---

func openCatalog() (*catalog.Store, error) {
	path := viper.GetString("catalog.path")
	if path == "" {
		return nil, fmt.Errorf("no catalog configured: pass --catalog or set catalog.path")
	}
	return catalog.Open(types.CatalogConfig{Path: path})
}

func packFlag(cmd *cobra.Command) (types.Pack, error) {
	name, _ := cmd.Flags().GetString("pack")
	pack := types.Pack(name)
	if !pack.Valid() {
		return "", fmt.Errorf("unknown pack %q: use actors, items, macros, or rollTables", name)
	}
	return pack, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func init() {
	catalogCmd.PersistentFlags().Bool("json", false, "output as JSON")

	catalogListCmd.Flags().String("pack", string(types.DefaultPack), "pack to list")
	catalogDiagnosticsCmd.Flags().String("pack", string(types.DefaultPack), "pack to list")
	catalogDiagnosticsCmd.Flags().String("kind", "", "only this diagnostic kind (e.g. missing_folder)")

	catalogCmd.AddCommand(catalogRunsCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogDiagnosticsCmd)

	rootCmd.AddCommand(catalogCmd)
}
