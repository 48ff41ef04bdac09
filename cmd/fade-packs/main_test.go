// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so tests do not leak
// settings into each other through the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writePack(t *testing.T, packsDir, pack, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(packsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(packsDir, pack+".db"), []byte(content), 0o644))
}

func TestExtract_InvalidPackTouchesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	packsDir := filepath.Join(tmpDir, "packs")
	outDir := filepath.Join(tmpDir, "out")
	writePack(t, packsDir, "actors", `{"!actors!A1": {"name": "Goblin"}}`)

	_, err := execute(t, "extract", "--pack", "widgets", "--packs-dir", packsDir, "--output-dir", outDir)

	assert.Error(t, err)
	assert.NoDirExists(t, outDir)
}

func TestExtract_WritesPackReportAndCatalog(t *testing.T) {
	tmpDir := t.TempDir()
	packsDir := filepath.Join(tmpDir, "packs")
	outDir := filepath.Join(tmpDir, "out")
	reportPath := filepath.Join(tmpDir, "report.yaml")
	catalogPath := filepath.Join(tmpDir, "catalog.db")
	writePack(t, packsDir, "items", `{
		"!folders!F1": {"name": "Weapons", "folder": null},
		"!items!I1": {"name": "Long Sword", "folder": "F1"},
		"!items!I2": {"name": "Rope", "folder": "MISSING"}
	}`)

	out, err := execute(t, "extract", "--pack", "items",
		"--packs-dir", packsDir, "--output-dir", outDir,
		"--report", reportPath, "--catalog", catalogPath)
	require.NoError(t, err)
	assert.Contains(t, out, "extracted: Weapons/Long_Sword.json")

	assert.FileExists(t, filepath.Join(outDir, "items", "_folders.json"))
	assert.FileExists(t, filepath.Join(outDir, "items", "Weapons", "Long_Sword.json"))
	assert.FileExists(t, filepath.Join(outDir, "items", "Rope.json"))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "missing_folder")

	out, err = execute(t, "catalog", "list", "--pack", "items", "--catalog", catalogPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Weapons/Long_Sword.json")
	assert.Contains(t, out, "2 documents")

	out, err = execute(t, "catalog", "diagnostics", "--pack", "items", "--catalog", catalogPath, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"!items!I2"`)
}

func TestExtract_FileOverride(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "custom.db")
	require.NoError(t, os.WriteFile(source, []byte(`{"!macros!M1": {"name": "Heal"}}`), 0o644))
	outDir := filepath.Join(tmpDir, "out")

	_, err := execute(t, "extract", "--pack", "macros", "--file", source, "--output-dir", outDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "macros", "Heal.json"))
}

func TestExtract_MissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	_, err := execute(t, "extract", "--packs-dir", filepath.Join(tmpDir, "packs"), "--output-dir", filepath.Join(tmpDir, "out"))
	assert.Error(t, err)
}

func TestExtract_All(t *testing.T) {
	tmpDir := t.TempDir()
	packsDir := filepath.Join(tmpDir, "packs")
	outDir := filepath.Join(tmpDir, "out")
	writePack(t, packsDir, "actors", `{"!actors!A1": {"name": "Goblin"}}`)
	writePack(t, packsDir, "rollTables", `{"!tables!T1": {"name": "Treasure"}}`)

	out, err := execute(t, "extract", "--all", "--packs-dir", packsDir, "--output-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "skipped: items")
	assert.FileExists(t, filepath.Join(outDir, "actors", "Goblin.json"))
	assert.FileExists(t, filepath.Join(outDir, "rollTables", "Treasure.json"))
	assert.NoDirExists(t, filepath.Join(outDir, "items"))
}

func TestExtract_AllRejectsFile(t *testing.T) {
	_, err := execute(t, "extract", "--all", "--file", "x.db")
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	for _, args := range [][]string{{}, {"help"}, {"--help"}} {
		out, err := execute(t, args...)
		assert.NoError(t, err, "args %v", args)
		assert.Contains(t, out, "extract", "args %v", args)
	}
}

func TestUnknownCommand(t *testing.T) {
	out, err := execute(t, "pack")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "pack"`)
	assert.Contains(t, out, `unknown command "pack" for "fade-packs"`)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "extract")
}

func TestCatalog_RequiresPath(t *testing.T) {
	_, err := execute(t, "catalog", "runs")
	assert.Error(t, err)
}
