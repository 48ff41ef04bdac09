// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert mirrors a compendium document store to a tree of JSON
// files: one file per content document, placed under directories named after
// its folder chain, with embedded documents nested into their parents.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pdiddy/fade-packs/internal/sanitize"
	"github.com/pdiddy/fade-packs/internal/store"
	"github.com/pdiddy/fade-packs/pkg/types"
)

const (
	// DefaultPacksDir holds the <pack>.db stores.
	DefaultPacksDir = "packs"
	// DefaultOutputDir is the root the pack directories are written under.
	DefaultOutputDir = "src/packs"
	// FoldersFile collects every folder record of a pack.
	FoldersFile = "_folders.json"
)

// Converter extracts one pack. It holds no state between runs.
type Converter struct {
	cfg    types.ExtractionConfig
	name   func(any) string
	logger *slog.Logger
}

// New validates cfg, fills in defaults, and returns a Converter. A nil
// logger discards log output. No files are touched.
func New(cfg types.ExtractionConfig, logger *slog.Logger) (*Converter, error) {
	if cfg.PacksDir == "" {
		cfg.PacksDir = DefaultPacksDir
	}
	if cfg.Naming == "" {
		cfg.Naming = types.NamingSafe
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.SourcePath == "" {
		cfg.SourcePath = filepath.Join(cfg.PacksDir, string(cfg.Pack)+".db")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Converter{
		cfg:    cfg,
		name:   sanitize.For(cfg.Naming),
		logger: logger.With("pack", string(cfg.Pack)),
	}, nil
}

func validateConfig(cfg types.ExtractionConfig) error {
	packs := make([]interface{}, 0, len(types.Packs()))
	for _, p := range types.Packs() {
		packs = append(packs, p)
	}
	return validation.ValidateStruct(&cfg,
		validation.Field(&cfg.Pack,
			validation.Required,
			validation.In(packs...).Error("must be one of actors, items, macros, rollTables"),
		),
		validation.Field(&cfg.OutputDir, validation.Required),
		validation.Field(&cfg.Naming, validation.In(types.NamingSafe, types.NamingSlug)),
		validation.Field(&cfg.Workers, validation.Min(1)),
	)
}

// Config returns the effective configuration, defaults included.
func (c *Converter) Config() types.ExtractionConfig {
	return c.cfg
}

// PackDir returns the directory the pack is written to.
func (c *Converter) PackDir() string {
	return filepath.Join(c.cfg.OutputDir, string(c.cfg.Pack))
}

// Extract rebuilds the pack directory from the document store. The existing
// pack directory is removed first, so repeated runs on an unchanged store
// produce identical trees.
//
// Missing sources, unparseable stores, and failures to clear or create the
// pack directory abort the run. Per-document write failures are logged,
// counted in Failed, and do not stop the remaining writes. Progress lines
// are printed to w.
func (c *Converter) Extract(ctx context.Context, w io.Writer) (*types.ExtractionResult, error) {
	src := c.cfg.SourcePath
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, src)
		}
		return nil, fmt.Errorf("%w: checking source %s: %v", ErrIO, src, err)
	}

	outDir := c.PackDir()
	if err := os.RemoveAll(outDir); err != nil {
		return nil, fmt.Errorf("%w: removing %s: %v", ErrIO, outDir, err)
	}

	entries, err := store.Load(src)
	if err != nil {
		if errors.Is(err, store.ErrRead) {
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrIO, outDir, err)
	}

	res := &types.ExtractionResult{Pack: c.cfg.Pack, OutputDir: outDir}
	p := c.partition(entries, res)

	if len(p.folders) > 0 {
		if err := writeFolders(filepath.Join(outDir, FoldersFile), p.folders); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %v", ErrIO, FoldersFile, err)
		}
		res.Folders = len(p.folders)
	}

	docs := c.nest(p, res)
	plans := c.plan(docs, p.folderIndex(), res)
	if err := c.writeAll(ctx, plans, res, w); err != nil {
		return res, err
	}

	fmt.Fprintf(w, "\nExtract summary: %d extracted, %d failed, %d folder(s) (pack: %s)\n",
		res.Extracted, res.Failed, res.Folders, c.cfg.Pack)
	return res, nil
}

// diagnose records a tolerated data-quality problem and logs it. Broken
// folder chains log as warnings and failed writes as errors; the rest only
// show at debug level.
func (c *Converter) diagnose(res *types.ExtractionResult, kind types.DiagnosticKind, key, detail string) {
	res.Diagnostics = append(res.Diagnostics, types.Diagnostic{Kind: kind, Key: key, Detail: detail})

	level := slog.LevelDebug
	switch kind {
	case types.DiagMissingFolder, types.DiagFolderCycle:
		level = slog.LevelWarn
	case types.DiagWriteFailed:
		level = slog.LevelError
	}
	c.logger.Log(context.Background(), level, detail, "kind", string(kind), "key", key)
}
