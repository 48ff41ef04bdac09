// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records extraction runs in a SQLite database: which
// documents each pack produced, where they were written, and the
// data-quality diagnostics found along the way.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/fade-packs/pkg/types"
)

// Store manages the catalog database.
type Store struct {
	db *sql.DB
}

// Run summarizes the latest extraction of one pack.
type Run struct {
	Pack        types.Pack `json:"pack" yaml:"pack"`
	OutputDir   string     `json:"output_dir" yaml:"output_dir"`
	ExtractedAt time.Time  `json:"extracted_at" yaml:"extracted_at"`
	Extracted   int        `json:"extracted" yaml:"extracted"`
	Failed      int        `json:"failed" yaml:"failed"`
	Folders     int        `json:"folders" yaml:"folders"`
}

// Open opens or creates the catalog database at cfg.Path, creating its
// directory and schema if needed.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("catalog path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			pack TEXT PRIMARY KEY,
			output_dir TEXT NOT NULL,
			extracted_at TEXT NOT NULL,
			extracted INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			folders INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			pack TEXT NOT NULL REFERENCES runs(pack) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			key TEXT NOT NULL,
			type TEXT NOT NULL,
			name TEXT,
			path TEXT NOT NULL,
			embedded INTEGER NOT NULL,
			PRIMARY KEY (pack, key)
		)`,
		`CREATE TABLE IF NOT EXISTS diagnostics (
			pack TEXT NOT NULL REFERENCES runs(pack) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			key TEXT NOT NULL,
			detail TEXT,
			PRIMARY KEY (pack, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_path ON documents(pack, path)`,
		`CREATE INDEX IF NOT EXISTS idx_diagnostics_kind ON diagnostics(kind)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record replaces everything the catalog holds for res.Pack with res. The
// pack directory is rebuilt on every extraction, so older rows never
// describe files that still exist.
func (s *Store) Record(ctx context.Context, res *types.ExtractionResult, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM documents WHERE pack = ?`,
		`DELETE FROM diagnostics WHERE pack = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, string(res.Pack)); err != nil {
			return fmt.Errorf("clearing previous run: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (pack, output_dir, extracted_at, extracted, failed, folders)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(pack) DO UPDATE SET
			output_dir=excluded.output_dir, extracted_at=excluded.extracted_at,
			extracted=excluded.extracted, failed=excluded.failed, folders=excluded.folders`,
		string(res.Pack), res.OutputDir, at.UTC().Format(time.RFC3339Nano),
		res.Extracted, res.Failed, res.Folders,
	)
	if err != nil {
		return fmt.Errorf("upserting run: %w", err)
	}

	docStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (pack, seq, key, type, name, path, embedded) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing document insert: %w", err)
	}
	defer docStmt.Close()

	for i, d := range res.Documents {
		if _, err := docStmt.ExecContext(ctx, string(res.Pack), i, d.Key, d.Type, d.Name, d.Path, d.Embedded); err != nil {
			return fmt.Errorf("inserting document %s: %w", d.Key, err)
		}
	}

	diagStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO diagnostics (pack, seq, kind, key, detail) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing diagnostic insert: %w", err)
	}
	defer diagStmt.Close()

	for i, d := range res.Diagnostics {
		if _, err := diagStmt.ExecContext(ctx, string(res.Pack), i, string(d.Kind), d.Key, d.Detail); err != nil {
			return fmt.Errorf("inserting diagnostic for %s: %w", d.Key, err)
		}
	}

	return tx.Commit()
}

// Runs returns the latest run of every recorded pack, ordered by pack name.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pack, output_dir, extracted_at, extracted, failed, folders FROM runs ORDER BY pack`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var pack, at string
		if err := rows.Scan(&pack, &r.OutputDir, &at, &r.Extracted, &r.Failed, &r.Folders); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Pack = types.Pack(pack)
		r.ExtractedAt, _ = time.Parse(time.RFC3339Nano, at)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Documents returns the documents recorded for pack in extraction order.
func (s *Store) Documents(ctx context.Context, pack types.Pack) ([]types.ExtractedDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, type, name, path, embedded FROM documents WHERE pack = ? ORDER BY seq`, string(pack))
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []types.ExtractedDocument
	for rows.Next() {
		var d types.ExtractedDocument
		var name sql.NullString
		if err := rows.Scan(&d.Key, &d.Type, &name, &d.Path, &d.Embedded); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		d.Name = name.String
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Diagnostics returns the diagnostics recorded for pack in the order they
// were found. An empty kind matches every kind.
func (s *Store) Diagnostics(ctx context.Context, pack types.Pack, kind types.DiagnosticKind) ([]types.Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, key, detail FROM diagnostics
		 WHERE pack = ? AND (? = '' OR kind = ?)
		 ORDER BY seq`, string(pack), string(kind), string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying diagnostics: %w", err)
	}
	defer rows.Close()

	var diags []types.Diagnostic
	for rows.Next() {
		var d types.Diagnostic
		var k string
		var detail sql.NullString
		if err := rows.Scan(&k, &d.Key, &detail); err != nil {
			return nil, fmt.Errorf("scanning diagnostic: %w", err)
		}
		d.Kind = types.DiagnosticKind(k)
		d.Detail = detail.String
		diags = append(diags, d)
	}
	return diags, rows.Err()
}
