// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes extraction summaries and their diagnostics as YAML
// or JSON so data-quality problems can be reviewed or checked in CI.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fade-packs/pkg/types"
)

// PackReport summarizes one pack extraction.
type PackReport struct {
	Pack        types.Pack                   `json:"pack" yaml:"pack"`
	OutputDir   string                       `json:"output_dir" yaml:"output_dir"`
	Extracted   int                          `json:"extracted" yaml:"extracted"`
	Failed      int                          `json:"failed" yaml:"failed"`
	Folders     int                          `json:"folders" yaml:"folders"`
	Counts      map[types.DiagnosticKind]int `json:"counts,omitempty" yaml:"counts,omitempty"`
	Diagnostics []types.Diagnostic           `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Report is the document written by WriteYAML and WriteJSON.
type Report struct {
	Packs []PackReport `json:"packs" yaml:"packs"`
}

// New builds a report from extraction results, keeping their order.
func New(results ...*types.ExtractionResult) Report {
	r := Report{Packs: make([]PackReport, 0, len(results))}
	for _, res := range results {
		pr := PackReport{
			Pack:        res.Pack,
			OutputDir:   res.OutputDir,
			Extracted:   res.Extracted,
			Failed:      res.Failed,
			Folders:     res.Folders,
			Diagnostics: res.Diagnostics,
		}
		if len(res.Diagnostics) > 0 {
			pr.Counts = make(map[types.DiagnosticKind]int)
			for _, d := range res.Diagnostics {
				pr.Counts[d.Kind]++
			}
		}
		r.Packs = append(r.Packs, pr)
	}
	return r
}

// WriteYAML writes the report as YAML.
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteFile writes the report to path, choosing JSON for a .json extension
// and YAML for .yaml or .yml.
func WriteFile(path string, r Report) error {
	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := WriteJSON(&buf, r); err != nil {
			return err
		}
	case ".yaml", ".yml":
		if err := WriteYAML(&buf, r); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported report format %q: use .yaml or .json", ext)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
