// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DiagnosticKind classifies a tolerated data-quality problem found during
// extraction. None of these abort a run.
type DiagnosticKind string

const (
	// DiagMalformedKey marks a record whose key does not match
	// !<type>!<id> or, for embedded records, lacks an id half.
	DiagMalformedKey DiagnosticKind = "malformed_key"
	// DiagOrphanedEmbedded marks an embedded record whose parent is absent.
	DiagOrphanedEmbedded DiagnosticKind = "orphaned_embedded"
	// DiagMissingFolder marks a folder reference with no folder record.
	DiagMissingFolder DiagnosticKind = "missing_folder"
	// DiagFolderCycle marks a folder chain that revisits a folder.
	DiagFolderCycle DiagnosticKind = "folder_cycle"
	// DiagNameCollision marks a document renamed to avoid overwriting another.
	DiagNameCollision DiagnosticKind = "name_collision"
	// DiagWriteFailed marks a document whose file could not be written.
	DiagWriteFailed DiagnosticKind = "write_failed"
)

// Diagnostic records one data-quality outcome tied to a store key.
type Diagnostic struct {
	Kind   DiagnosticKind `json:"kind" yaml:"kind"`
	Key    string         `json:"key" yaml:"key"`
	Detail string         `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// ExtractedDocument describes one content document written to disk.
type ExtractedDocument struct {
	// Key is the original store key (e.g. "!actors!abc123").
	Key string `json:"key" yaml:"key"`

	// Type is the document type section of the key (e.g. "actors").
	Type string `json:"type" yaml:"type"`

	// Name is the display name as stored, or empty if absent.
	Name string `json:"name" yaml:"name"`

	// Path is the written file, relative to the pack output directory,
	// using forward slashes.
	Path string `json:"path" yaml:"path"`

	// Embedded is the number of embedded documents nested into the body.
	Embedded int `json:"embedded" yaml:"embedded"`
}

// ExtractionResult holds the outcome of one pack extraction.
type ExtractionResult struct {
	Pack      Pack   `json:"pack" yaml:"pack"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Extracted counts content documents written successfully.
	Extracted int `json:"extracted" yaml:"extracted"`
	// Failed counts content documents whose write failed.
	Failed int `json:"failed" yaml:"failed"`
	// Folders counts folder records written to _folders.json.
	Folders int `json:"folders" yaml:"folders"`

	Documents   []ExtractedDocument `json:"documents" yaml:"documents"`
	Diagnostics []Diagnostic        `json:"diagnostics" yaml:"diagnostics"`
}

// HasFailures reports whether any document failed to write.
func (r *ExtractionResult) HasFailures() bool {
	return r.Failed > 0
}

// Diagnosed returns the diagnostics of one kind in the order they were found.
func (r *ExtractionResult) Diagnosed(kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
