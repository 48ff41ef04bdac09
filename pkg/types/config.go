package types

// ExtractionConfig holds settings for one pack extraction.
// Every path is explicit so a run never depends on the process working
// directory or arguments.
type ExtractionConfig struct {
	// Pack selects the pack to extract (actors, items, macros, rollTables).
	Pack Pack `json:"pack" yaml:"pack" mapstructure:"pack"`

	// SourcePath is the document store to read. Empty means
	// <PacksDir>/<Pack>.db.
	SourcePath string `json:"source_path,omitempty" yaml:"source_path,omitempty" mapstructure:"source_path"`

	// PacksDir is the directory holding the <pack>.db stores (default "packs").
	PacksDir string `json:"packs_dir" yaml:"packs_dir" mapstructure:"packs_dir"`

	// OutputDir is the output root; each pack is written to OutputDir/<pack>/.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Naming selects how names are turned into path components (default safe).
	Naming NamingStyle `json:"naming" yaml:"naming" mapstructure:"naming"`

	// Workers is the number of concurrent document writers (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// CatalogConfig holds settings for the extraction catalog.
type CatalogConfig struct {
	// Path is the SQLite database file. Empty disables the catalog.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all settings read from fade-packs.yaml.
type Config struct {
	Extraction ExtractionConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}
