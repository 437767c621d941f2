package scan

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"tracelink/internal/config"
)

// DeclarationFile is the default filename for scan declarations.
// A TRACE.toml at the repo root lets a project override scan roots and
// convention suffixes without touching .tracelink/config.json.
const DeclarationFile = "TRACE.toml"

// ScanDeclaration is the parsed TRACE.toml content.
type ScanDeclaration struct {
	// Version is the schema version
	Version int `toml:"version"`

	// SourceRoots overrides the configured source roots
	SourceRoots []string `toml:"source_roots,omitempty"`

	// ArtifactRoots overrides the configured artifact roots
	ArtifactRoots []string `toml:"artifact_roots,omitempty"`

	// Exclude adds directory names to the exclusion list
	Exclude []string `toml:"exclude,omitempty"`

	// Suffixes overrides the convention container suffixes
	Suffixes []string `toml:"suffixes,omitempty"`
}

// ParseDeclarationFile parses a TRACE.toml file from the given path
func ParseDeclarationFile(filePath string) (*ScanDeclaration, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", DeclarationFile, err)
	}

	var decl ScanDeclaration
	if err := toml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DeclarationFile, err)
	}

	if decl.Version < 1 {
		decl.Version = 1
	}

	return &decl, nil
}

// LoadDeclaration loads TRACE.toml from the repo root if it exists.
// Returns nil without error when the file is absent.
func LoadDeclaration(repoRoot string) (*ScanDeclaration, error) {
	filePath := filepath.Join(repoRoot, DeclarationFile)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, nil
	}

	return ParseDeclarationFile(filePath)
}

// ApplyTo merges the declaration into a scan config. Root and suffix
// lists replace; excludes append.
func (d *ScanDeclaration) ApplyTo(cfg *config.ScanConfig) {
	if d == nil {
		return
	}
	if len(d.SourceRoots) > 0 {
		cfg.SourceRoots = d.SourceRoots
	}
	if len(d.ArtifactRoots) > 0 {
		cfg.ArtifactRoots = d.ArtifactRoots
	}
	if len(d.Suffixes) > 0 {
		cfg.ConventionSuffixes = d.Suffixes
	}
	cfg.Exclude = append(cfg.Exclude, d.Exclude...)
}
