package scan

import (
	"os"
	"path/filepath"
	"testing"

	"tracelink/internal/config"
)

func TestLoadDeclarationMissing(t *testing.T) {
	decl, err := LoadDeclaration(t.TempDir())
	if err != nil {
		t.Fatalf("missing TRACE.toml should not error, got %v", err)
	}
	if decl != nil {
		t.Error("missing TRACE.toml should yield nil declaration")
	}
}

func TestLoadDeclarationAndApply(t *testing.T) {
	root := t.TempDir()
	content := `version = 1
source_roots = ["lib"]
artifact_roots = ["spec"]
exclude = ["fixtures"]
suffixes = ["Spec"]
`
	if err := os.WriteFile(filepath.Join(root, DeclarationFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	decl, err := LoadDeclaration(root)
	if err != nil {
		t.Fatalf("LoadDeclaration: %v", err)
	}
	if decl == nil {
		t.Fatal("expected declaration")
	}

	cfg := config.DefaultConfig().Scan
	decl.ApplyTo(&cfg)

	if len(cfg.SourceRoots) != 1 || cfg.SourceRoots[0] != "lib" {
		t.Errorf("SourceRoots = %v, want [lib]", cfg.SourceRoots)
	}
	if len(cfg.ArtifactRoots) != 1 || cfg.ArtifactRoots[0] != "spec" {
		t.Errorf("ArtifactRoots = %v, want [spec]", cfg.ArtifactRoots)
	}
	if len(cfg.ConventionSuffixes) != 1 || cfg.ConventionSuffixes[0] != "Spec" {
		t.Errorf("ConventionSuffixes = %v, want [Spec]", cfg.ConventionSuffixes)
	}
	// Excludes append to the defaults instead of replacing them.
	found := false
	for _, ex := range cfg.Exclude {
		if ex == "fixtures" {
			found = true
		}
	}
	if !found {
		t.Errorf("Exclude = %v, want fixtures appended", cfg.Exclude)
	}
}

func TestLoadDeclarationPartial(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, DeclarationFile), []byte("suffixes = [\"Fixture\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	decl, err := LoadDeclaration(root)
	if err != nil {
		t.Fatalf("LoadDeclaration: %v", err)
	}
	if decl.Version != 1 {
		t.Errorf("Version = %d, want defaulted 1", decl.Version)
	}

	cfg := config.DefaultConfig().Scan
	decl.ApplyTo(&cfg)
	if len(cfg.SourceRoots) == 0 {
		t.Error("unset declaration fields must not clear config values")
	}
	if cfg.ConventionSuffixes[0] != "Fixture" {
		t.Errorf("ConventionSuffixes = %v", cfg.ConventionSuffixes)
	}
}

func TestParseDeclarationFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), DeclarationFile)
	if err := os.WriteFile(path, []byte("version = [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseDeclarationFile(path); err == nil {
		t.Error("invalid TOML should error")
	}
}
