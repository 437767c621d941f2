package query

import (
	"os"
	"path/filepath"
	"testing"

	"tracelink/internal/scan"
)

func TestNormalizeDocTarget(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"guide.md", "guide"},
		{"v1.2/guide.md", "guide"},
		{"v2/api/overview.md", "api/overview"},
		{"v1/v2.3/nested.md", "nested"},
		{"plain", "plain"},
		{"dir/version.md", "dir/version"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeDocTarget(tt.input); got != tt.expected {
				t.Errorf("NormalizeDocTarget(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateLinksRoundTrip(t *testing.T) {
	// Every referenced target is in the valid set: zero broken.
	engine := newEngineWith(
		edge("Foo", "tests/FooTests.cs", "Foo_Works", scan.OriginExplicit),
		edge("Bar", "tests/BarTests.cs", "Bar_Does", scan.OriginConvention),
	)
	targets := &ValidTargets{
		Docs: map[string]bool{},
		Tests: map[string]bool{
			"tests/FooTests.cs": true,
			"tests/BarTests.cs": true,
		},
	}

	result := engine.ValidateLinks(targets)
	if result.BrokenCount != 0 {
		t.Errorf("BrokenCount = %d, want 0: %+v", result.BrokenCount, result.Details)
	}
	if result.ValidCount != 2 {
		t.Errorf("ValidCount = %d, want 2", result.ValidCount)
	}
}

func TestValidateLinksBrokenTarget(t *testing.T) {
	engine := newEngineWith(edge("Foo", "tests/GoneTests.cs", "Foo_Works", scan.OriginExplicit))
	targets := &ValidTargets{Tests: map[string]bool{"tests/FooTests.cs": true}}

	result := engine.ValidateLinks(targets)
	if result.BrokenCount != 1 {
		t.Fatalf("BrokenCount = %d, want 1", result.BrokenCount)
	}
	d := result.Details[0]
	if d.Status != "broken" || d.Target != "tests/GoneTests.cs" || d.Symbol != "Foo" {
		t.Errorf("detail = %+v", d)
	}
}

func TestValidateLinksNoTestOracle(t *testing.T) {
	// Without a file-existence oracle, test edges are warnings, not failures.
	engine := newEngineWith(edge("Foo", "tests/FooTests.cs", "Foo_Works", scan.OriginExplicit))

	result := engine.ValidateLinks(&ValidTargets{})
	if result.WarningCount != 1 {
		t.Errorf("WarningCount = %d, want 1", result.WarningCount)
	}
	if result.BrokenCount != 0 {
		t.Errorf("BrokenCount = %d, want 0", result.BrokenCount)
	}
	if result.Details[0].Status != "warning" {
		t.Errorf("status = %q, want warning", result.Details[0].Status)
	}
}

func TestValidateLinksDocTargets(t *testing.T) {
	engine := newEngineWith(
		edge("Foo", "v1.2/foo.md", "FooDoc", scan.OriginExplicit),
		edge("Bar", "v1.2/missing.md", "BarDoc", scan.OriginExplicit),
	)
	targets := &ValidTargets{Docs: map[string]bool{"foo": true}}

	result := engine.ValidateLinks(targets)
	if result.ValidCount != 1 || result.BrokenCount != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestLoadTargetsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	content := `docs:
  - v1.2/guide.md
  - overview.md
tests:
  - tests/FooTests.cs
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	targets, err := LoadTargetsFile(path)
	if err != nil {
		t.Fatalf("LoadTargetsFile: %v", err)
	}
	if !targets.Docs["guide"] || !targets.Docs["overview"] {
		t.Errorf("Docs = %v, want normalized guide and overview", targets.Docs)
	}
	if !targets.Tests["tests/FooTests.cs"] {
		t.Errorf("Tests = %v", targets.Tests)
	}
}

func TestLoadTargetsFileNoTestsSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	if err := os.WriteFile(path, []byte("docs:\n  - a.md\n"), 0644); err != nil {
		t.Fatal(err)
	}

	targets, err := LoadTargetsFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if targets.Tests != nil {
		t.Error("absent tests section should leave the oracle nil")
	}
}

func TestLoadTargetsFileMissing(t *testing.T) {
	if _, err := LoadTargetsFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing targets file should error")
	}
}
