package paths

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"src/Foo.cs", "src/Foo.cs"},
		{`src\Foo.cs`, "src/Foo.cs"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizePath(tt.input); got != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"src/IDispatcher.cs", "IDispatcher"},
		{"Foo.cs", "Foo"},
		{"tests/FooTests.cs", "FooTests"},
		{"noext", "noext"},
		{"a/b/c.tar.gz", "c.tar"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Stem(tt.input); got != tt.expected {
				t.Errorf("Stem(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalizePath(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(sub, "Foo.cs")
	if err := os.WriteFile(file, []byte("class Foo {}"), 0644); err != nil {
		t.Fatal(err)
	}

	canonical, err := CanonicalizePath(file, dir)
	if err != nil {
		t.Fatalf("CanonicalizePath failed: %v", err)
	}
	if canonical != "src/Foo.cs" {
		t.Errorf("canonical = %q, want %q", canonical, "src/Foo.cs")
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	write("src/Zeta.cs", "")
	write("src/Alpha.cs", "")
	write("src/readme.md", "")
	write("obj/Generated.cs", "")
	write(".git/config.cs", "")

	files, err := ListFiles(dir, ListOptions{
		Extensions: []string{".cs"},
		Exclude:    []string{"obj"},
	})
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}

	expected := []string{"src/Alpha.cs", "src/Zeta.cs"}
	if len(files) != len(expected) {
		t.Fatalf("files = %v, want %v", files, expected)
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], expected[i])
		}
	}

	if !sort.StringsAreSorted(files) {
		t.Error("ListFiles output should be sorted")
	}
}

func TestListFilesMissingRoot(t *testing.T) {
	_, err := ListFiles(filepath.Join(t.TempDir(), "nope"), ListOptions{})
	if err == nil {
		t.Error("expected error for missing root")
	}
}

func TestListFilesRootIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.cs")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ListFiles(file, ListOptions{}); err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestLogPath(t *testing.T) {
	p := LogPath("/repo")
	if filepath.ToSlash(p) != "/repo/.tracelink/logs/tracelink.log" {
		t.Errorf("LogPath = %q", p)
	}
}
