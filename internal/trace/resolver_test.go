package trace

import (
	"bytes"
	"testing"

	"tracelink/internal/logging"
)

func discardLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Level: logging.ErrorLevel, Output: &bytes.Buffer{}})
}

func TestResolverExactStem(t *testing.T) {
	r := NewResolver([]string{"src/Foo.cs", "src/Bar.cs"}, discardLogger())

	file, ok := r.Resolve("Foo")
	if !ok {
		t.Fatal("expected a match")
	}
	if file != "src/Foo.cs" {
		t.Errorf("file = %q, want src/Foo.cs", file)
	}
}

func TestResolverInterfacePrefix(t *testing.T) {
	r := NewResolver([]string{"src/IDispatcher.cs"}, discardLogger())

	file, ok := r.Resolve("Dispatcher")
	if !ok {
		t.Fatal("expected a match")
	}
	if file != "src/IDispatcher.cs" {
		t.Errorf("file = %q, want src/IDispatcher.cs", file)
	}
}

func TestResolverSubstring(t *testing.T) {
	r := NewResolver([]string{"src/EventDispatcherFactory.cs"}, discardLogger())

	file, ok := r.Resolve("Dispatcher")
	if !ok {
		t.Fatal("expected a substring match")
	}
	if file != "src/EventDispatcherFactory.cs" {
		t.Errorf("file = %q", file)
	}
}

func TestResolverFirstMatchWins(t *testing.T) {
	// Both satisfy the predicate; sorted traversal order puts
	// EventDispatcherFactory.cs (substring) before IDispatcher.cs (prefix),
	// and the first satisfying file wins regardless of which condition hit.
	r := NewResolver([]string{"src/IDispatcher.cs", "src/EventDispatcherFactory.cs"}, discardLogger())

	file, ok := r.Resolve("Dispatcher")
	if !ok {
		t.Fatal("expected a match")
	}
	if file != "src/EventDispatcherFactory.cs" {
		t.Errorf("file = %q, want src/EventDispatcherFactory.cs (first in sorted order)", file)
	}
}

func TestResolverDeterministicAcrossInputOrder(t *testing.T) {
	files := []string{"src/IDispatcher.cs", "src/EventDispatcherFactory.cs"}
	reversed := []string{files[1], files[0]}

	a, _ := NewResolver(files, discardLogger()).Resolve("Dispatcher")
	b, _ := NewResolver(reversed, discardLogger()).Resolve("Dispatcher")

	if a != b {
		t.Errorf("resolution depends on input order: %q vs %q", a, b)
	}
}

func TestResolverNoMatch(t *testing.T) {
	r := NewResolver([]string{"src/Foo.cs"}, discardLogger())

	if _, ok := r.Resolve("Missing"); ok {
		t.Error("expected no match")
	}
	if _, ok := r.Resolve(""); ok {
		t.Error("empty subject should not match")
	}
}

func TestResolverFileCount(t *testing.T) {
	r := NewResolver([]string{"a.cs", "b.cs"}, discardLogger())
	if r.FileCount() != 2 {
		t.Errorf("FileCount = %d, want 2", r.FileCount())
	}
}
