package trace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tracelink/internal/scan"
)

func sampleIndex() *Index {
	idx := NewIndex()
	idx.Insert(LinkEdge{
		Source:   SourceRef{File: "src/IFoo.cs", Line: 3, Symbol: "IFoo", Kind: scan.KindInterface},
		Artifact: ArtifactRef{File: "Tests/FooTests.cs", Member: "Foo_Works"},
		Origin:   scan.OriginExplicit,
	})
	idx.Insert(LinkEdge{
		Source:   SourceRef{File: "src/IDispatcher.cs", Symbol: "Dispatcher"},
		Artifact: ArtifactRef{File: "tests/DispatcherTests.cs", Member: "Send_Routes", Container: "DispatcherTests", Line: 5},
		Origin:   scan.OriginConvention,
	})
	idx.Meta = Metadata{
		RunID:             "test-run",
		GeneratedAt:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		SourceFileCount:   2,
		ArtifactFileCount: 2,
		SymbolCount:       2,
		ArtifactKeyCount:  2,
	}
	return idx
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tracelink", "trace-index.json")
	orig := sampleIndex()

	if err := SaveSnapshot(path, orig); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadSnapshot returned nil for existing snapshot")
	}

	if len(loaded.Forward) != len(orig.Forward) {
		t.Errorf("forward key count = %d, want %d", len(loaded.Forward), len(orig.Forward))
	}
	edges := loaded.Forward["IFoo"]
	if len(edges) != 1 || edges[0].Artifact.Member != "Foo_Works" {
		t.Errorf("forward[IFoo] = %v", edges)
	}
	rev := loaded.Reverse["DispatcherTests.Send_Routes"]
	if len(rev) != 1 || rev[0].Source.Symbol != "Dispatcher" {
		t.Errorf("reverse[DispatcherTests.Send_Routes] = %v", rev)
	}
	if loaded.Meta.RunID != "test-run" {
		t.Errorf("RunID = %q, want test-run", loaded.Meta.RunID)
	}
	if !loaded.Meta.GeneratedAt.Equal(orig.Meta.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", loaded.Meta.GeneratedAt, orig.Meta.GeneratedAt)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	idx, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing snapshot should not error, got %v", err)
	}
	if idx != nil {
		t.Error("missing snapshot should yield nil index")
	}
}

func TestLoadSnapshotVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace-index.json")
	stale := map[string]interface{}{
		"version": SnapshotVersion + 1,
		"forward": map[string]interface{}{},
		"reverse": map[string]interface{}{},
	}
	data, _ := json.Marshal(stale)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	idx, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("version mismatch should not error, got %v", err)
	}
	if idx != nil {
		t.Error("version mismatch should yield nil index so callers rebuild")
	}
}

func TestLoadSnapshotCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace-index.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSnapshot(path); err == nil {
		t.Error("corrupt snapshot should surface an error")
	}
}

func TestSnapshotFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace-index.json")
	if err := SaveSnapshot(path, sampleIndex()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("snapshot is not a JSON object: %v", err)
	}
	for _, field := range []string{"version", "forward", "reverse", "metadata"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("snapshot missing %q field", field)
		}
	}
}

func TestStoreSwap(t *testing.T) {
	store := NewStore()
	if store.Current() != nil {
		t.Error("fresh store should hold no index")
	}

	first := sampleIndex()
	store.Swap(first)
	if store.Current() != first {
		t.Error("Current should return the swapped-in index")
	}

	second := NewIndex()
	store.Swap(second)
	if store.Current() != second {
		t.Error("Swap should replace the previous index")
	}
}
