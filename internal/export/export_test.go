package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tracelink/internal/logging"
	"tracelink/internal/scan"
	"tracelink/internal/trace"
)

func quietLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Level: logging.ErrorLevel, Output: &bytes.Buffer{}})
}

func bundleIndex() *trace.Index {
	idx := trace.NewIndex()
	idx.Insert(trace.LinkEdge{
		Source:   trace.SourceRef{File: "src/IFoo.cs", Line: 3, Symbol: "IFoo", Kind: scan.KindInterface},
		Artifact: trace.ArtifactRef{File: "Tests/FooTests.cs", Member: "Foo_Works"},
		Origin:   scan.OriginExplicit,
	})
	idx.Meta = trace.Metadata{
		RunID:            "export-run",
		GeneratedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		SourceFileCount:  1,
		SymbolCount:      1,
		ArtifactKeyCount: 1,
	}
	return idx
}

func TestSnapshotBundleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "trace.json.zst")

	if err := SnapshotBundle(path, bundleIndex(), quietLogger()); err != nil {
		t.Fatalf("SnapshotBundle: %v", err)
	}

	loaded, err := ReadBundle(path)
	if err != nil {
		t.Fatalf("ReadBundle: %v", err)
	}
	edges := loaded.Forward["IFoo"]
	if len(edges) != 1 || edges[0].Artifact.Member != "Foo_Works" {
		t.Errorf("forward[IFoo] = %v", edges)
	}
	if loaded.Meta.RunID != "export-run" {
		t.Errorf("RunID = %q, want export-run", loaded.Meta.RunID)
	}
}

func TestSnapshotBundleIsCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json.zst")
	if err := SnapshotBundle(path, bundleIndex(), quietLogger()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// zstd frame magic number.
	magic := []byte{0x28, 0xb5, 0x2f, 0xfd}
	if len(data) < 4 || !bytes.Equal(data[:4], magic) {
		t.Errorf("bundle does not start with zstd magic: % x", data)
	}
}

func TestSnapshotBundleNilIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json.zst")
	if err := SnapshotBundle(path, nil, quietLogger()); err == nil {
		t.Error("nil index should error")
	}
}

func TestReadBundleMissing(t *testing.T) {
	if _, err := ReadBundle(filepath.Join(t.TempDir(), "nope.zst")); err == nil {
		t.Error("missing bundle should error")
	}
}
