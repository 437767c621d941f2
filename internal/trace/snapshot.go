package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SnapshotVersion is the current version of the snapshot format.
const SnapshotVersion = 1

// snapshotFile is the on-disk shape: {version, forward, reverse, metadata}.
type snapshotFile struct {
	Version  int                   `json:"version"`
	Forward  map[string][]LinkEdge `json:"forward"`
	Reverse  map[string][]LinkEdge `json:"reverse"`
	Metadata Metadata              `json:"metadata"`
}

// SnapshotPayload returns the serializable snapshot form of idx,
// shared by the on-disk snapshot writer and the export bundler.
func SnapshotPayload(idx *Index) interface{} {
	return snapshotFile{
		Version:  SnapshotVersion,
		Forward:  idx.Forward,
		Reverse:  idx.Reverse,
		Metadata: idx.Meta,
	}
}

// DecodeSnapshot reads a snapshot payload from r. Unlike LoadSnapshot,
// a version mismatch is an error here: a bundle was produced for this
// exact format, never as a rebuildable cache.
func DecodeSnapshot(r io.Reader) (*Index, error) {
	var snap snapshotFile
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	idx := NewIndex()
	if snap.Forward != nil {
		idx.Forward = snap.Forward
	}
	if snap.Reverse != nil {
		idx.Reverse = snap.Reverse
	}
	idx.Meta = snap.Metadata
	return idx, nil
}

// SaveSnapshot writes the index to path. The write is atomic (temp file +
// rename) so a reader loading at startup never sees a partial snapshot.
func SaveSnapshot(path string, idx *Index) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshotFile{
		Version:  SnapshotVersion,
		Forward:  idx.Forward,
		Reverse:  idx.Reverse,
		Metadata: idx.Meta,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publishing snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads an index snapshot from path.
// Returns nil without error if no snapshot exists or the version does not
// match (treated as no snapshot, forcing a rebuild).
func LoadSnapshot(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	if snap.Version != SnapshotVersion {
		return nil, nil
	}

	idx := NewIndex()
	if snap.Forward != nil {
		idx.Forward = snap.Forward
	}
	if snap.Reverse != nil {
		idx.Reverse = snap.Reverse
	}
	idx.Meta = snap.Metadata
	return idx, nil
}
