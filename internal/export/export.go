// Package export writes compressed snapshot bundles for external
// consumers that want the index without running a build themselves.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"tracelink/internal/logging"
	"tracelink/internal/trace"
)

// SnapshotBundle writes idx as a zstd-compressed JSON snapshot at path.
// The payload uses the same shape as the on-disk snapshot, so consumers
// can decompress and load it with the normal snapshot reader.
func SnapshotBundle(path string, idx *trace.Index, logger *logging.Logger) error {
	if idx == nil {
		return fmt.Errorf("no index to export")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}

	payload := trace.SnapshotPayload(idx)
	if err := json.NewEncoder(enc).Encode(payload); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush compressed snapshot: %w", err)
	}

	logger.Info("Exported snapshot bundle", map[string]interface{}{
		"path":    path,
		"symbols": len(idx.Forward),
		"edges":   idx.EdgeCount(),
	})

	return nil
}

// ReadBundle decompresses and decodes a snapshot bundle written by
// SnapshotBundle
func ReadBundle(path string) (*trace.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	return trace.DecodeSnapshot(dec)
}
