package main

import (
	"fmt"
	"path/filepath"

	"tracelink/internal/config"
	"tracelink/internal/logging"
	"tracelink/internal/query"
	"tracelink/internal/storage"
	"tracelink/internal/trace"
)

// loadEngine loads the most recent index and wraps it in a query
// engine. The JSON snapshot is preferred; the SQLite edge store is the
// fallback when the snapshot is missing or from an older format.
func loadEngine(repoRoot string, cfg *config.Config, logger *logging.Logger) (*query.Engine, error) {
	snapshotPath := filepath.Join(repoRoot, filepath.FromSlash(cfg.Snapshot.Path))
	idx, err := trace.LoadSnapshot(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if idx == nil {
		logger.Debug("No usable snapshot, trying edge store", map[string]interface{}{
			"snapshot": cfg.Snapshot.Path,
		})
		db, dbErr := storage.Open(repoRoot, logger)
		if dbErr != nil {
			return nil, fmt.Errorf("failed to open edge store: %w", dbErr)
		}
		defer db.Close()

		idx, err = storage.NewEdgeStore(db).LoadIndex()
		if err != nil {
			return nil, fmt.Errorf("failed to load edges: %w", err)
		}
	}

	if idx == nil {
		return nil, fmt.Errorf("no trace index found; run 'tracelink build' first")
	}

	store := trace.NewStore()
	store.Swap(idx)
	return query.NewEngine(store, logger), nil
}
