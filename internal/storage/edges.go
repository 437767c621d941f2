package storage

import (
	"database/sql"
	"fmt"
	"time"

	"tracelink/internal/scan"
	"tracelink/internal/trace"
)

// EdgeStore persists trace index edges in SQLite so queries can run
// against the last build without re-scanning the repository
type EdgeStore struct {
	db *DB
}

// NewEdgeStore creates an edge store backed by the given database
func NewEdgeStore(db *DB) *EdgeStore {
	return &EdgeStore{db: db}
}

// SaveIndex replaces the stored edge set and build metadata with the
// contents of idx. The swap happens in a single transaction so readers
// never observe a half-written build.
func (s *EdgeStore) SaveIndex(idx *trace.Index) error {
	return s.db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM link_edges"); err != nil {
			return fmt.Errorf("failed to clear link_edges: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM build_meta"); err != nil {
			return fmt.Errorf("failed to clear build_meta: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO link_edges (
				seq, source_file, source_line, source_symbol, source_kind,
				artifact_file, artifact_member, artifact_container, artifact_line, origin
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare edge insert: %w", err)
		}
		defer stmt.Close()

		for i, edge := range idx.Edges() {
			_, err := stmt.Exec(
				i,
				edge.Source.File,
				edge.Source.Line,
				edge.Source.Symbol,
				string(edge.Source.Kind),
				edge.Artifact.File,
				edge.Artifact.Member,
				edge.Artifact.Container,
				edge.Artifact.Line,
				string(edge.Origin),
			)
			if err != nil {
				return fmt.Errorf("failed to insert edge %d: %w", i, err)
			}
		}

		_, err = tx.Exec(`
			INSERT INTO build_meta (
				run_id, generated_at, source_file_count, artifact_file_count,
				symbol_count, artifact_key_count
			) VALUES (?, ?, ?, ?, ?, ?)
		`,
			idx.Meta.RunID,
			idx.Meta.GeneratedAt.Format(time.RFC3339Nano),
			idx.Meta.SourceFileCount,
			idx.Meta.ArtifactFileCount,
			idx.Meta.SymbolCount,
			idx.Meta.ArtifactKeyCount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert build metadata: %w", err)
		}

		return nil
	})
}

// LoadIndex rebuilds a trace index from the stored edges. Edges are
// replayed in their original discovery order, so the rebuilt maps are
// identical to the ones the build produced. Returns nil when the store
// holds no build.
func (s *EdgeStore) LoadIndex() (*trace.Index, error) {
	var (
		runID       string
		generatedAt string
		meta        trace.Metadata
	)
	err := s.db.QueryRow(`
		SELECT run_id, generated_at, source_file_count, artifact_file_count,
		       symbol_count, artifact_key_count
		FROM build_meta LIMIT 1
	`).Scan(&runID, &generatedAt, &meta.SourceFileCount, &meta.ArtifactFileCount,
		&meta.SymbolCount, &meta.ArtifactKeyCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read build metadata: %w", err)
	}

	meta.RunID = runID
	meta.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse build timestamp: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT source_file, source_line, source_symbol, source_kind,
		       artifact_file, artifact_member, artifact_container, artifact_line, origin
		FROM link_edges ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read edges: %w", err)
	}
	defer rows.Close()

	idx := trace.NewIndex()
	for rows.Next() {
		var (
			edge   trace.LinkEdge
			kind   string
			origin string
		)
		err := rows.Scan(
			&edge.Source.File, &edge.Source.Line, &edge.Source.Symbol, &kind,
			&edge.Artifact.File, &edge.Artifact.Member, &edge.Artifact.Container,
			&edge.Artifact.Line, &origin,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan edge row: %w", err)
		}
		edge.Source.Kind = scan.SymbolKind(kind)
		edge.Origin = scan.Origin(origin)
		idx.Insert(edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate edges: %w", err)
	}

	idx.Meta = meta
	return idx, nil
}

// EdgeCount reports the number of stored edges
func (s *EdgeStore) EdgeCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM link_edges").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count edges: %w", err)
	}
	return n, nil
}
