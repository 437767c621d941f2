package storage

import (
	"database/sql"
	"fmt"
)

// Schema version tracking
const currentSchemaVersion = 1

// initializeSchema creates all tables for a new database
func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		if err := createSchemaVersionTable(tx); err != nil {
			return err
		}

		if err := createLinkEdgesTable(tx); err != nil {
			return err
		}
		if err := createBuildMetaTable(tx); err != nil {
			return err
		}

		if err := setSchemaVersion(tx, currentSchemaVersion); err != nil {
			return err
		}

		db.logger.Info("Edge store schema initialized", map[string]interface{}{
			"version": currentSchemaVersion,
		})

		return nil
	})
}

// runMigrations runs any pending schema migrations
func (db *DB) runMigrations() error {
	version, err := db.getSchemaVersion()
	if err != nil {
		return err
	}

	if version == currentSchemaVersion {
		db.logger.Debug("Edge store schema is up to date", map[string]interface{}{
			"version": version,
		})
		return nil
	}

	db.logger.Info("Running edge store migrations", map[string]interface{}{
		"from_version": version,
		"to_version":   currentSchemaVersion,
	})

	// Migrations run sequentially as the schema evolves.

	return nil
}

// getSchemaVersion gets the current schema version
func (db *DB) getSchemaVersion() (int, error) {
	var tableName string
	err := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&tableName)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var version int
	err = db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return version, nil
}

// setSchemaVersion sets the schema version
func setSchemaVersion(tx *sql.Tx, version int) error {
	_, err := tx.Exec("DELETE FROM schema_version")
	if err != nil {
		return err
	}
	_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version)
	return err
}

// createSchemaVersionTable creates the schema_version tracking table
func createSchemaVersionTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	return err
}

// createLinkEdgesTable creates the link_edges table.
// seq preserves discovery order so a reload reproduces the exact
// per-symbol and per-artifact list ordering of the original build.
func createLinkEdgesTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS link_edges (
			seq INTEGER PRIMARY KEY,
			source_file TEXT NOT NULL,
			source_line INTEGER NOT NULL,
			source_symbol TEXT NOT NULL,
			source_kind TEXT NOT NULL,
			artifact_file TEXT NOT NULL,
			artifact_member TEXT NOT NULL,
			artifact_container TEXT NOT NULL,
			artifact_line INTEGER NOT NULL,
			origin TEXT NOT NULL CHECK(origin IN ('Explicit', 'Convention'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create link_edges table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_link_edges_symbol ON link_edges(source_symbol)",
		"CREATE INDEX IF NOT EXISTS idx_link_edges_artifact ON link_edges(artifact_file, artifact_member)",
	}

	for _, indexSQL := range indexes {
		if _, err := tx.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// createBuildMetaTable creates the build_meta table holding the
// metadata row of the most recent index build
func createBuildMetaTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS build_meta (
			run_id TEXT NOT NULL,
			generated_at TEXT NOT NULL,
			source_file_count INTEGER NOT NULL,
			artifact_file_count INTEGER NOT NULL,
			symbol_count INTEGER NOT NULL,
			artifact_key_count INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create build_meta table: %w", err)
	}
	return nil
}
