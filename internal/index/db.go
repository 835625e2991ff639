// Package index maintains an optional SQLite FTS5 index over the processed
// corpus, for fast full-text queries without rescanning the master file.
// The index is a derived artifact: it is rebuilt from the corpus, never
// written to by anything else.
package index

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// IndexFileName is the index database file inside the corpus directory.
const IndexFileName = "index.db"

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Open opens (or creates) the index database inside the corpus directory
// and applies migrations.
func Open(corpusDir string) (*sql.DB, error) {
	dbPath := filepath.Join(corpusDir, IndexFileName)
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := getUserVersion(db)
	if err != nil {
		return err
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS prompts (
		  pos          INTEGER PRIMARY KEY,
		  id           TEXT,
		  category     TEXT NOT NULL,
		  model        TEXT,
		  output_type  TEXT NOT NULL,
		  source       TEXT,
		  name         TEXT,
		  prompt_text  TEXT NOT NULL,
		  styles_json  TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_prompts_category
		ON prompts(category);

		CREATE INDEX IF NOT EXISTS idx_prompts_model
		ON prompts(model)
		WHERE model IS NOT NULL;

		CREATE VIRTUAL TABLE IF NOT EXISTS prompts_fts USING fts5(
		  prompt_text, name, styles,
		  content='prompts', content_rowid='pos'
		);

		CREATE TABLE IF NOT EXISTS index_meta (
		  key   TEXT PRIMARY KEY,
		  value TEXT NOT NULL
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := setUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// getUserVersion returns the current schema version (user_version pragma).
func getUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// setUserVersion updates the schema version (user_version pragma).
func setUserVersion(db *sql.DB, version int) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", version)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
