package index

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"promptdex/internal/errors"
	"promptdex/internal/record"
)

// BuildResult reports what a rebuild produced.
type BuildResult struct {
	IndexPath string `json:"index_path"`
	Total     int    `json:"total"`
	BuildID   string `json:"build_id"`
}

// Build rebuilds the index from scratch for the given corpus. Any existing
// index file is removed first, so a rebuild never carries stale rows.
func Build(corpusDir string, records []record.Record) (*BuildResult, error) {
	dbPath := filepath.Join(corpusDir, IndexFileName)
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
			return nil, errors.NewInternal(err)
		}
	}

	db, err := Open(corpusDir)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback()

	if err := insertRecords(tx, records); err != nil {
		return nil, err
	}

	buildID := newBuildID()
	meta := map[string]string{
		"built_at": time.Now().Format("2006-01-02 15:04:05"),
		"build_id": buildID,
		"total":    jsonNumber(len(records)),
	}
	for key, value := range meta {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO index_meta (key, value) VALUES (?, ?)",
			key, value,
		); err != nil {
			return nil, errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &BuildResult{
		IndexPath: dbPath,
		Total:     len(records),
		BuildID:   buildID,
	}, nil
}

// insertRecords fills the prompts table and its FTS shadow. Row position is
// the record's index in the master file, so query results can be traced back
// to the corpus.
func insertRecords(tx *sql.Tx, records []record.Record) error {
	stmt, err := tx.Prepare(`
		INSERT INTO prompts (
			pos, id, category, model, output_type, source, name,
			prompt_text, styles_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer stmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO prompts_fts (rowid, prompt_text, name, styles)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer ftsStmt.Close()

	for pos, rec := range records {
		var stylesJSON sql.NullString
		styles := rec.StringList(record.FieldStyles)
		if len(styles) > 0 {
			data, err := json.Marshal(styles)
			if err != nil {
				return errors.NewInternal(err)
			}
			stylesJSON = sql.NullString{String: string(data), Valid: true}
		}

		name := rec.Str("Name")
		text := rec.BestText()

		if _, err := stmt.Exec(
			pos,
			toNullString(rec.Str(record.FieldID)),
			rec.Category(),
			toNullString(rec.Model()),
			rec.OutputType(),
			toNullString(rec.Str(record.FieldSourceName)),
			toNullString(name),
			text,
			stylesJSON,
		); err != nil {
			return errors.NewInternal(err)
		}

		stylesText := strings.Join(styles, " ")
		if _, err := ftsStmt.Exec(pos, text, name, stylesText); err != nil {
			return errors.NewInternal(err)
		}
	}

	return nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func jsonNumber(n int) string {
	data, _ := json.Marshal(n)
	return string(data)
}

// newBuildID generates a ULID identifying one index build.
func newBuildID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
