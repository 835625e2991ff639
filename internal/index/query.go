package index

import (
	"database/sql"
	"encoding/json"
	"strings"

	"promptdex/internal/errors"
)

// QueryInput contains parameters for an indexed query.
type QueryInput struct {
	Query      string
	Category   string
	Model      string
	OutputType string
	Limit      int
}

// Hit is one indexed query result.
type Hit struct {
	Pos        int      `json:"pos"`
	ID         string   `json:"id,omitempty"`
	Category   string   `json:"category"`
	Model      *string  `json:"model"`
	OutputType string   `json:"output_type"`
	Source     *string  `json:"source"`
	Name       string   `json:"name,omitempty"`
	Prompt     string   `json:"prompt"`
	Styles     []string `json:"styles,omitempty"`
}

// Query runs a full-text search over the index, ranked by bm25, with
// optional exact filters. Each query word is quoted so FTS syntax characters
// in prompt text cannot break the match expression.
func Query(db *sql.DB, input QueryInput) ([]Hit, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	words := strings.Fields(input.Query)
	if len(words) == 0 {
		return nil, errors.NewInvalidRequest("query must not be empty")
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
	}
	match := strings.Join(quoted, " ")

	query := `
		SELECT p.pos, p.id, p.category, p.model, p.output_type,
			p.source, p.name, p.prompt_text, p.styles_json
		FROM prompts_fts f
		JOIN prompts p ON p.pos = f.rowid
		WHERE prompts_fts MATCH ?
	`
	args := []any{match}

	if input.Category != "" {
		query += " AND p.category = ?"
		args = append(args, strings.ToLower(input.Category))
	}
	if input.Model != "" {
		query += " AND p.model = ? COLLATE NOCASE"
		args = append(args, input.Model)
	}
	if input.OutputType != "" {
		query += " AND p.output_type = ?"
		args = append(args, strings.ToLower(input.OutputType))
	}

	query += " ORDER BY bm25(prompts_fts) LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			hit        Hit
			id         sql.NullString
			model      sql.NullString
			source     sql.NullString
			name       sql.NullString
			stylesJSON sql.NullString
		)
		if err := rows.Scan(
			&hit.Pos, &id, &hit.Category, &model, &hit.OutputType,
			&source, &name, &hit.Prompt, &stylesJSON,
		); err != nil {
			return nil, errors.NewInternal(err)
		}
		hit.ID = id.String
		hit.Name = name.String
		if model.Valid {
			hit.Model = &model.String
		}
		if source.Valid {
			hit.Source = &source.String
		}
		if stylesJSON.Valid {
			if err := json.Unmarshal([]byte(stylesJSON.String), &hit.Styles); err != nil {
				return nil, errors.NewInternal(err)
			}
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return hits, nil
}

// Meta reads the index_meta table.
func Meta(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query("SELECT key, value FROM index_meta")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, errors.NewInternal(err)
		}
		meta[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return meta, nil
}
