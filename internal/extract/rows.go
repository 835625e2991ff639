package extract

import (
	"fmt"
	"unicode/utf8"

	"promptdex/internal/record"
)

// minRowContentChars is the earliest content gate: a row survives only if
// some non-bookkeeping field holds a string longer than this. The later
// noise filter applies a stricter 30-char gate.
const minRowContentChars = 20

// rowEntry pairs a row id with its raw payload, preserving source order for
// list-shaped row collections.
type rowEntry struct {
	id   string
	data map[string]any
}

// RowsFromTableData extracts flat prompt records from a single raw table.
// The row collection is located by probing the known encodings in order:
// partialRowById, rowsById, then a plain rows list (rows without an id get
// a synthetic one). The first non-empty shape wins.
func RowsFromTableData(tableID string, tableData any, colMap map[string]ColumnDescriptor, selectMap map[string]string) []record.Record {
	var records []record.Record

	for _, row := range collectRows(tableData) {
		cellValues := asMap(row.data["cellValuesByColumnId"])
		if len(cellValues) == 0 {
			cellValues = asMap(row.data["cells"])
		}
		if len(cellValues) == 0 {
			continue
		}

		rec := record.Record{
			record.FieldID:      row.id,
			record.FieldTableID: tableID,
		}

		for _, colID := range sortedMapKeys(cellValues) {
			col, ok := colMap[colID]
			if !ok {
				col = ColumnDescriptor{Name: colID, Type: TypeUnknown}
			}
			if clean := NormalizeCell(cellValues[colID], col, selectMap); clean != nil {
				rec[col.Name] = clean
			}
		}

		if hasPromptContent(rec) {
			records = append(records, rec)
		}
	}

	return records
}

// collectRows resolves the row collection from whichever encoding the table
// uses. Map-shaped collections are walked in sorted id order.
func collectRows(tableData any) []rowEntry {
	m, ok := tableData.(map[string]any)
	if !ok {
		return nil
	}

	rows := asMap(m["partialRowById"])
	if len(rows) == 0 {
		rows = asMap(m["rowsById"])
	}
	if len(rows) > 0 {
		entries := make([]rowEntry, 0, len(rows))
		for _, id := range sortedMapKeys(rows) {
			if data, ok := rows[id].(map[string]any); ok {
				entries = append(entries, rowEntry{id: id, data: data})
			}
		}
		return entries
	}

	var entries []rowEntry
	for i, raw := range asList(m["rows"]) {
		data, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		id := asString(data["id"])
		if id == "" {
			id = fmt.Sprintf("row%d", i)
		}
		entries = append(entries, rowEntry{id: id, data: data})
	}
	return entries
}

// hasPromptContent reports whether the record carries meaningful text:
// at least one field outside the id/name/date bookkeeping set whose string
// value exceeds the content gate.
func hasPromptContent(rec record.Record) bool {
	for k, v := range rec {
		switch k {
		case record.FieldID, record.FieldTableID, "Name", "Date":
			continue
		}
		if s, ok := v.(string); ok && utf8.RuneCountInString(s) > minRowContentChars {
			return true
		}
	}
	return false
}
