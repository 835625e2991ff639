package extract

import (
	"net/url"
	"strings"

	"promptdex/internal/record"
)

// attachmentEndpoint marks API responses that only carry signed attachment
// URLs; they hold no row data and are skipped. The check is against the URL
// path only, never the query string.
const attachmentEndpoint = "readSignedAttachmentUrls"

// FromAPI extracts structured prompt records from a capture's intercepted
// API responses. Schema sections in a response are merged (later wins on id
// collision) into a single column/option map for that response. Both known
// table-data locations are probed and their yields concatenated; duplicate
// discovery across locations is handled downstream by the deduplicator,
// not suppressed here.
func FromAPI(c *Capture) []record.Record {
	var prompts []record.Record

	for _, resp := range c.APIData {
		respData := asMap(asMap(resp.Data)["data"])
		if len(respData) == 0 {
			m, ok := resp.Data.(map[string]any)
			if !ok {
				continue
			}
			respData = m
		}

		if strings.Contains(urlPath(resp.URL), attachmentEndpoint) {
			continue
		}

		colMap := make(map[string]ColumnDescriptor)
		selectMap := make(map[string]string)
		for _, raw := range asList(respData["tableSchemas"]) {
			schema := asMap(raw)
			for id, col := range BuildColumnMap(schema) {
				colMap[id] = col
			}
			for id, label := range BuildSelectMap(schema) {
				selectMap[id] = label
			}
		}

		// Location 1: preloadPageQueryResults.tableDataById (shared pages).
		preload := asMap(asMap(respData["preloadPageQueryResults"])["tableDataById"])
		for _, tblID := range sortedMapKeys(preload) {
			prompts = append(prompts, RowsFromTableData(tblID, preload[tblID], colMap, selectMap)...)
		}

		// Location 2: tableDatas (read endpoint), a list or a map.
		switch tableDatas := respData["tableDatas"].(type) {
		case []any:
			for _, raw := range tableDatas {
				td, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				tblID := asString(td["id"])
				if tblID == "" {
					tblID = "unknown"
				}
				prompts = append(prompts, RowsFromTableData(tblID, td, colMap, selectMap)...)
			}
		case map[string]any:
			for _, tblID := range sortedMapKeys(tableDatas) {
				prompts = append(prompts, RowsFromTableData(tblID, tableDatas[tblID], colMap, selectMap)...)
			}
		}
	}

	return prompts
}

// urlPath returns the path component of a URL, or the raw string when it
// cannot be parsed.
func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Path
}
