// Package extract turns raw scraped capture files into flat prompt records.
// Every function in the package is total: malformed, absent, or mistyped
// fields degrade to empty values instead of failing a record or a capture.
package extract

import (
	"encoding/json"
	"fmt"
	"os"

	"promptdex/internal/errors"
)

// Capture is one raw input document: everything the scraper retrieved for a
// single source table. Either or both of APIData/ScrollData may be present;
// API extraction takes precedence, scroll is the fallback.
type Capture struct {
	Key        string         `json:"key"`
	Name       string         `json:"name"`
	URL        string         `json:"url"`
	IDs        map[string]any `json:"ids"`
	APIData    []APIResponse  `json:"api_data"`
	ScrollData *ScrollData    `json:"scroll_data"`
	Status     string         `json:"status"`
}

// APIResponse is one intercepted API response. Data is left untyped because
// the payload schema varies per endpoint and per table.
type APIResponse struct {
	URL    string `json:"url"`
	Status int    `json:"status"`
	Data   any    `json:"data"`
}

// ScrollData is the unstructured bag of text and image URLs collected by
// scrolling the rendered page.
type ScrollData struct {
	Texts  []string `json:"texts"`
	Images []string `json:"images"`
}

// LoadCapture reads and parses one capture file.
func LoadCapture(path string) (*Capture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("read capture: %w", err))
	}
	var c Capture
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.NewParseFailed(path, err)
	}
	return &c, nil
}
