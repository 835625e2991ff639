package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"promptdex/internal/record"
)

const dupPromptAPI = "A castle at dusk, glowing windows and ivy covered walls of old stone."
const dupPromptScroll = "a castle at dusk glowing windows and ivy covered walls of old stone"

// writeCaptures lays out one API capture and one scroll capture whose only
// text is a near-duplicate of an API row.
func writeCaptures(t *testing.T, dir string) {
	t.Helper()

	apiCapture := map[string]any{
		"name": "Castle Prompts",
		"url":  "https://airtable.com/appX",
		"api_data": []any{
			map[string]any{
				"url": "https://airtable.com/v0.3/read",
				"data": map[string]any{
					"data": map[string]any{
						"tableSchemas": []any{
							map[string]any{
								"columns": []any{
									map[string]any{"id": "col1", "name": "Prompt", "type": "richText"},
									map[string]any{"id": "col2", "name": "Name", "type": "text"},
								},
							},
						},
						"preloadPageQueryResults": map[string]any{
							"tableDataById": map[string]any{
								"tblCastle": map[string]any{
									"rowsById": map[string]any{
										"rowA": map[string]any{
											"cellValuesByColumnId": map[string]any{
												"col1": dupPromptAPI,
												"col2": "Castle",
											},
										},
										"rowB": map[string]any{
											"cellValuesByColumnId": map[string]any{
												"col1": "a grey cat sleeping on a sunlit windowsill in an old farmhouse",
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
		"status": "ok",
	}

	scrollCapture := map[string]any{
		"name": "Scroll Gallery",
		"scroll_data": map[string]any{
			"texts":  []any{"Log in", dupPromptScroll},
			"images": []any{"https://example.com/castle.png"},
		},
		"status": "ok",
	}

	writeCaptureFile(t, filepath.Join(dir, "01_castle.json"), apiCapture)
	writeCaptureFile(t, filepath.Join(dir, "02_gallery.json"), scrollCapture)
}

func writeCaptureFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestRun_EndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeCaptures(t, inputDir)

	stats, err := Run(RunInput{InputDir: inputDir, OutputDir: outputDir}, nil)
	require.NoError(t, err)

	require.Equal(t, 3, stats.TotalRaw)
	require.Equal(t, 1, stats.DuplicatesRemoved)
	require.Equal(t, 0, stats.NoiseRemoved)
	require.Equal(t, 2, stats.TotalUnique)
	require.NotEmpty(t, stats.RunID)

	require.Equal(t, "api", stats.Tables["01_castle"].Source)
	require.Equal(t, "scroll", stats.Tables["02_gallery"].Source)
	require.Equal(t, "Castle Prompts", stats.Tables["01_castle"].Name)

	// Master file holds the final records with classification tags.
	data, err := os.ReadFile(filepath.Join(outputDir, MasterFileName))
	require.NoError(t, err)
	var records []record.Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)

	var castle record.Record
	for _, rec := range records {
		if rec["Prompt"] == dupPromptAPI {
			castle = rec
		}
		require.NotEmpty(t, rec.Category())
		require.NotEmpty(t, rec.OutputType())
		require.Contains(t, rec, record.FieldModel)
	}
	require.NotNil(t, castle, "canonical castle record missing from master file")

	// The canonical record accumulated both contributing tables.
	require.Equal(t, []string{"01_castle", "02_gallery"}, castle.StringList(record.FieldSources))
	// Fields only present on the scroll duplicate were merged in.
	require.Equal(t, "https://example.com/castle.png", castle.Str(record.FieldImageURL))
	// Fields already set on the canonical survived the merge.
	require.Equal(t, "Castle", castle.Str("Name"))

	// Each assigned category got its own file.
	for cat := range stats.Categories {
		_, err := os.Stat(filepath.Join(outputDir, cat, CategoryFileName))
		require.NoError(t, err)
	}
}

func TestRun_Idempotent(t *testing.T) {
	inputDir := t.TempDir()
	writeCaptures(t, inputDir)

	outA := t.TempDir()
	outB := t.TempDir()

	_, err := Run(RunInput{InputDir: inputDir, OutputDir: outA}, nil)
	require.NoError(t, err)
	_, err = Run(RunInput{InputDir: inputDir, OutputDir: outB}, nil)
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(outA, MasterFileName))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(outB, MasterFileName))
	require.NoError(t, err)
	require.Equal(t, string(a), string(b), "master file must be byte-identical across reruns")
}

func TestRun_EmptyInputDir(t *testing.T) {
	_, err := Run(RunInput{InputDir: t.TempDir(), OutputDir: t.TempDir()}, nil)
	require.Error(t, err)
}
