package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"promptdex/internal/config"
	"promptdex/internal/errors"
	"promptdex/internal/index"
	"promptdex/internal/pipeline"
	"promptdex/internal/report"
	"promptdex/internal/search"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "promptdex",
		Usage:   "Prompt corpus extractor and search",
		Version: Version,
		Commands: []*cli.Command{
			extractCmd(cfg, baseDir),
			searchCmd(cfg, baseDir),
			randomCmd(cfg, baseDir),
			statsCmd(cfg, baseDir),
			categoriesCmd(cfg, baseDir),
			indexCmd(cfg, baseDir),
			reportCmd(cfg, baseDir),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// extractCmd creates the extract command.
func extractCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "Process capture files into the categorized prompt corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "Capture directory (defaults to configured raw dir)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Corpus directory (defaults to configured corpus dir)"},
			&cli.BoolFlag{Name: "verbose", Usage: "Enable debug logging"},
		},
		Action: func(c *cli.Context) error {
			inputDir := c.String("input")
			if inputDir == "" {
				inputDir = resolveDir(cfg.RawDir, baseDir)
			}
			outputDir := c.String("output")
			if outputDir == "" {
				outputDir = corpusDir(cfg, baseDir)
			}

			logger, err := newLogger(c.Bool("verbose"))
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			defer logger.Sync()

			stats, err := pipeline.Run(pipeline.RunInput{
				InputDir:  inputDir,
				OutputDir: outputDir,
			}, logger)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(stats)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the prompt corpus",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category"},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "Filter by AI model"},
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Filter by output type (image/video/text/generator)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Max results (defaults to configured limit)"},
			&cli.BoolFlag{Name: "full", Usage: "Show full prompt text"},
			&cli.BoolFlag{Name: "indexed", Usage: "Query the SQLite FTS index instead of scanning the master file"},
		},
		Action: func(c *cli.Context) error {
			dir := corpusDir(cfg, baseDir)
			query := c.Args().First()
			limit := c.Int("limit")
			if limit <= 0 {
				limit = cfg.SearchLimit
			}

			if c.Bool("indexed") {
				db, err := index.Open(dir)
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				defer db.Close()

				hits, err := index.Query(db, index.QueryInput{
					Query:      query,
					Category:   c.String("category"),
					Model:      c.String("model"),
					OutputType: c.String("type"),
					Limit:      limit,
				})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(hits)
			}

			records, err := search.LoadCorpus(dir)
			if err != nil {
				return outputError(err)
			}

			output := search.Search(records, search.Input{
				Query:      query,
				Category:   c.String("category"),
				Model:      c.String("model"),
				OutputType: c.String("type"),
				Limit:      limit,
				Full:       c.Bool("full"),
			})

			return outputJSON(output)
		},
	}
}

// randomCmd creates the random command.
func randomCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "random",
		Usage: "Show one random prompt (full text)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category"},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "Filter by AI model"},
		},
		Action: func(c *cli.Context) error {
			records, err := search.LoadCorpus(corpusDir(cfg, baseDir))
			if err != nil {
				return outputError(err)
			}

			output, err := search.Random(records, search.RandomInput{
				Category: c.String("category"),
				Model:    c.String("model"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show corpus statistics",
		Action: func(c *cli.Context) error {
			stats, err := search.LoadStats(corpusDir(cfg, baseDir))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(search.BuildStatsView(stats))
		},
	}
}

// categoriesCmd creates the categories command.
func categoriesCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List categories with prompt counts",
		Action: func(c *cli.Context) error {
			stats, err := search.LoadStats(corpusDir(cfg, baseDir))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(search.BuildCategoriesView(stats))
		},
	}
}

// indexCmd creates the index command.
func indexCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Rebuild the SQLite FTS index from the corpus",
		Action: func(c *cli.Context) error {
			dir := corpusDir(cfg, baseDir)
			records, err := search.LoadCorpus(dir)
			if err != nil {
				return outputError(err)
			}

			result, err := index.Build(dir, records)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// reportCmd creates the report command.
func reportCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Write a Markdown and HTML digest of the corpus",
		Action: func(c *cli.Context) error {
			dir := corpusDir(cfg, baseDir)
			records, err := search.LoadCorpus(dir)
			if err != nil {
				return outputError(err)
			}
			stats, err := search.LoadStats(dir)
			if err != nil {
				return outputError(err)
			}

			result, err := report.Write(dir, records, stats)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(result)
		},
	}
}

// Helpers

// newLogger builds the structured logger for pipeline runs.
func newLogger(verbose bool) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	if verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return logCfg.Build()
}

// resolveDir resolves a configured directory against the base dir.
func resolveDir(dir, baseDir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(baseDir, dir)
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if pdexErr, ok := err.(*errors.PdexError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", pdexErr.Code, pdexErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
