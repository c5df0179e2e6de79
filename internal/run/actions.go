// Package run implements the single-pass pipeline command: ingest, analyze
// and report in one invocation.
package run

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/campusmetrics/cataloglens/internal/analyze"
	"github.com/campusmetrics/cataloglens/internal/common"
	"github.com/campusmetrics/cataloglens/internal/ingest"
	"github.com/campusmetrics/cataloglens/internal/report"
	"github.com/campusmetrics/cataloglens/models"
	"github.com/campusmetrics/cataloglens/pkg/db"
)

func RunAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg := models.DefaultConfig()
	if c.IsSet("config") {
		var err error
		cfg, err = models.LoadConfig(c.String("config"))
		if err != nil {
			return err
		}
	}

	// CLI flags override config file values.
	if c.IsSet("input") {
		cfg.InputPath = c.String("input")
	}
	if c.IsSet("out") {
		cfg.OutputDir = c.String("out")
	}
	if c.IsSet("stopwords") {
		cfg.StopwordFile = c.String("stopwords")
	}
	if c.IsSet("top-k") {
		cfg.TopK = c.Int("top-k")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}

	if cfg.InputPath == "" {
		return fmt.Errorf("no input provided: use --input or set input_path in the config file")
	}

	database, err := openStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	count, err := ingest.Ingest(logger, database, cfg.InputPath)
	if err != nil {
		return err
	}
	fmt.Printf("Ingested %d documents\n", count)

	summary, err := analyze.Analyze(logger, database, analyze.Options{
		OutputDir:    cfg.OutputDir,
		StopwordFile: cfg.StopwordFile,
		TopK:         cfg.TopK,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Run %d: %d documents across %d departments\n",
		summary.RunID, summary.DocumentCount, summary.DepartmentCount)

	words := common.SplitWordsFlag(c.String("words"))
	paths, err := report.Report(logger, database, summary.RunID, cfg.OutputDir, words, cfg.TopK)
	if err != nil {
		return err
	}

	fmt.Printf("Rendered %d charts:\n", len(paths))
	for _, p := range paths {
		fmt.Printf("  %s\n", p)
	}

	return nil
}

// openStore opens the store at path, falling back to the default location
// next to the binary when neither --db nor the config file sets one.
func openStore(path string) (*db.DB, error) {
	if path != "" {
		return db.OpenAt(path)
	}
	return db.Open()
}
