// Package report implements the CLI action that renders the comparative
// charts from stored aggregates.
package report

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/campusmetrics/cataloglens/internal/common"
	"github.com/campusmetrics/cataloglens/models"
	"github.com/campusmetrics/cataloglens/pkg/charts"
	"github.com/campusmetrics/cataloglens/pkg/db"
	"github.com/campusmetrics/cataloglens/pkg/mapreduce"
)

func ReportAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	database, err := common.OpenDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	var runID int64
	if c.IsSet("run") {
		runID = int64(c.Int("run"))
	} else {
		runID, err = database.LatestRunID()
		if err != nil {
			return err
		}
	}

	words := common.SplitWordsFlag(c.String("words"))
	paths, err := Report(logger, database, runID, c.String("out"), words, c.Int("top-k"))
	if err != nil {
		return err
	}

	fmt.Printf("Rendered %d charts for run %d:\n", len(paths), runID)
	for _, p := range paths {
		fmt.Printf("  %s\n", p)
	}

	return nil
}

// Report renders the chart set for a run. When words is nil the top-K corpus
// keywords drive the Sankey, matching the analyze output; an explicit list
// overrides that.
func Report(logger *slog.Logger, database *db.DB, runID int64, outDir string, words []string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = 10
	}
	if outDir == "" {
		outDir = "results"
	}

	groups, err := database.ListGroupMetrics(runID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("run %d has no group metrics", runID)
	}

	if words == nil {
		words = corpusTopWords(groups, topK)
	}
	logger.Info("Rendering charts", "run_id", runID, "departments", len(groups), "words", len(words))

	renderer, err := charts.NewRenderer(outDir)
	if err != nil {
		return nil, err
	}

	paths, err := renderer.RenderAll(groups, words, topK)
	if err != nil {
		return paths, err
	}
	for _, p := range paths {
		logger.Info("Wrote chart", "path", p)
	}

	return paths, nil
}

func corpusTopWords(groups []models.GroupMetrics, topK int) []string {
	maps := make([]map[string]int, 0, len(groups))
	for _, g := range groups {
		maps = append(maps, g.WordCounts)
	}
	return mapreduce.TopKWords(mapreduce.Reduce(maps), topK)
}
