// Package db implements the CLI actions that inspect the store.
package db

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/campusmetrics/cataloglens/internal/common"
	"github.com/campusmetrics/cataloglens/pkg/storage"
)

func RunsAction(c *cli.Context) error {
	database, err := common.OpenDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-10s %-12s %-30s\n",
		"ID", "Created", "Docs", "Departments", "Output Dir")
	fmt.Println(strings.Repeat("-", 80))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-10d %-12d %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.DocumentCount,
			r.DepartmentCount,
			r.OutputDir,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'cataloglens report --run <id>' to re-render a run's charts\n")

	return nil
}

// SummaryAction prints the summary.yaml written by a run's analyze pass.
func SummaryAction(c *cli.Context) error {
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

	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}
	if run.OutputDir == "" {
		return fmt.Errorf("run %d has no output directory", runID)
	}

	s := &storage.Storage{}
	data, err := s.ReadFile(filepath.Join(run.OutputDir, "summary.yaml"))
	if err != nil {
		return fmt.Errorf("summary not found for run %d: %w", runID, err)
	}

	// Print run reminder as YAML comment
	fmt.Printf("# Run: %d\n", runID)
	fmt.Print(string(data))

	return nil
}

func StatsAction(c *cli.Context) error {
	database, err := common.OpenDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	counts, err := database.DepartmentCounts()
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}

	fmt.Printf("Database: %s\n", database.Path())
	fmt.Println(strings.Repeat("=", 60))

	if len(counts) == 0 {
		fmt.Println("No documents ingested")
		return nil
	}

	departments := make([]string, 0, len(counts))
	total := 0
	for dept, n := range counts {
		departments = append(departments, dept)
		total += n
	}
	sort.Strings(departments)

	fmt.Printf("\nDocuments by department (%d total):\n", total)
	fmt.Println(strings.Repeat("-", 60))
	for _, dept := range departments {
		fmt.Printf("%-40s %d\n", dept, counts[dept])
	}

	return nil
}
