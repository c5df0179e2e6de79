package report

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/campusmetrics/cataloglens/models"
	"github.com/campusmetrics/cataloglens/pkg/db"
)

func TestReport(t *testing.T) {
	database, err := db.OpenAt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer database.Close()

	runID, err := database.CreateRun(2, 2, "results")
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	for _, g := range []models.GroupMetrics{
		{
			Department:      "Chemistry",
			DocumentCount:   1,
			MeanReadability: 45.0,
			WordCounts:      map[string]int{"organic": 8, "reactions": 5},
		},
		{
			Department:      "English",
			DocumentCount:   1,
			MeanReadability: 62.0,
			WordCounts:      map[string]int{"literature": 11, "writing": 4},
		},
	} {
		if err := database.SaveGroupMetrics(runID, g); err != nil {
			t.Fatalf("SaveGroupMetrics() failed: %v", err)
		}
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	outDir := t.TempDir()

	paths, err := Report(logger, database, runID, outDir, nil, 5)
	if err != nil {
		t.Fatalf("Report() failed: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("got %d chart files, want 4", len(paths))
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("chart file missing: %v", err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("chart file %s is empty", p)
		}
	}

	// Unknown run has no aggregates
	if _, err := Report(logger, database, runID+100, outDir, nil, 5); err == nil {
		t.Error("expected error for run with no group metrics")
	}
}
