package analyze

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/campusmetrics/cataloglens/models"
	"github.com/campusmetrics/cataloglens/pkg/db"
)

func setupTest(t *testing.T) (*db.DB, *slog.Logger) {
	t.Helper()

	database, err := db.OpenAt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database, slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestAnalyze(t *testing.T) {
	database, logger := setupTest(t)

	docs := []models.Document{
		{
			Department: "Mathematics",
			Title:      "Calculus I",
			SourcePath: "catalog.csv",
			Text:       "Limits and derivatives. Integrals of one variable. Applications to geometry.",
		},
		{
			Department: "Mathematics",
			Title:      "Linear Algebra",
			SourcePath: "catalog.csv",
			Text:       "Vector spaces and linear maps. Eigenvalues and eigenvectors.",
		},
		{
			Department: "Philosophy",
			Title:      "Ethics",
			SourcePath: "catalog.csv",
			Text:       "An examination of moral reasoning and normative ethical theories.",
		},
	}
	for _, d := range docs {
		if _, err := database.InsertDocument(d); err != nil {
			t.Fatalf("InsertDocument() failed: %v", err)
		}
	}

	outDir := t.TempDir()
	summary, err := Analyze(logger, database, Options{OutputDir: outDir, TopK: 5})
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}

	if summary.DocumentCount != 3 {
		t.Errorf("DocumentCount = %d, want 3", summary.DocumentCount)
	}
	if summary.DepartmentCount != 2 {
		t.Errorf("DepartmentCount = %d, want 2", summary.DepartmentCount)
	}
	if len(summary.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(summary.Groups))
	}
	if summary.Groups[0].Department != "Mathematics" || summary.Groups[1].Department != "Philosophy" {
		t.Errorf("groups out of order: %s, %s",
			summary.Groups[0].Department, summary.Groups[1].Department)
	}
	if summary.Groups[0].DocumentCount != 2 {
		t.Errorf("Mathematics DocumentCount = %d, want 2", summary.Groups[0].DocumentCount)
	}
	if summary.Groups[0].MeanWordCount <= 0 || summary.Groups[0].MeanReadability == 0 {
		t.Errorf("Mathematics means not computed: %+v", summary.Groups[0])
	}
	if len(summary.Groups[0].TopKeywords) == 0 {
		t.Error("Mathematics has no top keywords")
	}

	// Summary file written
	if _, err := os.Stat(filepath.Join(outDir, "summary.yaml")); err != nil {
		t.Errorf("summary.yaml not written: %v", err)
	}

	// Aggregates persisted under the recorded run
	groups, err := database.ListGroupMetrics(summary.RunID)
	if err != nil {
		t.Fatalf("ListGroupMetrics() failed: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("stored %d groups, want 2", len(groups))
	}

	// Re-running produces a fresh run with the same aggregates
	second, err := Analyze(logger, database, Options{OutputDir: outDir, TopK: 5})
	if err != nil {
		t.Fatalf("second Analyze() failed: %v", err)
	}
	if second.RunID == summary.RunID {
		t.Error("second analysis reused the previous run ID")
	}
}

func TestAnalyze_EmptyStore(t *testing.T) {
	database, logger := setupTest(t)

	if _, err := Analyze(logger, database, Options{OutputDir: t.TempDir()}); err == nil {
		t.Error("expected error when no documents are ingested")
	}
}

func TestAnalyze_Stopwords(t *testing.T) {
	database, logger := setupTest(t)

	if _, err := database.InsertDocument(models.Document{
		Department: "Biology",
		SourcePath: "bio.txt",
		Text:       "Genetics and genomics. Genetics laboratory required.",
	}); err != nil {
		t.Fatalf("InsertDocument() failed: %v", err)
	}

	stopfile := filepath.Join(t.TempDir(), "stop.txt")
	if err := os.WriteFile(stopfile, []byte("genetics\n"), 0644); err != nil {
		t.Fatalf("failed to write stopword file: %v", err)
	}

	summary, err := Analyze(logger, database, Options{
		OutputDir:    t.TempDir(),
		StopwordFile: stopfile,
	})
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}

	if _, present := summary.Groups[0].WordCounts["genetics"]; present {
		t.Error("user stopword 'genetics' still present in frequency map")
	}
	if _, present := summary.Groups[0].WordCounts["genomics"]; !present {
		t.Error("expected 'genomics' in frequency map")
	}
}
