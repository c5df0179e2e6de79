package db

import (
	"reflect"
	"testing"

	"github.com/campusmetrics/cataloglens/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestInsertDocument(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	doc := models.Document{
		Department: "Mathematics",
		Title:      "Calculus I",
		SourcePath: "data/catalog.csv",
		Language:   "en",
		Text:       "Limits, derivatives, and integrals.",
	}

	firstID, err := db.InsertDocument(doc)
	if err != nil {
		t.Fatalf("InsertDocument() failed: %v", err)
	}
	if firstID == 0 {
		t.Fatal("InsertDocument() returned 0 ID")
	}

	// Re-ingesting the same record updates in place and keeps the ID.
	doc.Text = "Limits, derivatives, integrals, and series."
	secondID, err := db.InsertDocument(doc)
	if err != nil {
		t.Fatalf("InsertDocument() on duplicate failed: %v", err)
	}
	if secondID != firstID {
		t.Errorf("duplicate document got different ID: got %d, want %d", secondID, firstID)
	}

	docs, err := db.ListDocuments()
	if err != nil {
		t.Fatalf("ListDocuments() failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].Text != doc.Text {
		t.Errorf("text not updated: got %q", docs[0].Text)
	}
}

func TestDepartmentCounts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, doc := range []models.Document{
		{Department: "Physics", Title: "Mechanics", SourcePath: "a.csv", Text: "x"},
		{Department: "Physics", Title: "Optics", SourcePath: "a.csv", Text: "y"},
		{Department: "Biology", Title: "Genetics", SourcePath: "a.csv", Text: "z"},
	} {
		if _, err := db.InsertDocument(doc); err != nil {
			t.Fatalf("InsertDocument() failed: %v", err)
		}
	}

	counts, err := db.DepartmentCounts()
	if err != nil {
		t.Fatalf("DepartmentCounts() failed: %v", err)
	}
	want := map[string]int{"Physics": 2, "Biology": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("DepartmentCounts() = %v, want %v", counts, want)
	}
}

func TestDocumentMetricsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	docID, err := db.InsertDocument(models.Document{
		Department: "Mathematics",
		SourcePath: "math.txt",
		Text:       "Algebra and proofs.",
	})
	if err != nil {
		t.Fatalf("InsertDocument() failed: %v", err)
	}

	m := models.DocumentMetrics{
		DocID:          docID,
		WordCount:      3,
		SentenceCount:  1,
		AvgWordLen:     5.5,
		AvgSentenceLen: 3.0,
		Readability:    75.2,
		Sentiment:      0.1,
		TypeTokenRatio: 1.0,
		WordCounts:     map[string]int{"algebra": 1, "proofs": 1},
	}
	if err := db.UpsertDocumentMetrics(m); err != nil {
		t.Fatalf("UpsertDocumentMetrics() failed: %v", err)
	}

	// Upsert again with new values; row count must stay 1.
	m.Readability = 80.0
	if err := db.UpsertDocumentMetrics(m); err != nil {
		t.Fatalf("UpsertDocumentMetrics() second call failed: %v", err)
	}

	metrics, err := db.ListDocumentMetrics()
	if err != nil {
		t.Fatalf("ListDocumentMetrics() failed: %v", err)
	}
	if len(metrics) != 1 {
		t.Fatalf("got %d metric rows, want 1", len(metrics))
	}

	got := metrics[0]
	if got.Department != "Mathematics" {
		t.Errorf("Department = %q, want Mathematics", got.Department)
	}
	if got.Readability != 80.0 {
		t.Errorf("Readability = %v, want 80.0", got.Readability)
	}
	if !reflect.DeepEqual(got.WordCounts, m.WordCounts) {
		t.Errorf("WordCounts = %v, want %v", got.WordCounts, m.WordCounts)
	}
}

func TestRunsAndGroupMetrics(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.LatestRunID(); err == nil {
		t.Error("LatestRunID() on empty store should fail")
	}

	runID, err := db.CreateRun(4, 2, "results")
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	groups := []models.GroupMetrics{
		{
			Department:      "Biology",
			DocumentCount:   2,
			MeanWordCount:   120,
			MeanReadability: 55.5,
			WordCounts:      map[string]int{"cells": 9},
			TopKeywords:     []string{"cells:9"},
		},
		{
			Department:      "Physics",
			DocumentCount:   2,
			MeanWordCount:   90,
			MeanReadability: 48.0,
			WordCounts:      map[string]int{"energy": 7},
			TopKeywords:     []string{"energy:7"},
		},
	}
	for _, g := range groups {
		if err := db.SaveGroupMetrics(runID, g); err != nil {
			t.Fatalf("SaveGroupMetrics(%s) failed: %v", g.Department, err)
		}
	}

	latest, err := db.LatestRunID()
	if err != nil {
		t.Fatalf("LatestRunID() failed: %v", err)
	}
	if latest != runID {
		t.Errorf("LatestRunID() = %d, want %d", latest, runID)
	}

	stored, err := db.ListGroupMetrics(runID)
	if err != nil {
		t.Fatalf("ListGroupMetrics() failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("got %d groups, want 2", len(stored))
	}
	if stored[0].Department != "Biology" || stored[1].Department != "Physics" {
		t.Errorf("groups out of order: %s, %s", stored[0].Department, stored[1].Department)
	}
	if !reflect.DeepEqual(stored[1].WordCounts, map[string]int{"energy": 7}) {
		t.Errorf("Physics WordCounts = %v", stored[1].WordCounts)
	}
	if !reflect.DeepEqual(stored[0].TopKeywords, []string{"cells:9"}) {
		t.Errorf("Biology TopKeywords = %v", stored[0].TopKeywords)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].DocumentCount != 4 || runs[0].DepartmentCount != 2 {
		t.Errorf("run counts = %d/%d, want 4/2", runs[0].DocumentCount, runs[0].DepartmentCount)
	}
}

func TestGetRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetRun(1); err == nil {
		t.Error("GetRun() on empty store should fail")
	}

	// Old runs stay reachable by ID regardless of the ListRuns page size.
	firstID, err := db.CreateRun(3, 1, "results/first")
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	for i := 0; i < 24; i++ {
		if _, err := db.CreateRun(1, 1, "results/later"); err != nil {
			t.Fatalf("CreateRun() failed: %v", err)
		}
	}

	run, err := db.GetRun(firstID)
	if err != nil {
		t.Fatalf("GetRun(%d) failed: %v", firstID, err)
	}
	if run.RunID != firstID {
		t.Errorf("RunID = %d, want %d", run.RunID, firstID)
	}
	if run.OutputDir != "results/first" {
		t.Errorf("OutputDir = %q, want results/first", run.OutputDir)
	}
	if run.DocumentCount != 3 || run.DepartmentCount != 1 {
		t.Errorf("run counts = %d/%d, want 3/1", run.DocumentCount, run.DepartmentCount)
	}
}
