// Package ingest implements the CLI action that loads catalog records into
// the store.
package ingest

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/campusmetrics/cataloglens/internal/common"
	"github.com/campusmetrics/cataloglens/pkg/db"
	"github.com/campusmetrics/cataloglens/pkg/loader"
)

func IngestAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	input := c.String("input")
	if input == "" {
		return fmt.Errorf("no input provided: use --input <dir|catalog.csv>")
	}

	database, err := common.OpenDatabase(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	count, err := Ingest(logger, database, input)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d documents into %s\n", count, database.Path())
	return nil
}

// Ingest loads records from input and stores them, returning how many were
// inserted. Records with no text or an invalid department are skipped with a
// warning, but an input that yields nothing is an error.
func Ingest(logger *slog.Logger, database *db.DB, input string) (int, error) {
	l := loader.New()

	docs, skipped, err := l.Load(input)
	if err != nil {
		return 0, err
	}
	for _, s := range skipped {
		logger.Warn("Skipping record with no usable text", "source", s)
	}

	count := 0
	for _, doc := range docs {
		dept, err := common.ValidateDepartment(doc.Department)
		if err != nil {
			logger.Warn("Skipping record with invalid department", "source", doc.SourcePath, "error", err)
			continue
		}
		doc.Department = dept

		docID, err := database.InsertDocument(doc)
		if err != nil {
			return count, fmt.Errorf("failed to store %s: %w", doc.SourcePath, err)
		}
		logger.Info("Stored document", "doc_id", docID, "department", doc.Department, "language", doc.Language)
		count++
	}

	if count == 0 {
		return 0, fmt.Errorf("input %q contained no usable records", input)
	}

	return count, nil
}
