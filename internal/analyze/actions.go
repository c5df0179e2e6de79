// Package analyze implements the CLI action that computes per-document
// metrics and aggregates them by department.
package analyze

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/campusmetrics/cataloglens/internal/common"
	"github.com/campusmetrics/cataloglens/models"
	"github.com/campusmetrics/cataloglens/pkg/analytics"
	"github.com/campusmetrics/cataloglens/pkg/db"
	"github.com/campusmetrics/cataloglens/pkg/mapreduce"
	"github.com/campusmetrics/cataloglens/pkg/sentiment"
	"github.com/campusmetrics/cataloglens/pkg/storage"
	"github.com/campusmetrics/cataloglens/pkg/textstat"
)

// Options control one analyze pass.
type Options struct {
	OutputDir    string
	StopwordFile string
	TopK         int
}

// Summary is what analyze writes to summary.yaml and hands back to callers.
type Summary struct {
	RunID            int64                    `yaml:"run_id"`
	GeneratedAt      time.Time                `yaml:"generated_at"`
	DocumentCount    int                      `yaml:"document_count"`
	DepartmentCount  int                      `yaml:"department_count"`
	SkippedEmpty     int                      `yaml:"skipped_empty"`
	TopKeywords      []string                 `yaml:"top_keywords"`
	Groups           []models.GroupMetrics    `yaml:"departments"`
	Documents        []models.DocumentMetrics `yaml:"documents"`
	CorpusWordCounts map[string]int           `yaml:"-"`
}

func AnalyzeAction(c *cli.Context) error {
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

	summary, err := Analyze(logger, database, Options{
		OutputDir:    c.String("out"),
		StopwordFile: c.String("stopwords"),
		TopK:         c.Int("top-k"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Run %d: %d documents across %d departments\n",
		summary.RunID, summary.DocumentCount, summary.DepartmentCount)
	fmt.Println("\n--- Top 25 Words (Aggregated) ---")
	mapreduce.PrintTopKeywords(summary.CorpusWordCounts, 25)

	return nil
}

// Analyze computes metrics for every stored document, aggregates them by
// department, records the run and writes summary.yaml into the output dir.
func Analyze(logger *slog.Logger, database *db.DB, opts Options) (*Summary, error) {
	if opts.TopK <= 0 {
		opts.TopK = 10
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "results"
	}

	a := analytics.New()
	if opts.StopwordFile != "" {
		if err := a.LoadStopwords(opts.StopwordFile); err != nil {
			return nil, err
		}
		logger.Info("Loaded user stopwords", "file", opts.StopwordFile)
	}

	docs, err := database.ListDocuments()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents in store: run 'cataloglens ingest' first")
	}

	analyzer := sentiment.NewAnalyzer()

	summary := &Summary{GeneratedAt: time.Now()}
	var metrics []models.DocumentMetrics
	var frequencyMaps []map[string]int

	for _, doc := range docs {
		// Loader already drops empty inputs; guard anyway so a store
		// written by an older version cannot poison the averages.
		if strings.TrimSpace(doc.Text) == "" {
			logger.Warn("Skipping document with empty text", "doc_id", doc.ID, "source", doc.SourcePath)
			summary.SkippedEmpty++
			continue
		}

		m := computeMetrics(doc, a, analyzer)
		if err := database.UpsertDocumentMetrics(m); err != nil {
			return nil, err
		}

		logger.Info("Analyzed document",
			"doc_id", doc.ID,
			"department", doc.Department,
			"words", m.WordCount,
			"readability", m.Readability,
		)

		metrics = append(metrics, m)
		frequencyMaps = append(frequencyMaps, m.WordCounts)
	}

	if len(metrics) == 0 {
		return nil, fmt.Errorf("all stored documents were empty")
	}

	groups := mapreduce.GroupByDepartment(metrics)
	for i := range groups {
		groups[i].TopKeywords = mapreduce.TopKeywords(groups[i].WordCounts, opts.TopK)
	}

	runID, err := database.CreateRun(len(metrics), len(groups), opts.OutputDir)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		if err := database.SaveGroupMetrics(runID, g); err != nil {
			return nil, err
		}
	}

	corpus := mapreduce.Reduce(frequencyMaps)

	summary.RunID = runID
	summary.DocumentCount = len(metrics)
	summary.DepartmentCount = len(groups)
	summary.TopKeywords = mapreduce.TopKeywords(corpus, 25)
	summary.Groups = groups
	summary.Documents = metrics
	summary.CorpusWordCounts = corpus

	if err := writeSummary(summary, opts.OutputDir); err != nil {
		return nil, err
	}
	logger.Info("Analysis complete", "run_id", runID, "output_dir", opts.OutputDir)

	return summary, nil
}

func computeMetrics(doc models.Document, a *analytics.Analytics, analyzer *sentiment.Analyzer) models.DocumentMetrics {
	text := doc.Text

	return models.DocumentMetrics{
		DocID:          doc.ID,
		Department:     doc.Department,
		Title:          doc.Title,
		WordCount:      len(a.Tokenize(text)),
		SentenceCount:  textstat.SentenceCount(text),
		AvgWordLen:     a.AvgWordLength(text),
		AvgSentenceLen: textstat.AvgSentenceLength(text),
		Readability:    textstat.FleschReadingEase(text),
		Sentiment:      analyzer.Compound(text),
		TypeTokenRatio: a.TypeTokenRatio(text),
		WordCounts:     a.WordFrequency(text),
	}
}

func writeSummary(summary *Summary, outputDir string) error {
	yamlBytes, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	s := &storage.Storage{}
	path := filepath.Join(outputDir, "summary.yaml")
	if err := s.SaveFile(path, yamlBytes); err != nil {
		return fmt.Errorf("failed to write summary: %s", err)
	}

	return nil
}
