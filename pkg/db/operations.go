package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campusmetrics/cataloglens/models"
)

// Run describes one analyze invocation.
type Run struct {
	RunID           int64
	CreatedAt       time.Time
	DocumentCount   int
	DepartmentCount int
	OutputDir       string
}

// InsertDocument inserts a catalog record, updating the text in place when
// the same (department, source, title) is ingested again. Returns the doc ID.
func (db *DB) InsertDocument(doc models.Document) (int64, error) {
	_, err := db.Exec(`
		INSERT INTO documents (department, title, source_path, language, text)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(department, source_path, title) DO UPDATE SET
			language = excluded.language,
			text = excluded.text,
			updated_at = CURRENT_TIMESTAMP
	`, doc.Department, doc.Title, doc.SourcePath, doc.Language, doc.Text)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}

	var docID int64
	err = db.QueryRow(`
		SELECT doc_id FROM documents
		WHERE department = ? AND source_path = ? AND title = ?
	`, doc.Department, doc.SourcePath, doc.Title).Scan(&docID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up document ID: %w", err)
	}

	return docID, nil
}

// ListDocuments returns all stored documents ordered by department then ID.
func (db *DB) ListDocuments() ([]models.Document, error) {
	rows, err := db.Query(`
		SELECT doc_id, department, title, source_path, COALESCE(language, ''), text, created_at
		FROM documents
		ORDER BY department, doc_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.Department, &d.Title, &d.SourcePath, &d.Language, &d.Text, &d.IngestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// DepartmentCounts returns the number of stored documents per department.
func (db *DB) DepartmentCounts() (map[string]int, error) {
	rows, err := db.Query(`SELECT department, COUNT(*) FROM documents GROUP BY department`)
	if err != nil {
		return nil, fmt.Errorf("failed to count departments: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var dept string
		var n int
		if err := rows.Scan(&dept, &n); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		counts[dept] = n
	}

	return counts, rows.Err()
}

// UpsertDocumentMetrics stores computed metrics for a document, replacing any
// previous analysis. The word frequency map is stored as JSON.
func (db *DB) UpsertDocumentMetrics(m models.DocumentMetrics) error {
	wordCounts, err := json.Marshal(m.WordCounts)
	if err != nil {
		return fmt.Errorf("failed to marshal word counts: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO document_metrics
			(doc_id, word_count, sentence_count, avg_word_len, avg_sentence_len,
			 readability, sentiment, type_token_ratio, word_counts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			word_count = excluded.word_count,
			sentence_count = excluded.sentence_count,
			avg_word_len = excluded.avg_word_len,
			avg_sentence_len = excluded.avg_sentence_len,
			readability = excluded.readability,
			sentiment = excluded.sentiment,
			type_token_ratio = excluded.type_token_ratio,
			word_counts = excluded.word_counts,
			computed_at = CURRENT_TIMESTAMP
	`, m.DocID, m.WordCount, m.SentenceCount, m.AvgWordLen, m.AvgSentenceLen,
		m.Readability, m.Sentiment, m.TypeTokenRatio, string(wordCounts))
	if err != nil {
		return fmt.Errorf("failed to upsert document metrics: %w", err)
	}

	return nil
}

// ListDocumentMetrics returns stored metrics joined with their document's
// department and title.
func (db *DB) ListDocumentMetrics() ([]models.DocumentMetrics, error) {
	rows, err := db.Query(`
		SELECT m.doc_id, d.department, d.title, m.word_count, m.sentence_count,
		       m.avg_word_len, m.avg_sentence_len, m.readability, m.sentiment,
		       m.type_token_ratio, COALESCE(m.word_counts, '{}')
		FROM document_metrics m
		JOIN documents d ON d.doc_id = m.doc_id
		ORDER BY d.department, m.doc_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list document metrics: %w", err)
	}
	defer rows.Close()

	var metrics []models.DocumentMetrics
	for rows.Next() {
		var m models.DocumentMetrics
		var wordCounts string
		if err := rows.Scan(&m.DocID, &m.Department, &m.Title, &m.WordCount, &m.SentenceCount,
			&m.AvgWordLen, &m.AvgSentenceLen, &m.Readability, &m.Sentiment,
			&m.TypeTokenRatio, &wordCounts); err != nil {
			return nil, fmt.Errorf("failed to scan document metrics: %w", err)
		}
		if err := json.Unmarshal([]byte(wordCounts), &m.WordCounts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal word counts for doc %d: %w", m.DocID, err)
		}
		metrics = append(metrics, m)
	}

	return metrics, rows.Err()
}

// CreateRun records an analyze invocation and returns its ID.
func (db *DB) CreateRun(documentCount, departmentCount int, outputDir string) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO runs (document_count, department_count, output_dir)
		VALUES (?, ?, ?)
	`, documentCount, departmentCount, outputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	return runID, nil
}

// SaveGroupMetrics stores one department's aggregates for a run.
func (db *DB) SaveGroupMetrics(runID int64, g models.GroupMetrics) error {
	wordCounts, err := json.Marshal(g.WordCounts)
	if err != nil {
		return fmt.Errorf("failed to marshal group word counts: %w", err)
	}
	topKeywords, err := json.Marshal(g.TopKeywords)
	if err != nil {
		return fmt.Errorf("failed to marshal top keywords: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO group_metrics
			(run_id, department, document_count, mean_word_count, mean_sentence_count,
			 mean_word_len, mean_sentence_len, mean_readability, mean_sentiment,
			 mean_type_token_ratio, word_counts, top_keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, department) DO UPDATE SET
			document_count = excluded.document_count,
			mean_word_count = excluded.mean_word_count,
			mean_sentence_count = excluded.mean_sentence_count,
			mean_word_len = excluded.mean_word_len,
			mean_sentence_len = excluded.mean_sentence_len,
			mean_readability = excluded.mean_readability,
			mean_sentiment = excluded.mean_sentiment,
			mean_type_token_ratio = excluded.mean_type_token_ratio,
			word_counts = excluded.word_counts,
			top_keywords = excluded.top_keywords
	`, runID, g.Department, g.DocumentCount, g.MeanWordCount, g.MeanSentenceCount,
		g.MeanWordLen, g.MeanSentenceLen, g.MeanReadability, g.MeanSentiment,
		g.MeanTypeTokenRatio, string(wordCounts), string(topKeywords))
	if err != nil {
		return fmt.Errorf("failed to save group metrics: %w", err)
	}

	return nil
}

// ListGroupMetrics returns a run's aggregates ordered by department.
func (db *DB) ListGroupMetrics(runID int64) ([]models.GroupMetrics, error) {
	rows, err := db.Query(`
		SELECT department, document_count, mean_word_count, mean_sentence_count,
		       mean_word_len, mean_sentence_len, mean_readability, mean_sentiment,
		       mean_type_token_ratio, COALESCE(word_counts, '{}'), COALESCE(top_keywords, '[]')
		FROM group_metrics
		WHERE run_id = ?
		ORDER BY department
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group metrics: %w", err)
	}
	defer rows.Close()

	var groups []models.GroupMetrics
	for rows.Next() {
		var g models.GroupMetrics
		var wordCounts, topKeywords string
		if err := rows.Scan(&g.Department, &g.DocumentCount, &g.MeanWordCount, &g.MeanSentenceCount,
			&g.MeanWordLen, &g.MeanSentenceLen, &g.MeanReadability, &g.MeanSentiment,
			&g.MeanTypeTokenRatio, &wordCounts, &topKeywords); err != nil {
			return nil, fmt.Errorf("failed to scan group metrics: %w", err)
		}
		if err := json.Unmarshal([]byte(wordCounts), &g.WordCounts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal group word counts: %w", err)
		}
		if err := json.Unmarshal([]byte(topKeywords), &g.TopKeywords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal top keywords: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// LatestRunID returns the most recent run's ID, or an error if none exist.
func (db *DB) LatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow(`SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1`).Scan(&runID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no analysis runs found: run 'cataloglens analyze' first")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

// GetRun returns one run's row by ID.
func (db *DB) GetRun(runID int64) (*Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT run_id, created_at, document_count, department_count, COALESCE(output_dir, '')
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &r.DocumentCount, &r.DepartmentCount, &r.OutputDir)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	return &r, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, created_at, document_count, department_count, COALESCE(output_dir, '')
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.DocumentCount, &r.DepartmentCount, &r.OutputDir); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}
