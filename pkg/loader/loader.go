// Package loader reads course catalog records from the filesystem. A
// directory of .txt/.html files maps each file to one department (filename
// stem = department label); a .csv file carries department,title,text rows.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/pemistahl/lingua-go"

	"github.com/campusmetrics/cataloglens/models"
)

// Loader turns input files into Document records, detecting the language of
// each record as it goes.
type Loader struct {
	detector lingua.LanguageDetector
}

func New() *Loader {
	languages := []lingua.Language{
		lingua.English,
		lingua.Spanish,
		lingua.French,
		lingua.German,
	}

	return &Loader{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Load dispatches on the input path: a directory is scanned for .txt and
// .html files, a .csv file is parsed row by row. It returns the loaded
// documents plus a list of inputs skipped for having no usable text.
func (l *Loader) Load(path string) ([]models.Document, []string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("input path not accessible: %w", err)
	}

	if info.IsDir() {
		return l.LoadDir(path)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return l.LoadCSV(path)
	}

	return nil, nil, fmt.Errorf("unsupported input %q: expected a directory or a .csv file", path)
}

// LoadDir loads every .txt and .html file directly under dir. The filename
// stem becomes the department label, with underscores read as spaces.
func (l *Loader) LoadDir(dir string) ([]models.Document, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var docs []models.Document
	var skipped []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".html" && ext != ".htm" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		text := string(raw)
		if ext != ".txt" {
			text, err = ExtractHTMLText(text, path)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
			}
		}

		if strings.TrimSpace(text) == "" {
			skipped = append(skipped, path)
			continue
		}

		docs = append(docs, models.Document{
			Department: DepartmentFromFilename(entry.Name()),
			SourcePath: path,
			Language:   l.detectLanguage(text),
			Text:       text,
			IngestedAt: time.Now(),
		})
	}

	return docs, skipped, nil
}

// LoadCSV loads records from a CSV file with a department,title,text header.
// Rows with an empty department or empty text are skipped, not fatal.
func (l *Loader) LoadCSV(path string) ([]models.Document, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	deptCol, ok := cols["department"]
	if !ok {
		return nil, nil, fmt.Errorf("CSV header missing required 'department' column")
	}
	textCol, ok := cols["text"]
	if !ok {
		return nil, nil, fmt.Errorf("CSV header missing required 'text' column")
	}
	titleCol, hasTitle := cols["title"]

	var docs []models.Document
	var skipped []string

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse CSV row %d: %w", line, err)
		}

		field := func(i int) string {
			if i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		dept := field(deptCol)
		text := field(textCol)
		if dept == "" || text == "" {
			skipped = append(skipped, fmt.Sprintf("%s:%d", path, line))
			continue
		}

		title := ""
		if hasTitle {
			title = field(titleCol)
		}

		docs = append(docs, models.Document{
			Department: dept,
			Title:      title,
			SourcePath: path,
			Language:   l.detectLanguage(text),
			Text:       text,
			IngestedAt: time.Now(),
		})
	}

	return docs, skipped, nil
}

func (l *Loader) detectLanguage(text string) string {
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "unknown"
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// ExtractHTMLText reduces an HTML catalog page to plain text. Readability
// extraction is tried first; pages it rejects (fragments, frames-only pages)
// fall back to a goquery strip of script/style/nav chrome.
func ExtractHTMLText(html, path string) (string, error) {
	pageURL := &url.URL{Scheme: "file", Path: path}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script,style,nav,header,footer").Remove()

	return doc.Text(), nil
}

// DepartmentFromFilename derives the department label from a file name:
// extension stripped, underscores and dashes read as spaces.
func DepartmentFromFilename(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	return strings.TrimSpace(stem)
}
