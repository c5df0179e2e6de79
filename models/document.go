package models

import "time"

// Document is one catalog record: the raw text of a department's course
// descriptions plus the categorical label it is grouped by.
type Document struct {
	ID         int64
	Department string
	Title      string
	SourcePath string
	Language   string
	Text       string
	IngestedAt time.Time
}

// DocumentMetrics holds the per-document statistics computed by analyze.
// WordCounts maps each non-stopword token to its frequency within the text.
type DocumentMetrics struct {
	DocID          int64          `yaml:"-"`
	Department     string         `yaml:"department"`
	Title          string         `yaml:"title,omitempty"`
	WordCount      int            `yaml:"word_count"`
	SentenceCount  int            `yaml:"sentence_count"`
	AvgWordLen     float64        `yaml:"avg_word_len"`
	AvgSentenceLen float64        `yaml:"avg_sentence_len"`
	Readability    float64        `yaml:"readability"`
	Sentiment      float64        `yaml:"sentiment"`
	TypeTokenRatio float64        `yaml:"type_token_ratio"`
	WordCounts     map[string]int `yaml:"-"`
}

// GroupMetrics aggregates DocumentMetrics over all documents that share a
// department. Scalar fields are means; WordCounts is the summed frequency map.
type GroupMetrics struct {
	Department         string         `yaml:"department"`
	DocumentCount      int            `yaml:"document_count"`
	MeanWordCount      float64        `yaml:"mean_word_count"`
	MeanSentenceCount  float64        `yaml:"mean_sentence_count"`
	MeanWordLen        float64        `yaml:"mean_word_len"`
	MeanSentenceLen    float64        `yaml:"mean_sentence_len"`
	MeanReadability    float64        `yaml:"mean_readability"`
	MeanSentiment      float64        `yaml:"mean_sentiment"`
	MeanTypeTokenRatio float64        `yaml:"mean_type_token_ratio"`
	WordCounts         map[string]int `yaml:"-"`
	TopKeywords        []string       `yaml:"top_keywords,omitempty"`
}
