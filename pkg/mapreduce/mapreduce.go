// Package mapreduce aggregates per-document metrics into per-department
// (group) metrics: frequency maps are summed, scalar metrics are averaged.
package mapreduce

import (
	"sort"

	"github.com/campusmetrics/cataloglens/models"
	"github.com/campusmetrics/cataloglens/pkg/analytics"
)

// Map generates a word frequency map for a single document's text.
func Map(text string, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(text)
}

// Reduce merges a slice of word frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}

// Aggregate folds the metrics of one department's documents into a
// GroupMetrics: means for scalars, Reduce for the word counts.
func Aggregate(department string, docs []models.DocumentMetrics) models.GroupMetrics {
	g := models.GroupMetrics{
		Department:    department,
		DocumentCount: len(docs),
	}
	if len(docs) == 0 {
		g.WordCounts = map[string]int{}
		return g
	}

	maps := make([]map[string]int, 0, len(docs))
	for _, d := range docs {
		g.MeanWordCount += float64(d.WordCount)
		g.MeanSentenceCount += float64(d.SentenceCount)
		g.MeanWordLen += d.AvgWordLen
		g.MeanSentenceLen += d.AvgSentenceLen
		g.MeanReadability += d.Readability
		g.MeanSentiment += d.Sentiment
		g.MeanTypeTokenRatio += d.TypeTokenRatio
		if d.WordCounts != nil {
			maps = append(maps, d.WordCounts)
		}
	}

	n := float64(len(docs))
	g.MeanWordCount /= n
	g.MeanSentenceCount /= n
	g.MeanWordLen /= n
	g.MeanSentenceLen /= n
	g.MeanReadability /= n
	g.MeanSentiment /= n
	g.MeanTypeTokenRatio /= n
	g.WordCounts = Reduce(maps)

	return g
}

// GroupByDepartment partitions document metrics by department and aggregates
// each partition. Groups come back sorted by department name.
func GroupByDepartment(docs []models.DocumentMetrics) []models.GroupMetrics {
	byDept := make(map[string][]models.DocumentMetrics)
	for _, d := range docs {
		byDept[d.Department] = append(byDept[d.Department], d)
	}

	departments := make([]string, 0, len(byDept))
	for dept := range byDept {
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	groups := make([]models.GroupMetrics, 0, len(departments))
	for _, dept := range departments {
		groups = append(groups, Aggregate(dept, byDept[dept]))
	}

	return groups
}
