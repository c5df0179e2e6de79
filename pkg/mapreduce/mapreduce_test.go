package mapreduce

import (
	"math"
	"reflect"
	"testing"

	"github.com/campusmetrics/cataloglens/models"
	"github.com/campusmetrics/cataloglens/pkg/analytics"
)

// almostEqual compares float means without tripping on binary rounding
// (0.2+0.4 sums to 0.6000...0001).
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMapReduce(t *testing.T) {
	a := analytics.New()

	intermediate := []map[string]int{
		Map("algebra and algebra", a),
		Map("algebra and geometry", a),
	}

	got := Reduce(intermediate)
	want := map[string]int{"algebra": 3, "geometry": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce() = %v, want %v", got, want)
	}
}

func TestReduce_Empty(t *testing.T) {
	got := Reduce(nil)
	if len(got) != 0 {
		t.Errorf("Reduce(nil) = %v, want empty map", got)
	}
}

func TestAggregate(t *testing.T) {
	docs := []models.DocumentMetrics{
		{
			Department:     "Mathematics",
			WordCount:      100,
			SentenceCount:  10,
			AvgWordLen:     5.0,
			AvgSentenceLen: 10.0,
			Readability:    60.0,
			Sentiment:      0.2,
			TypeTokenRatio: 0.8,
			WordCounts:     map[string]int{"algebra": 3},
		},
		{
			Department:     "Mathematics",
			WordCount:      200,
			SentenceCount:  20,
			AvgWordLen:     7.0,
			AvgSentenceLen: 20.0,
			Readability:    40.0,
			Sentiment:      0.4,
			TypeTokenRatio: 0.6,
			WordCounts:     map[string]int{"algebra": 1, "proofs": 2},
		},
	}

	g := Aggregate("Mathematics", docs)

	if g.DocumentCount != 2 {
		t.Errorf("DocumentCount = %d, want 2", g.DocumentCount)
	}
	if g.MeanWordCount != 150 {
		t.Errorf("MeanWordCount = %v, want 150", g.MeanWordCount)
	}
	if g.MeanSentenceCount != 15 {
		t.Errorf("MeanSentenceCount = %v, want 15", g.MeanSentenceCount)
	}
	if g.MeanWordLen != 6.0 {
		t.Errorf("MeanWordLen = %v, want 6.0", g.MeanWordLen)
	}
	if g.MeanReadability != 50.0 {
		t.Errorf("MeanReadability = %v, want 50.0", g.MeanReadability)
	}
	if !almostEqual(g.MeanSentiment, 0.3) {
		t.Errorf("MeanSentiment = %v, want 0.3", g.MeanSentiment)
	}
	if !almostEqual(g.MeanTypeTokenRatio, 0.7) {
		t.Errorf("MeanTypeTokenRatio = %v, want 0.7", g.MeanTypeTokenRatio)
	}

	wantCounts := map[string]int{"algebra": 4, "proofs": 2}
	if !reflect.DeepEqual(g.WordCounts, wantCounts) {
		t.Errorf("WordCounts = %v, want %v", g.WordCounts, wantCounts)
	}
}

func TestAggregate_Empty(t *testing.T) {
	g := Aggregate("History", nil)
	if g.DocumentCount != 0 || g.MeanWordCount != 0 {
		t.Errorf("empty group should have zero metrics, got %+v", g)
	}
}

func TestGroupByDepartment(t *testing.T) {
	docs := []models.DocumentMetrics{
		{Department: "Physics", WordCount: 10},
		{Department: "Biology", WordCount: 20},
		{Department: "Physics", WordCount: 30},
	}

	groups := GroupByDepartment(docs)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	// Sorted by department name
	if groups[0].Department != "Biology" || groups[1].Department != "Physics" {
		t.Errorf("groups out of order: %s, %s", groups[0].Department, groups[1].Department)
	}
	if groups[1].DocumentCount != 2 {
		t.Errorf("Physics DocumentCount = %d, want 2", groups[1].DocumentCount)
	}
	if groups[1].MeanWordCount != 20 {
		t.Errorf("Physics MeanWordCount = %v, want 20", groups[1].MeanWordCount)
	}
}

func TestTopKeywords(t *testing.T) {
	counts := map[string]int{"algebra": 5, "proofs": 3, "limits": 1}

	got := TopKeywords(counts, 2)
	want := []string{"algebra:5", "proofs:3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords() = %v, want %v", got, want)
	}

	words := TopKWords(counts, 5)
	if !reflect.DeepEqual(words, []string{"algebra", "proofs", "limits"}) {
		t.Errorf("TopKWords() = %v", words)
	}
}
