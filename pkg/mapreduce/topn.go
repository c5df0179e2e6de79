package mapreduce

import (
	"fmt"
	"sort"
)

type kv struct {
	Key   string
	Value int
}

func sortedCounts(wordCounts map[string]int) []kv {
	ss := make([]kv, 0, len(wordCounts))
	for k, v := range wordCounts {
		ss = append(ss, kv{k, v})
	}

	// Ties broken alphabetically so chart output is stable across runs.
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	return ss
}

// TopKWords returns the k most frequent words from an aggregated count map.
func TopKWords(wordCounts map[string]int, k int) []string {
	ss := sortedCounts(wordCounts)

	limit := k
	if len(ss) < k {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	words := make([]string, limit)
	for i := 0; i < limit; i++ {
		words[i] = ss[i].Key
	}

	return words
}

// TopKeywords returns the top n keywords as "word:count" strings
// (e.g., "algorithms:153"), the format stored with group metrics.
func TopKeywords(wordCounts map[string]int, n int) []string {
	ss := sortedCounts(wordCounts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}

	return keywords
}

// PrintTopKeywords prints the top n keywords in a numbered list format.
func PrintTopKeywords(wordCounts map[string]int, n int) {
	ss := sortedCounts(wordCounts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	for i := 0; i < limit; i++ {
		fmt.Printf("%d. %s: %d\n", i+1, ss[i].Key, ss[i].Value)
	}
}
