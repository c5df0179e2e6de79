// Package sentiment scores document tone using the VADER lexicon.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Analyzer wraps a VADER sentiment analyzer. Construct once and reuse; the
// lexicon load is not free.
type Analyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the VADER compound polarity in [-1, 1]. Empty or
// whitespace-only text scores 0.
func (a *Analyzer) Compound(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return a.sia.PolarityScores(text).Compound
}
