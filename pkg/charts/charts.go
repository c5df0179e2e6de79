// Package charts renders the comparative visualizations as self-contained
// HTML files using go-echarts.
package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/campusmetrics/cataloglens/models"
	"github.com/campusmetrics/cataloglens/pkg/mapreduce"
)

// Renderer writes chart files into OutDir.
type Renderer struct {
	OutDir string
}

func NewRenderer(outDir string) (*Renderer, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Renderer{OutDir: outDir}, nil
}

type renderable interface {
	Render(w io.Writer) error
}

func (r *Renderer) renderToFile(name string, chart renderable) (string, error) {
	path := filepath.Join(r.OutDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}

	return path, nil
}

// KeywordSankey draws department nodes on the left flowing into keyword nodes
// on the right; link width is the keyword's count within the department.
// Words that collide with a department name are dropped to keep nodes unique.
func (r *Renderer) KeywordSankey(groups []models.GroupMetrics, words []string) (string, error) {
	departments := make(map[string]struct{}, len(groups))
	var nodes []opts.SankeyNode
	for _, g := range groups {
		departments[g.Department] = struct{}{}
		nodes = append(nodes, opts.SankeyNode{Name: g.Department})
	}

	var kept []string
	for _, w := range words {
		if _, clash := departments[w]; clash {
			continue
		}
		kept = append(kept, w)
		nodes = append(nodes, opts.SankeyNode{Name: w})
	}

	var links []opts.SankeyLink
	for _, g := range groups {
		for _, w := range kept {
			if count := g.WordCounts[w]; count > 0 {
				links = append(links, opts.SankeyLink{
					Source: g.Department,
					Target: w,
					Value:  float32(count),
				})
			}
		}
	}

	sankey := charts.NewSankey()
	sankey.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Keyword flow by department"}),
	)
	sankey.AddSeries("keywords", nodes, links,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)

	return r.renderToFile("keyword_sankey.html", sankey)
}

// KeywordBars renders one bar chart per department showing its top n
// keywords, all on a single page.
func (r *Renderer) KeywordBars(groups []models.GroupMetrics, n int) (string, error) {
	page := components.NewPage()
	page.PageTitle = "Top keywords by department"

	for _, g := range groups {
		words := mapreduce.TopKWords(g.WordCounts, n)
		data := make([]opts.BarData, len(words))
		for i, w := range words {
			data[i] = opts.BarData{Value: g.WordCounts[w]}
		}

		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: g.Department}),
		)
		bar.SetXAxis(words).AddSeries("count", data)
		page.AddCharts(bar)
	}

	return r.renderToFile("keyword_bars.html", page)
}

// ReadabilityBar renders mean Flesch reading ease per department.
func (r *Renderer) ReadabilityBar(groups []models.GroupMetrics) (string, error) {
	return r.comparativeBar(groups, "readability.html",
		"Readability by department", "Flesch reading ease",
		func(g models.GroupMetrics) float64 { return g.MeanReadability })
}

// SentimentBar renders mean VADER compound score per department.
func (r *Renderer) SentimentBar(groups []models.GroupMetrics) (string, error) {
	return r.comparativeBar(groups, "sentiment.html",
		"Sentiment by department", "mean compound score",
		func(g models.GroupMetrics) float64 { return g.MeanSentiment })
}

func (r *Renderer) comparativeBar(groups []models.GroupMetrics, file, title, series string,
	value func(models.GroupMetrics) float64) (string, error) {

	departments := make([]string, len(groups))
	data := make([]opts.BarData, len(groups))
	for i, g := range groups {
		departments[i] = g.Department
		data[i] = opts.BarData{Value: value(g)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
	)
	bar.SetXAxis(departments).AddSeries(series, data)

	return r.renderToFile(file, bar)
}

// RenderAll produces the full chart set and returns the written file paths.
func (r *Renderer) RenderAll(groups []models.GroupMetrics, words []string, topN int) ([]string, error) {
	var paths []string

	for _, render := range []func() (string, error){
		func() (string, error) { return r.KeywordSankey(groups, words) },
		func() (string, error) { return r.KeywordBars(groups, topN) },
		func() (string, error) { return r.ReadabilityBar(groups) },
		func() (string, error) { return r.SentimentBar(groups) },
	} {
		path, err := render()
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
