// Package chart renders metric visualizations as PNG files.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/sells-group/finqa-cli/internal/model"
)

// Renderer writes charts for one metric table into an output directory.
type Renderer struct {
	table *model.MetricTable
	dir   string
}

// NewRenderer creates a renderer, ensuring the output directory exists.
func NewRenderer(table *model.MetricTable, dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "chart: mkdir %s", dir)
	}
	return &Renderer{table: table, dir: dir}, nil
}

// Line renders a metric-over-time line chart and returns the file path.
func (r *Renderer) Line(metric string) (string, error) {
	series := r.table.Series(metric)
	if len(series) == 0 {
		return "", eris.Errorf("chart: no data for metric %s", metric)
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, yv := range series {
		xs[i] = float64(yv.Year)
		ys[i] = yv.Value
	}

	graph := chart.Chart{
		Title: model.DisplayName(metric) + " Over Time",
		XAxis: chart.XAxis{
			Name: "Year",
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%d", int(f))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{Name: model.DisplayName(metric)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    model.DisplayName(metric),
				XValues: xs,
				YValues: ys,
			},
		},
	}

	return r.render(graph.Render, metricFileName(metric, "line"))
}

// Bar renders a per-year bar chart for a metric and returns the file path.
func (r *Renderer) Bar(metric string) (string, error) {
	series := r.table.Series(metric)
	if len(series) == 0 {
		return "", eris.Errorf("chart: no data for metric %s", metric)
	}

	bars := make([]chart.Value, len(series))
	for i, yv := range series {
		bars[i] = chart.Value{Value: yv.Value, Label: fmt.Sprintf("%d", yv.Year)}
	}

	graph := chart.BarChart{
		Title:    model.DisplayName(metric) + " by Year",
		Width:    800,
		Height:   500,
		BarWidth: 50,
		Bars:     bars,
	}

	return r.render(graph.Render, metricFileName(metric, "bar"))
}

// Comparison renders multiple metrics on one line chart.
func (r *Renderer) Comparison(metrics []string) (string, error) {
	var series []chart.Series
	for _, m := range metrics {
		values := r.table.Series(m)
		if len(values) == 0 {
			continue
		}
		xs := make([]float64, len(values))
		ys := make([]float64, len(values))
		for i, yv := range values {
			xs[i] = float64(yv.Year)
			ys[i] = yv.Value
		}
		series = append(series, chart.ContinuousSeries{
			Name:    model.DisplayName(m),
			XValues: xs,
			YValues: ys,
		})
	}
	if len(series) == 0 {
		return "", eris.New("chart: no data for comparison")
	}

	graph := chart.Chart{
		Title: "Metric Comparison",
		XAxis: chart.XAxis{Name: "Year"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return r.render(graph.Render, "comparison.png")
}

func (r *Renderer) render(render func(chart.RendererProvider, io.Writer) error, name string) (string, error) {
	path := filepath.Join(r.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "chart: create %s", path)
	}
	defer f.Close()

	if err := render(chart.PNG, f); err != nil {
		return "", eris.Wrapf(err, "chart: render %s", path)
	}
	return path, nil
}

func metricFileName(metric, kind string) string {
	return strings.ToLower(metric) + "_" + kind + ".png"
}
