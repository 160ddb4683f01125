// Package model defines the core data types shared across the QA engine.
package model

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// Row is a single fiscal period of metric values.
type Row struct {
	Year   int                `json:"year"`
	Values map[string]float64 `json:"values"`
}

// YearValue pairs a year with a metric value, preserving row order.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// MetricTable is the loaded financial dataset: one row per fiscal year, one
// column per canonical metric. The table is immutable for the lifetime of a
// run; the canonical metric set is fixed at load time.
type MetricTable struct {
	Source  string   `json:"source"`
	Metrics []string `json:"metrics"`
	Rows    []Row    `json:"rows"`
}

// NewMetricTable validates rows and returns a table with rows sorted by year.
func NewMetricTable(source string, metrics []string, rows []Row) (*MetricTable, error) {
	if len(rows) == 0 {
		return nil, eris.New("model: table has no rows")
	}
	if len(metrics) == 0 {
		return nil, eris.New("model: table has no metric columns")
	}

	seen := make(map[int]bool, len(rows))
	for _, r := range rows {
		if seen[r.Year] {
			return nil, eris.Errorf("model: duplicate year %d", r.Year)
		}
		seen[r.Year] = true
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	return &MetricTable{Source: source, Metrics: metrics, Rows: sorted}, nil
}

// HasMetric reports whether the canonical metric exists in the table.
func (t *MetricTable) HasMetric(name string) bool {
	for _, m := range t.Metrics {
		if m == name {
			return true
		}
	}
	return false
}

// Value returns the metric value for the given year.
func (t *MetricTable) Value(metric string, year int) (float64, bool) {
	for _, r := range t.Rows {
		if r.Year == year {
			v, ok := r.Values[metric]
			return v, ok
		}
	}
	return 0, false
}

// Latest returns the row with the highest year. Rows are sorted ascending,
// so this is the last row.
func (t *MetricTable) Latest() Row {
	return t.Rows[len(t.Rows)-1]
}

// Years returns all years in ascending order.
func (t *MetricTable) Years() []int {
	years := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		years[i] = r.Year
	}
	return years
}

// Series returns the year/value sequence for a metric in ascending year order.
func (t *MetricTable) Series(metric string) []YearValue {
	series := make([]YearValue, 0, len(t.Rows))
	for _, r := range t.Rows {
		if v, ok := r.Values[metric]; ok {
			series = append(series, YearValue{Year: r.Year, Value: v})
		}
	}
	return series
}

// DisplayName converts a canonical metric name to its display form
// ("Net_Income" becomes "Net Income").
func DisplayName(metric string) string {
	return strings.ReplaceAll(metric, "_", " ")
}
