package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finqa-cli/internal/model"
)

func chartTable(t *testing.T) *model.MetricTable {
	t.Helper()
	rows := []model.Row{
		{Year: 2019, Values: map[string]float64{"Revenue": 1_000_000, "Net_Income": 150_000}},
		{Year: 2020, Values: map[string]float64{"Revenue": 1_150_000, "Net_Income": 172_500}},
		{Year: 2021, Values: map[string]float64{"Revenue": 1_300_000, "Net_Income": 195_000}},
	}
	table, err := model.NewMetricTable("test.csv", []string{"Revenue", "Net_Income"}, rows)
	require.NoError(t, err)
	return table
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
}

func TestRendererLine(t *testing.T) {
	r, err := NewRenderer(chartTable(t), t.TempDir())
	require.NoError(t, err)

	path, err := r.Line("Revenue")
	require.NoError(t, err)
	assert.Equal(t, "revenue_line.png", filepath.Base(path))
	assertPNG(t, path)
}

func TestRendererBar(t *testing.T) {
	r, err := NewRenderer(chartTable(t), t.TempDir())
	require.NoError(t, err)

	path, err := r.Bar("Net_Income")
	require.NoError(t, err)
	assert.Equal(t, "net_income_bar.png", filepath.Base(path))
	assertPNG(t, path)
}

func TestRendererComparison(t *testing.T) {
	r, err := NewRenderer(chartTable(t), t.TempDir())
	require.NoError(t, err)

	path, err := r.Comparison([]string{"Revenue", "Net_Income"})
	require.NoError(t, err)
	assert.Equal(t, "comparison.png", filepath.Base(path))
	assertPNG(t, path)
}

func TestRendererUnknownMetric(t *testing.T) {
	r, err := NewRenderer(chartTable(t), t.TempDir())
	require.NoError(t, err)

	_, err = r.Line("Margin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data for metric")

	_, err = r.Bar("Margin")
	assert.Error(t, err)

	_, err = r.Comparison([]string{"Margin"})
	assert.Error(t, err)
}
