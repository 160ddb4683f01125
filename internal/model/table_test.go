package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []Row {
	return []Row{
		{Year: 2021, Values: map[string]float64{"Revenue": 1_300_000, "Net_Income": 195_000}},
		{Year: 2019, Values: map[string]float64{"Revenue": 1_000_000, "Net_Income": 150_000}},
		{Year: 2020, Values: map[string]float64{"Revenue": 1_150_000, "Net_Income": 172_500}},
	}
}

func TestNewMetricTableSortsRows(t *testing.T) {
	table, err := NewMetricTable("sample.csv", []string{"Revenue", "Net_Income"}, sampleRows())
	require.NoError(t, err)

	assert.Equal(t, []int{2019, 2020, 2021}, table.Years())
	assert.Equal(t, 2021, table.Latest().Year)
}

func TestNewMetricTableValidation(t *testing.T) {
	_, err := NewMetricTable("s", []string{"Revenue"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rows")

	_, err = NewMetricTable("s", nil, sampleRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no metric columns")

	dup := append(sampleRows(), Row{Year: 2020, Values: map[string]float64{"Revenue": 1}})
	_, err = NewMetricTable("s", []string{"Revenue"}, dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate year 2020")
}

func TestMetricTableAccessors(t *testing.T) {
	table, err := NewMetricTable("sample.csv", []string{"Revenue", "Net_Income"}, sampleRows())
	require.NoError(t, err)

	assert.True(t, table.HasMetric("Revenue"))
	assert.False(t, table.HasMetric("Margin"))

	v, ok := table.Value("Revenue", 2020)
	require.True(t, ok)
	assert.Equal(t, 1_150_000.0, v)

	_, ok = table.Value("Revenue", 1999)
	assert.False(t, ok)
	_, ok = table.Value("Margin", 2020)
	assert.False(t, ok)

	series := table.Series("Net_Income")
	require.Len(t, series, 3)
	assert.Equal(t, YearValue{Year: 2019, Value: 150_000}, series[0])
	assert.Equal(t, YearValue{Year: 2021, Value: 195_000}, series[2])

	assert.Empty(t, table.Series("Margin"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Net Income", DisplayName("Net_Income"))
	assert.Equal(t, "Revenue", DisplayName("Revenue"))
	assert.Equal(t, "Total Assets", DisplayName("Total_Assets"))
}
