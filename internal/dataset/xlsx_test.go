package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/finqa-cli/internal/config"
)

func writeTempXLSX(t *testing.T) string {
	t.Helper()

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Financials")
	require.NoError(t, err)

	data := [][]string{
		{"Year", "Revenue", "Net_Income"},
		{"2022", "1480000", "222000"},
		{"2023", "1650000", "247500"},
	}
	for _, rec := range data {
		row := sheet.AddRow()
		for _, v := range rec {
			row.AddCell().SetString(v)
		}
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeTempXLSX(t)

	header, records, err := ReadXLSX(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Year", "Revenue", "Net_Income"}, header)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"2023", "1650000", "247500"}, records[1])
}

func TestReadXLSXSheetOutOfRange(t *testing.T) {
	path := writeTempXLSX(t)

	_, _, err := ReadXLSX(path, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestLoadXLSX(t *testing.T) {
	path := writeTempXLSX(t)

	table, err := Load(context.Background(), config.DataConfig{Source: path})
	require.NoError(t, err)

	assert.Equal(t, []string{"Revenue", "Net_Income"}, table.Metrics)
	v, ok := table.Value("Revenue", 2023)
	require.True(t, ok)
	assert.Equal(t, 1_650_000.0, v)
}
