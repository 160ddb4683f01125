package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finqa-cli/internal/config"
)

const sampleCSV = `# five-year sample
Year,Revenue,Net_Income,Operating_Expenses
2019,1000000,150000,700000
2020,"1,150,000",172500,790000
2021,$1300000,195000,880000
2022,1480000,222000,990000
2023,1650000,247500,1100000
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLocalCSV(t *testing.T) {
	path := writeTempCSV(t, sampleCSV)

	table, err := Load(context.Background(), config.DataConfig{Source: path})
	require.NoError(t, err)

	assert.Equal(t, path, table.Source)
	assert.Equal(t, []string{"Revenue", "Net_Income", "Operating_Expenses"}, table.Metrics)
	require.Len(t, table.Rows, 5)
	assert.Equal(t, []int{2019, 2020, 2021, 2022, 2023}, table.Years())

	// Formatted numbers parse like plain ones.
	v, ok := table.Value("Revenue", 2020)
	require.True(t, ok)
	assert.Equal(t, 1_150_000.0, v)
	v, ok = table.Value("Revenue", 2021)
	require.True(t, ok)
	assert.Equal(t, 1_300_000.0, v)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), config.DataConfig{Source: "/nonexistent/data.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat")
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	table, err := Load(context.Background(), config.DataConfig{Source: srv.URL + "/data.csv"})
	require.NoError(t, err)
	require.Len(t, table.Rows, 5)
}

func TestLoadHTTPBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), config.DataConfig{Source: srv.URL + "/data.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestBuildTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		records [][]string
		wantErr string
	}{
		{
			name:    "missing_metric_columns",
			header:  []string{"Year"},
			records: [][]string{{"2023"}},
			wantErr: "at least one metric column",
		},
		{
			name:    "first_column_not_year",
			header:  []string{"Region", "Revenue"},
			records: [][]string{{"west", "100"}},
			wantErr: "first column must be the year",
		},
		{
			name:    "empty_metric_name",
			header:  []string{"Year", ""},
			records: [][]string{{"2023", "100"}},
			wantErr: "empty metric column name",
		},
		{
			name:    "ragged_row",
			header:  []string{"Year", "Revenue"},
			records: [][]string{{"2023", "100", "extra"}},
			wantErr: "has 3 fields, want 2",
		},
		{
			name:    "bad_year",
			header:  []string{"Year", "Revenue"},
			records: [][]string{{"twenty23", "100"}},
			wantErr: "parse year",
		},
		{
			name:    "bad_number",
			header:  []string{"Year", "Revenue"},
			records: [][]string{{"2023", "lots"}},
			wantErr: "parse Revenue",
		},
		{
			name:    "duplicate_year",
			header:  []string{"Year", "Revenue"},
			records: [][]string{{"2023", "100"}, {"2023", "200"}},
			wantErr: "duplicate year 2023",
		},
		{
			name:    "no_rows",
			header:  []string{"Year", "Revenue"},
			records: nil,
			wantErr: "no rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildTable("test", tt.header, tt.records)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildTableAcceptsPeriodColumnNames(t *testing.T) {
	for _, col := range []string{"Year", "year", "Date", "Period", "Fiscal Year"} {
		_, err := buildTable("test", []string{col, "Revenue"}, [][]string{{"2023", "100"}})
		assert.NoError(t, err, "column %q", col)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "1650000", want: 1_650_000},
		{in: "$1,650,000", want: 1_650_000},
		{in: " 12.5% ", want: 12.5},
		{in: "-12500", want: -12_500},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseNumber(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parseNumber(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "parseNumber(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
