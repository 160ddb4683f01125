// Package dataset loads the financial metric table from CSV or XLSX files,
// fetched locally or over HTTP(S)/FTP, and validates it into a MetricTable.
package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/finqa-cli/internal/config"
	"github.com/sells-group/finqa-cli/internal/model"
)

// Load reads the configured source into a validated MetricTable. Remote
// sources are downloaded to a temp file first.
func Load(ctx context.Context, cfg config.DataConfig) (*model.MetricTable, error) {
	source := cfg.Source
	path := source
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		local, cleanup, err := FetchHTTP(ctx, source)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		path = local
	case strings.HasPrefix(source, "ftp://"):
		local, cleanup, err := FetchFTP(ctx, source)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		path = local
	default:
		if _, err := os.Stat(path); err != nil {
			return nil, eris.Wrapf(err, "dataset: stat %s", path)
		}
	}

	var (
		header  []string
		records [][]string
		err     error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		header, records, err = ReadXLSX(path, cfg.SheetIndex)
	} else {
		header, records, err = ReadCSV(path)
	}
	if err != nil {
		return nil, err
	}

	table, err := buildTable(source, header, records)
	if err != nil {
		return nil, err
	}

	zap.L().Info("dataset loaded",
		zap.String("source", source),
		zap.Int("rows", len(table.Rows)),
		zap.Strings("metrics", table.Metrics),
	)
	return table, nil
}

// yearColumns are accepted names for the leading period column.
var yearColumns = map[string]bool{"year": true, "date": true, "period": true, "fiscal year": true}

func buildTable(source string, header []string, records [][]string) (*model.MetricTable, error) {
	if len(header) < 2 {
		return nil, eris.New("dataset: need a year column and at least one metric column")
	}
	if !yearColumns[strings.ToLower(strings.TrimSpace(header[0]))] {
		return nil, eris.Errorf("dataset: first column must be the year, got %q", header[0])
	}

	metrics := make([]string, 0, len(header)-1)
	for _, h := range header[1:] {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, eris.New("dataset: empty metric column name")
		}
		metrics = append(metrics, h)
	}

	rows := make([]model.Row, 0, len(records))
	for i, rec := range records {
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if len(rec) != len(header) {
			return nil, eris.Errorf("dataset: row %d has %d fields, want %d", i+1, len(rec), len(header))
		}

		year, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: row %d: parse year %q", i+1, rec[0])
		}

		values := make(map[string]float64, len(metrics))
		for j, m := range metrics {
			v, err := parseNumber(rec[j+1])
			if err != nil {
				return nil, eris.Wrapf(err, "dataset: row %d: parse %s", i+1, m)
			}
			values[m] = v
		}
		rows = append(rows, model.Row{Year: year, Values: values})
	}

	return model.NewMetricTable(source, metrics, rows)
}

// parseNumber accepts plain floats plus lightly formatted values like
// "$1,650,000" or "12.5%".
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "dataset: parse number %q", s)
	}
	return v, nil
}
