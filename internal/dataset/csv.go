package dataset

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadCSV reads a CSV file and returns the header row and data records.
// Fields are whitespace-trimmed; blank lines and '#' comments are skipped.
func ReadCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1 // validated against the header later

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrapf(err, "dataset: read csv %s", path)
	}
	if len(all) == 0 {
		return nil, nil, eris.Errorf("dataset: %s is empty", path)
	}

	for _, rec := range all {
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
	}

	return all[0], all[1:], nil
}
