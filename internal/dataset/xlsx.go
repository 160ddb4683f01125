package dataset

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadXLSX reads one sheet of an XLSX workbook and returns the header row
// and data records as trimmed strings.
func ReadXLSX(path string, sheetIndex int) ([]string, [][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "dataset: open xlsx %s", path)
	}

	if sheetIndex < 0 || sheetIndex >= len(f.Sheets) {
		return nil, nil, eris.Errorf("dataset: sheet index %d out of range (%d sheets)", sheetIndex, len(f.Sheets))
	}
	sheet := f.Sheets[sheetIndex]

	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, strings.TrimSpace(cell.String()))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}

	if len(rows) == 0 {
		return nil, nil, eris.Errorf("dataset: %s has no rows", path)
	}
	return rows[0], rows[1:], nil
}
