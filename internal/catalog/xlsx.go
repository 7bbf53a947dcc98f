package catalog

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first sheet of a workbook. Cell values are taken raw so
// currency or thousands formatting on numeric cells does not leak into them.
func readXLSX(path string) ([]row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	cells, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	rows := make([]row, 0, len(cells))
	for i, fields := range cells {
		if isBlank(fields) {
			continue
		}
		rows = append(rows, row{line: i + 1, fields: fields})
	}
	return rows, nil
}
