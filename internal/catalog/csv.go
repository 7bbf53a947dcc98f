package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Parse decodes a CSV catalog from r.
func Parse(r io.Reader) ([]Record, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return decodeRows(rows)
}

func readCSVFile(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return readCSV(f)
}

func readCSV(r io.Reader) ([]row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // short rows are reported per column
	reader.TrimLeadingSpace = true

	var rows []row
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &MalformedRecordError{Line: parseErr.Line, Reason: parseErr.Err.Error()}
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if isBlank(fields) {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, row{line: line, fields: fields})
	}
	return rows, nil
}
