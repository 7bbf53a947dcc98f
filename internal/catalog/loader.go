package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the whole catalog at path. Files ending in .xlsx are read from
// their first sheet, anything else is treated as CSV. No records are returned
// unless every row is valid.
func (l *Loader) Load(path string) ([]Record, error) {
	const operation = "catalog.Load"

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w: %s", operation, ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%s: stat %s: %w", operation, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w: %s is a directory", operation, ErrSourceNotFound, path)
	}

	var rows []row
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSVFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	records, err := decodeRows(rows)
	if err != nil {
		l.logger.Debug("Catalog rejected",
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	l.logger.Info("Catalog loaded",
		zap.String("path", path),
		zap.Int("records", len(records)))

	return records, nil
}

// row is one non-blank line of the source with its 1-based line number.
type row struct {
	line   int
	fields []string
}

func decodeRows(rows []row) ([]Record, error) {
	if len(rows) == 0 {
		return nil, &MalformedRecordError{Column: ColumnType, Reason: "empty source, missing column"}
	}

	index, err := headerIndex(rows[0].fields)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for _, r := range rows[1:] {
		rec, err := decodeRecord(r, index)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &MalformedRecordError{Column: col, Reason: "missing column"}
		}
	}
	return index, nil
}

func decodeRecord(r row, index map[string]int) (Record, error) {
	field := func(col string) (string, error) {
		i := index[col]
		if i >= len(r.fields) {
			return "", &MalformedRecordError{Line: r.line, Column: col, Reason: "missing value"}
		}
		v := strings.TrimSpace(r.fields[i])
		if v == "" {
			return "", &MalformedRecordError{Line: r.line, Column: col, Reason: "missing value"}
		}
		return v, nil
	}

	number := func(col string) (float64, error) {
		v, err := field(col)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, &MalformedRecordError{Line: r.line, Column: col, Value: v, Reason: "not a decimal number"}
		}
		return n, nil
	}

	var (
		rec Record
		err error
	)
	if rec.Type, err = field(ColumnType); err != nil {
		return Record{}, err
	}
	if rec.Color, err = field(ColumnColor); err != nil {
		return Record{}, err
	}
	if rec.WeightGrams, err = number(ColumnWeight); err != nil {
		return Record{}, err
	}
	if rec.CostTotal, err = number(ColumnCostTotal); err != nil {
		return Record{}, err
	}

	if rec.WeightGrams <= 0 {
		return Record{}, &MalformedRecordError{
			Line:   r.line,
			Column: ColumnWeight,
			Value:  strconv.FormatFloat(rec.WeightGrams, 'f', -1, 64),
			Reason: "must be greater than zero",
		}
	}
	if rec.CostTotal < 0 {
		return Record{}, &MalformedRecordError{
			Line:   r.line,
			Column: ColumnCostTotal,
			Value:  strconv.FormatFloat(rec.CostTotal, 'f', -1, 64),
			Reason: "must not be negative",
		}
	}

	return rec, nil
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
