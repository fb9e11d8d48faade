package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/zjrosen/gridline/internal/tableengine"
)

// ErrNoHeader is returned when a delimited file has no header row.
var ErrNoHeader = errors.New("source: missing header row")

func delimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// LoadCSV reads delimited text whose first row names the columns.
// Short rows leave the missing cells empty; long rows are rejected.
func LoadCSV(r io.Reader, delim rune) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, ErrNoHeader
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("reading header: %w", err)
	}
	ids, err := columnIDs(header)
	if err != nil {
		return Dataset{}, err
	}

	var records []tableengine.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("reading row %d: %w", line, err)
		}
		if len(row) > len(ids) {
			return Dataset{}, fmt.Errorf("row %d: %d fields, header has %d", line, len(row), len(ids))
		}
		values := make(map[string]any, len(ids))
		for i, id := range ids {
			if i < len(row) {
				values[id] = row[i]
			} else {
				values[id] = ""
			}
		}
		records = append(records, tableengine.NewRecord(values))
	}

	cols := inferColumns(ids, records)
	normalizeNumbers(cols, records)
	return Dataset{Columns: cols, Records: records}, nil
}

func columnIDs(header []string) ([]string, error) {
	ids := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		id := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if id == "" {
			id = fmt.Sprintf("column_%d", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate column %q", id)
		}
		seen[id] = true
		ids[i] = id
	}
	return ids, nil
}

// ExportCSV writes the visible columns of the engine's current row model,
// in display order, as CSV with a header row.
func ExportCSV(w io.Writer, e *tableengine.Engine) error {
	cols := e.VisibleColumns()
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Title()
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rows := e.RowCount()
	line := make([]string, len(cols))
	for r := 0; r < rows; r++ {
		for c := range cols {
			line[c] = tableengine.FormatValue(e.CellValue(r, c))
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("writing row %d: %w", r, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
