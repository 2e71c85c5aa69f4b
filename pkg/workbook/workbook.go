// Package workbook provides read access to the dialogue spreadsheets consumed by NaniTools.
// A workbook is a set of named tables (sheets); the first row of every table is its header.
package workbook

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrWorkbookNotFound is returned when no workbook can be located on disk
	ErrWorkbookNotFound = errors.New("workbook not found")
	// ErrUnsupportedFormat is returned for files that are not .xlsx workbooks
	ErrUnsupportedFormat = errors.New("unsupported workbook format")
	// ErrSheetNotFound is returned when a requested sheet does not exist
	ErrSheetNotFound = errors.New("sheet not found")
)

// Workbook is a read-only collection of named tables.
type Workbook interface {
	// SheetNames lists the sheets in workbook order.
	SheetNames() []string
	// Table reads one sheet. The first row becomes the header.
	Table(name string) (*Table, error)
	Close() error
}

// Table is one sheet split into a header and data rows.
type Table struct {
	Name    string
	Header  []string
	Rows    [][]string
	columns map[string]int
}

// NewTable builds a table from raw sheet rows, using the first row as header.
// Header cells are trimmed; when a header repeats, its first occurrence wins.
func NewTable(name string, rows [][]string) *Table {
	t := &Table{Name: name, columns: make(map[string]int)}
	if len(rows) == 0 {
		return t
	}

	t.Header = make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header := strings.TrimSpace(cell)
		t.Header[i] = header
		if header == "" {
			continue
		}
		if _, exists := t.columns[header]; !exists {
			t.columns[header] = i
		}
	}
	t.Rows = rows[1:]
	return t
}

// HasColumn reports whether the header contains the given column
func (t *Table) HasColumn(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// Cell returns the raw value at a data row and column.
// The boolean is false when the column does not exist; cells past the end of a row read as empty.
func (t *Table) Cell(row int, column string) (string, bool) {
	index, ok := t.columns[column]
	if !ok {
		return "", false
	}
	if row < 0 || row >= len(t.Rows) {
		return "", true
	}
	cells := t.Rows[row]
	if index >= len(cells) {
		return "", true
	}
	return cells[index], true
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// RowNumber converts a data row index to the row number shown by spreadsheet editors.
func RowNumber(index int) int {
	return index + 2
}

// Open opens a workbook file, choosing the reader by extension.
func Open(path string) (Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		wb, err := OpenXLSX(path)
		if err != nil {
			return nil, err
		}
		return wb, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
