package workbook

import "fmt"

// MemoryWorkbook is a workbook held entirely in memory.
// It backs conversions of generated data and keeps tests free of fixture files.
type MemoryWorkbook struct {
	names  []string
	sheets map[string][][]string
}

// NewMemoryWorkbook creates an empty in-memory workbook
func NewMemoryWorkbook() *MemoryWorkbook {
	return &MemoryWorkbook{sheets: make(map[string][][]string)}
}

// AddSheet appends a sheet; rows[0] is the header. Adding an existing name replaces its rows.
func (w *MemoryWorkbook) AddSheet(name string, rows [][]string) *MemoryWorkbook {
	if _, exists := w.sheets[name]; !exists {
		w.names = append(w.names, name)
	}
	w.sheets[name] = rows
	return w
}

// SheetNames lists the sheets in insertion order
func (w *MemoryWorkbook) SheetNames() []string {
	names := make([]string, len(w.names))
	copy(names, w.names)
	return names
}

// Table returns the named sheet
func (w *MemoryWorkbook) Table(name string) (*Table, error) {
	rows, ok := w.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	return NewTable(name, rows), nil
}

// Close is a no-op
func (w *MemoryWorkbook) Close() error {
	return nil
}
