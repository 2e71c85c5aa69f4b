package workbook

import (
	"fmt"

	"github.com/hansbonini/nanitools/pkg/common"
	"github.com/xuri/excelize/v2"
)

// XLSXWorkbook reads Office Open XML workbooks through excelize.
type XLSXWorkbook struct {
	file *excelize.File
}

// OpenXLSX opens an .xlsx file for reading
func OpenXLSX(path string) (*XLSXWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &XLSXWorkbook{file: f}, nil
}

// SheetNames lists the sheets in workbook order
func (w *XLSXWorkbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Table reads all rows of a sheet
func (w *XLSXWorkbook) Table(name string) (*Table, error) {
	if index, err := w.file.GetSheetIndex(name); err != nil || index < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}

	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", common.ErrFailedToReadSheet, name, err)
	}
	return NewTable(name, rows), nil
}

// Close releases the underlying file
func (w *XLSXWorkbook) Close() error {
	return w.file.Close()
}
