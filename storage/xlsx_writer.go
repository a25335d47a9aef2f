package storage

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"aceh-poverty-dashboard/models"
)

const maxSheetName = 31

// XLSXWriter collects tables into one workbook, one sheet per table.
// Numeric cells are written as numbers.
type XLSXWriter struct {
	mu     sync.Mutex
	f      *excelize.File
	path   string
	sheets map[string]bool
}

// NewXLSXWriter creates a workbook saved to path on Close. An empty path
// keeps it in memory for WriteTo.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{f: excelize.NewFile(), path: path, sheets: make(map[string]bool)}
}

// WriteTable adds t as a new sheet named after it.
func (x *XLSXWriter) WriteTable(t *models.Table) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	sheet := x.uniqueSheet(string(t.Name))
	if len(x.sheets) == 0 {
		if err := x.f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("xlsx: rename sheet: %w", err)
		}
	} else if _, err := x.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("xlsx: new sheet %q: %w", sheet, err)
	}
	x.sheets[sheet] = true

	for i, h := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := x.f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: header %s: %w", cell, err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = x.f.SetColWidth(sheet, col, col, 18)
	}
	for r, row := range t.Rows {
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = cellValue(v)
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := x.f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", r+2, err)
		}
	}
	return nil
}

// Sheets returns the number of sheets written.
func (x *XLSXWriter) Sheets() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.sheets)
}

// WriteTo streams the workbook to w.
func (x *XLSXWriter) WriteTo(w io.Writer) (int64, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.f.WriteTo(w)
}

// Close saves the workbook when it has a path and releases it.
func (x *XLSXWriter) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.path != "" {
		if err := x.f.SaveAs(x.path); err != nil {
			_ = x.f.Close()
			return fmt.Errorf("xlsx: save %q: %w", x.path, err)
		}
	}
	return x.f.Close()
}

func (x *XLSXWriter) uniqueSheet(name string) string {
	base := sheetName(name)
	sheet := base
	for i := 2; x.sheets[sheet]; i++ {
		suffix := "_" + strconv.Itoa(i)
		if len(base)+len(suffix) > maxSheetName {
			sheet = base[:maxSheetName-len(suffix)] + suffix
		} else {
			sheet = base + suffix
		}
	}
	return sheet
}

// sheetName strips characters Excel rejects and truncates to 31 bytes.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		if r > 127 {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Sheet"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}

func cellValue(s string) interface{} {
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}
	return s
}
