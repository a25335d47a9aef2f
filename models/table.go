package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Column names as they appear in the source files. They are kept verbatim.
const (
	ColYear             = "tahun"
	ColRegency          = "bps_nama_kabupaten_kota"
	ColPoorPopulation   = "bps_jumlah_penduduk"
	ColPoorPercentage   = "persentase_jumlah_penduduk_miskin"
	ColArea             = "daerah"
	ColAreaPercentage   = "persentase_penduduk_miskin"
	ColDepthIndex       = "indeks_kedalaman"
	ColSeverityIndex    = "indeks_keparahan_kemiskinan"
	ColPovertyLineValue = "garis_kemiskinan"
)

// DatasetName identifies one of the tabular inputs.
type DatasetName string

const (
	DatasetPovertyCount DatasetName = "poverty_count"
	DatasetPovertyShare DatasetName = "poverty_share"
	DatasetPovertyIndex DatasetName = "poverty_index"
	DatasetPovertyLine  DatasetName = "poverty_line"
)

// DatasetSpec tells a loader where a dataset lives and how it is delimited.
// A zero Delimiter means the loader sniffs it from the header line.
type DatasetSpec struct {
	Name      DatasetName
	Path      string
	Delimiter rune
	// Numeric lists the columns the cleaner coerces to numbers.
	Numeric []string
}

// Table is a delimited file read into memory: a header and string cells.
// Cells that failed numeric coercion are empty strings.
type Table struct {
	Name    DatasetName
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a Table, padding short rows so every row has one cell per column.
func NewTable(name DatasetName, columns []string, rows [][]string) *Table {
	t := &Table{Name: name, Columns: columns, Rows: rows}
	for i, r := range t.Rows {
		if len(r) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, r)
			t.Rows[i] = padded
		}
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		c = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		t.Columns[i] = c
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// Col returns the position of a column or an error naming the missing column.
func (t *Table) Col(name string) (int, error) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	if !ok {
		return -1, fmt.Errorf("dataset %s: missing column %q", t.Name, name)
	}
	return i, nil
}

// MissingColumns reports which of names are absent from the table.
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, n := range names {
		if _, err := t.Col(n); err != nil {
			missing = append(missing, n)
		}
	}
	return missing
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Float parses cell (row, col) as a float. Empty or unparsable cells report false.
func (t *Table) Float(row, col int) (float64, bool) {
	s := strings.TrimSpace(t.Rows[row][col])
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Year parses cell (row, col) as a year. Values such as "2020.0" are accepted.
func (t *Table) Year(row, col int) (int, bool) {
	v, ok := t.Float(row, col)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// Filter returns a table sharing the header with only the rows keep accepts.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := &Table{Name: t.Name, Columns: t.Columns, index: t.index}
	for i, r := range t.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Datasets holds every loaded table. It is read-only after load and shared by
// all requests.
type Datasets struct {
	PovertyCount *Table
	PovertyShare *Table
	PovertyIndex *Table
	PovertyLine  *Table
}

// Get returns the table for name, or nil.
func (d *Datasets) Get(name DatasetName) *Table {
	switch name {
	case DatasetPovertyCount:
		return d.PovertyCount
	case DatasetPovertyShare:
		return d.PovertyShare
	case DatasetPovertyIndex:
		return d.PovertyIndex
	case DatasetPovertyLine:
		return d.PovertyLine
	}
	return nil
}

// Set stores t under its own name. Unknown names are ignored.
func (d *Datasets) Set(t *Table) {
	switch t.Name {
	case DatasetPovertyCount:
		d.PovertyCount = t
	case DatasetPovertyShare:
		d.PovertyShare = t
	case DatasetPovertyIndex:
		d.PovertyIndex = t
	case DatasetPovertyLine:
		d.PovertyLine = t
	}
}

// All returns the loaded tables in a stable order, skipping nil ones.
func (d *Datasets) All() []*Table {
	var out []*Table
	for _, t := range []*Table{d.PovertyCount, d.PovertyShare, d.PovertyIndex, d.PovertyLine} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
