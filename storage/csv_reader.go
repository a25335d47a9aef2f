package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"aceh-poverty-dashboard/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSource reads datasets from delimited files under a data directory.
type CSVSource struct {
	dir string
}

// NewCSVSource returns a CSVSource rooted at dir. Relative dataset paths are
// resolved against it.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

// Load reads the whole file named by spec. A zero spec.Delimiter is sniffed
// from the header line.
func (s *CSVSource) Load(ctx context.Context, spec models.DatasetSpec) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := spec.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", spec.Name, err)
	}
	t, err := ParseCSV(spec.Name, data, spec.Delimiter)
	if err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", spec.Name, err)
	}
	return t, nil
}

// ParseCSV parses delimited data with a header line into a Table.
func ParseCSV(name models.DatasetName, data []byte, delim rune) (*models.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if delim == 0 {
		delim = sniffDelimiter(data)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make([]string, len(header))
	copy(columns, header)

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rows = append(rows, rec)
	}
	return models.NewTable(name, columns, rows), nil
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab on the
// first line. Ties and lines without any go to comma.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
