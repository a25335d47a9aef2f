package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"aceh-poverty-dashboard/models"
)

// CSVWriter writes each table to its own CSV file in a directory.
// It is safe for concurrent use.
type CSVWriter struct {
	mu      sync.Mutex
	dir     string
	written []string
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// WriteTable writes t to <dir>/<name>.csv, truncating any previous file.
func (c *CSVWriter) WriteTable(t *models.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := filepath.Join(c.dir, FileName(string(t.Name))+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("csv: write rows: %w", err)
	}
	c.written = append(c.written, path)
	return nil
}

// Written returns the paths written so far.
func (c *CSVWriter) Written() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.written...)
}

// Close is a no-op; every file is closed after its write.
func (c *CSVWriter) Close() error { return nil }

// FileName turns a table or section name into a safe file name.
func FileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "table"
	}
	return b.String()
}
