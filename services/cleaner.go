package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"aceh-poverty-dashboard/models"
	"aceh-poverty-dashboard/utils"
)

// Cleaner coerces raw table cells into the types the aggregator expects.
// It does no validation beyond that: numeric cells that do not parse become
// empty and rows without a readable year are dropped.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger.With("cleaner")}
}

// Clean returns a new table with normalised text cells, numeric columns in
// canonical form and unreadable-year rows removed. Missing required columns
// are an error: the file is not the dataset it claims to be.
func (c *Cleaner) Clean(t *models.Table, numeric []string) (*models.Table, error) {
	required := append([]string{models.ColYear}, numeric...)
	if missing := t.MissingColumns(required...); len(missing) > 0 {
		return nil, fmt.Errorf("clean %s: missing columns %s", t.Name, strings.Join(missing, ", "))
	}

	yearCol, _ := t.Col(models.ColYear)
	numCols := make(map[int]bool, len(numeric))
	for _, name := range numeric {
		i, _ := t.Col(name)
		numCols[i] = true
	}

	rows := make([][]string, 0, len(t.Rows))
	coerced := 0
	for n, raw := range t.Rows {
		row := make([]string, len(t.Columns))
		for i := range row {
			if i < len(raw) {
				row[i] = normaliseText(raw[i])
			}
		}

		year, ok := parseNumeric(row[yearCol])
		if !ok {
			c.logger.Debug("Dropping row %d of %s with unreadable year %q", n+2, t.Name, row[yearCol])
			continue
		}
		row[yearCol] = strconv.Itoa(int(year))

		for i := range numCols {
			if row[i] == "" {
				continue
			}
			v, ok := parseNumeric(row[i])
			if !ok {
				coerced++
				row[i] = ""
				continue
			}
			row[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		rows = append(rows, row)
	}

	if coerced > 0 {
		c.logger.Warn("%d non-numeric cells in %s treated as missing", coerced, t.Name)
	}
	c.logger.Info("Cleaned %s: %d → %d rows (dropped %d)",
		t.Name, len(t.Rows), len(rows), len(t.Rows)-len(rows))

	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)
	return models.NewTable(t.Name, columns, rows), nil
}

// parseNumeric reads numbers the way they appear in the source files:
// "880.52", "15,43", "1.234.567", "1,234,567.5", "Rp528.120,00", "12 %".
// A lone dot is a decimal point, a lone comma is a decimal comma, and a
// repeated separator groups thousands.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "Rp")
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.ReplaceAll(raw, "\u00a0", "")
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return 0, false
	}

	commas := strings.Count(raw, ",")
	dots := strings.Count(raw, ".")
	switch {
	case commas > 0 && dots > 0:
		if strings.LastIndex(raw, ",") > strings.LastIndex(raw, ".") {
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.Replace(raw, ",", ".", 1)
		} else {
			raw = strings.ReplaceAll(raw, ",", "")
		}
	case commas == 1:
		raw = strings.Replace(raw, ",", ".", 1)
	case commas > 1:
		raw = strings.ReplaceAll(raw, ",", "")
	case dots > 1:
		raw = strings.ReplaceAll(raw, ".", "")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
