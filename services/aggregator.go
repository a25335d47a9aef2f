package services

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"aceh-poverty-dashboard/models"
)

// Reducer collapses the values sharing one group key.
type Reducer int

const (
	Sum Reducer = iota
	Mean
)

func (r Reducer) String() string {
	if r == Mean {
		return "mean"
	}
	return "sum"
}

func (r Reducer) apply(vals []float64) float64 {
	if r == Mean {
		return stat.Mean(vals, nil)
	}
	return floats.Sum(vals)
}

// GroupValue is one reduced group.
type GroupValue struct {
	Key   string
	Value float64
}

// SeriesByYear groups the table by year, reducing valueCol with r. Blank
// values are skipped; years with no values are left out. The series is
// sorted by year.
func SeriesByYear(t *models.Table, valueCol string, r Reducer) (models.Series, error) {
	s := models.Series{Label: valueCol}
	yc, err := t.Col(models.ColYear)
	if err != nil {
		return s, err
	}
	vc, err := t.Col(valueCol)
	if err != nil {
		return s, err
	}

	byYear := make(map[int][]float64)
	for i := range t.Rows {
		year, ok := t.Year(i, yc)
		if !ok {
			continue
		}
		v, ok := t.Float(i, vc)
		if !ok {
			continue
		}
		byYear[year] = append(byYear[year], v)
	}

	for year, vals := range byYear {
		s.Observations = append(s.Observations, models.Observation{Year: year, Value: r.apply(vals)})
	}
	s.SortByYear()
	return s, nil
}

// GroupBy reduces valueCol per distinct keyCol value. The result is sorted by
// descending value, then by key.
func GroupBy(t *models.Table, keyCol, valueCol string, r Reducer) ([]GroupValue, error) {
	kc, err := t.Col(keyCol)
	if err != nil {
		return nil, err
	}
	vc, err := t.Col(valueCol)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]float64)
	for i, row := range t.Rows {
		key := row[kc]
		if key == "" {
			continue
		}
		v, ok := t.Float(i, vc)
		if !ok {
			continue
		}
		groups[key] = append(groups[key], v)
	}

	out := make([]GroupValue, 0, len(groups))
	for k, vals := range groups {
		out = append(out, GroupValue{Key: k, Value: r.apply(vals)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// TopN returns the first n groups. n <= 0 or n beyond the length returns all.
func TopN(groups []GroupValue, n int) []GroupValue {
	if n <= 0 || n >= len(groups) {
		return groups
	}
	return groups[:n]
}

// Keys returns the group keys in order.
func Keys(groups []GroupValue) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

// FilterYears keeps rows with from <= year <= to.
func FilterYears(t *models.Table, from, to int) (*models.Table, error) {
	yc, err := t.Col(models.ColYear)
	if err != nil {
		return nil, err
	}
	return t.Filter(func(i int) bool {
		y, ok := t.Year(i, yc)
		return ok && y >= from && y <= to
	}), nil
}

// FilterYear keeps rows of a single year.
func FilterYear(t *models.Table, year int) (*models.Table, error) {
	return FilterYears(t, year, year)
}

// FilterEqual keeps rows whose col equals value.
func FilterEqual(t *models.Table, col, value string) (*models.Table, error) {
	return FilterIn(t, col, []string{value})
}

// FilterIn keeps rows whose col is one of values.
func FilterIn(t *models.Table, col string, values []string) (*models.Table, error) {
	c, err := t.Col(col)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return t.Filter(func(i int) bool {
		_, ok := set[t.Rows[i][c]]
		return ok
	}), nil
}

// Years returns the distinct years of the table in ascending order.
func Years(t *models.Table) ([]int, error) {
	yc, err := t.Col(models.ColYear)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{})
	var out []int
	for i := range t.Rows {
		y, ok := t.Year(i, yc)
		if !ok {
			continue
		}
		if _, dup := seen[y]; !dup {
			seen[y] = struct{}{}
			out = append(out, y)
		}
	}
	sort.Ints(out)
	return out, nil
}

// Distinct returns the distinct non-empty values of col in first-seen order.
func Distinct(t *models.Table, col string) ([]string, error) {
	c, err := t.Col(col)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, row := range t.Rows {
		v := row[c]
		if v == "" {
			continue
		}
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out, nil
}

// PercentChange returns the change of each value against the previous one,
// in percent. The first element, and any element following a zero, is 0.
func PercentChange(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		out[i] = (values[i] - values[i-1]) / values[i-1] * 100
	}
	return out
}

// RegencySeries returns the per-year series of valueCol for one regency.
func RegencySeries(t *models.Table, regency, valueCol string, r Reducer) (models.Series, error) {
	sub, err := FilterEqual(t, models.ColRegency, regency)
	if err != nil {
		return models.Series{}, err
	}
	s, err := SeriesByYear(sub, valueCol, r)
	if err != nil {
		return s, fmt.Errorf("series for %s: %w", regency, err)
	}
	s.Label = regency
	return s, nil
}
