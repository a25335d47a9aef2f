package models

import "sort"

// Observation is one historical data point of a metric.
type Observation struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Series is the history of one metric, for one regency or aggregated across
// regencies. It holds at most one value per year.
type Series struct {
	Label        string        `json:"label"`
	Observations []Observation `json:"observations"`
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Observations) }

// SortByYear orders the observations by ascending year in place.
func (s Series) SortByYear() {
	sort.Slice(s.Observations, func(i, j int) bool {
		return s.Observations[i].Year < s.Observations[j].Year
	})
}

// Years returns the observation years as floats, in series order.
func (s Series) Years() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = float64(o.Year)
	}
	return out
}

// Values returns the observation values, in series order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Value
	}
	return out
}

// LastYear returns the latest year in the series, or 0 when empty.
func (s Series) LastYear() int {
	last := 0
	for _, o := range s.Observations {
		if o.Year > last {
			last = o.Year
		}
	}
	return last
}

// TrendModel is a fitted line value(year) = Slope*year + Intercept.
type TrendModel struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the trend line at year.
func (m TrendModel) At(year int) float64 {
	return m.Slope*float64(year) + m.Intercept
}

// ProjectedPoint is a trend line evaluated at one year.
type ProjectedPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Projection is a trend line evaluated at caller-supplied years, in the
// order they were supplied.
type Projection []ProjectedPoint

// Values returns the projected values in order.
func (p Projection) Values() []float64 {
	out := make([]float64, len(p))
	for i, pt := range p {
		out[i] = pt.Value
	}
	return out
}

// YearRange returns years from..to inclusive.
func YearRange(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for y := from; y <= to; y++ {
		out = append(out, y)
	}
	return out
}
