package models

import "strconv"

// ChartKind is the visual form a chart takes.
type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
)

// Point is one plotted value. Line charts use X (the year); bar and pie charts
// use Label. Hover holds preformatted tooltip lines.
type Point struct {
	X     float64  `json:"x,omitempty"`
	Label string   `json:"label,omitempty"`
	Y     float64  `json:"y"`
	Hover []string `json:"hover,omitempty"`
}

// ChartSeries is one named trace of a chart.
type ChartSeries struct {
	Name      string  `json:"name"`
	Predicted bool    `json:"predicted,omitempty"`
	Points    []Point `json:"points"`
}

// Chart is a renderer-independent description of a chart.
type Chart struct {
	Kind        ChartKind     `json:"kind"`
	Title       string        `json:"title"`
	XLabel      string        `json:"x_label,omitempty"`
	YLabel      string        `json:"y_label,omitempty"`
	LegendTitle string        `json:"legend_title,omitempty"`
	Series      []ChartSeries `json:"series"`
	// Divider, when set, is the x position separating actual from predicted data.
	Divider *float64 `json:"divider,omitempty"`
}

// Empty reports whether the chart has no points at all.
func (c *Chart) Empty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// XRange returns the smallest and largest X over every series.
func (c *Chart) XRange() (min, max float64) {
	first := true
	for _, s := range c.Series {
		for _, p := range s.Points {
			if first || p.X < min {
				min = p.X
			}
			if first || p.X > max {
				max = p.X
			}
			first = false
		}
	}
	return min, max
}

// YMax returns the largest Y over every series, or 0 when the chart is empty.
func (c *Chart) YMax() float64 {
	max := 0.0
	first := true
	for _, s := range c.Series {
		for _, p := range s.Points {
			if first || p.Y > max {
				max = p.Y
				first = false
			}
		}
	}
	return max
}

// Table flattens the chart into one row per point, for exports.
func (c *Chart) Table(name string) *Table {
	cols := []string{"series", "predicted", "x", "label", "y"}
	var rows [][]string
	for _, s := range c.Series {
		for _, p := range s.Points {
			x := ""
			if p.Label == "" {
				x = strconv.FormatFloat(p.X, 'f', -1, 64)
			}
			rows = append(rows, []string{
				s.Name,
				strconv.FormatBool(s.Predicted),
				x,
				p.Label,
				strconv.FormatFloat(p.Y, 'f', -1, 64),
			})
		}
	}
	return NewTable(DatasetName(name), cols, rows)
}
