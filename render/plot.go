package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"aceh-poverty-dashboard/models"
)

// PlotPNG renders static PNG charts with gonum/plot. Pie charts are drawn as
// bars.
type PlotPNG struct {
	Width  vg.Length
	Height vg.Length
}

// NewPlotPNG returns a PlotPNG renderer at 12x6 inches.
func NewPlotPNG() *PlotPNG {
	return &PlotPNG{Width: 12 * vg.Inch, Height: 6 * vg.Inch}
}

func (r *PlotPNG) ContentType() string { return "image/png" }

func (r *PlotPNG) Render(w io.Writer, c *models.Chart) error {
	if c == nil || c.Empty() {
		return ErrEmptyChart
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	var err error
	switch c.Kind {
	case models.ChartLine:
		err = addLines(p, c)
	case models.ChartBar, models.ChartPie:
		err = addBars(p, c)
	default:
		err = fmt.Errorf("plot: unsupported chart kind %q", c.Kind)
	}
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func addLines(p *plot.Plot, c *models.Chart) error {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
			minY = math.Min(minY, pt.Y)
			maxY = math.Max(maxY, pt.Y)
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("plot: series %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = draw.CircleGlyph{}
		if s.Predicted {
			line.Dashes = []vg.Length{vg.Points(predictedDash), vg.Points(predictedDash / 2)}
		}
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
	}

	if c.Divider != nil {
		divider, err := plotter.NewLine(plotter.XYs{{X: *c.Divider, Y: minY}, {X: *c.Divider, Y: maxY}})
		if err != nil {
			return fmt.Errorf("plot: divider: %w", err)
		}
		divider.Color = color.Gray{Y: 128}
		divider.Dashes = []vg.Length{vg.Points(predictedDash), vg.Points(predictedDash)}
		p.Add(divider)
	}
	p.X.Tick.Marker = yearTicks{}
	return nil
}

func addBars(p *plot.Plot, c *models.Chart) error {
	if len(c.Series) == 0 {
		return ErrEmptyChart
	}
	s := c.Series[0]
	values := make(plotter.Values, len(s.Points))
	labels := make([]string, len(s.Points))
	for i, pt := range s.Points {
		values[i] = pt.Y
		labels[i] = pt.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("plot: bars: %w", err)
	}
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Min = 0
	return nil
}

// yearTicks places a labelled tick on every whole year.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for y := math.Ceil(min); y <= max; y++ {
		ticks = append(ticks, plot.Tick{Value: y, Label: fmt.Sprintf("%.0f", y)})
	}
	return ticks
}
