package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"aceh-poverty-dashboard/models"
)

// ECharts renders interactive HTML charts whose tooltips show each point's
// hover lines.
type ECharts struct {
	Width  string
	Height string
}

// NewECharts returns an ECharts renderer filling its frame.
func NewECharts() *ECharts {
	return &ECharts{Width: "100%", Height: "520px"}
}

func (e *ECharts) ContentType() string { return "text/html; charset=utf-8" }

// Render writes a standalone HTML page holding the chart.
func (e *ECharts) Render(w io.Writer, c *models.Chart) error {
	if c == nil || c.Empty() {
		return ErrEmptyChart
	}
	switch c.Kind {
	case models.ChartLine:
		return e.line(c).Render(w)
	case models.ChartBar:
		return e.bar(c).Render(w)
	case models.ChartPie:
		return e.pie(c).Render(w)
	}
	return fmt.Errorf("echarts: unsupported chart kind %q", c.Kind)
}

func (e *ECharts) init(c *models.Chart) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: c.Title,
		Width:     e.Width,
		Height:    e.Height,
	})
}

func (e *ECharts) line(c *models.Chart) *charts.Line {
	minX, maxX := c.XRange()
	line := charts.NewLine()
	line.SetGlobalOptions(
		e.init(c),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: "{b}"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: c.XLabel, Min: minX, Max: maxX}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
	)

	for i, s := range c.Series {
		data := make([]opts.LineData, len(s.Points))
		for j, p := range s.Points {
			data[j] = opts.LineData{Name: hoverHTML(s.Name, p), Value: []interface{}{p.X, p.Y}}
		}

		seriesOpts := []charts.SeriesOpts{charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)})}
		if s.Predicted {
			seriesOpts = append(seriesOpts, charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
		}
		if i == 0 && c.Divider != nil {
			seriesOpts = append(seriesOpts,
				charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{Name: "Prediksi", XAxis: *c.Divider}),
				charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
					Symbol:    []string{"none", "none"},
					LineStyle: &opts.LineStyle{Type: "dashed", Color: "gray"},
				}),
			)
		}
		line.AddSeries(s.Name, data, seriesOpts...)
	}
	return line
}

func (e *ECharts) bar(c *models.Chart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		e.init(c),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: "{b}"}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel, AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
	)

	var labels []string
	if len(c.Series) > 0 {
		for _, p := range c.Series[0].Points {
			labels = append(labels, p.Label)
		}
	}
	bar.SetXAxis(labels)
	for _, s := range c.Series {
		data := make([]opts.BarData, len(s.Points))
		for j, p := range s.Points {
			data[j] = opts.BarData{Name: hoverHTML("", p), Value: p.Y}
		}
		bar.AddSeries(s.Name, data)
	}
	return bar
}

func (e *ECharts) pie(c *models.Chart) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		e.init(c),
		charts.WithTitleOpts(opts.Title{Title: c.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: "{b}: {c} ({d}%)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	for _, s := range c.Series {
		data := make([]opts.PieData, len(s.Points))
		for j, p := range s.Points {
			data[j] = opts.PieData{Name: p.Label, Value: p.Y}
		}
		pie.AddSeries(s.Name, data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
		)
	}
	return pie
}

// hoverHTML joins the hover lines for the tooltip. Points without hover text
// fall back to the series name and value.
func hoverHTML(series string, p models.Point) string {
	if len(p.Hover) > 0 {
		return strings.Join(p.Hover, "<br/>")
	}
	if p.Label != "" {
		return fmt.Sprintf("%s: %g", p.Label, p.Y)
	}
	return fmt.Sprintf("%s: %g", series, p.Y)
}
