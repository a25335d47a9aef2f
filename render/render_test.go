package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"aceh-poverty-dashboard/models"
)

func lineChart() *models.Chart {
	divider := 2021.5
	return &models.Chart{
		Kind:    models.ChartLine,
		Title:   "Jumlah Penduduk Miskin",
		XLabel:  "Tahun",
		YLabel:  "Ribu Jiwa",
		Divider: &divider,
		Series: []models.ChartSeries{
			{Name: "Actual", Points: []models.Point{
				{X: 2020, Y: 814.93, Hover: []string{"Tahun: 2020", "Jumlah Penduduk: 814,93 ribu jiwa"}},
				{X: 2021, Y: 834.25, Hover: []string{"Tahun: 2021", "Jumlah Penduduk: 834,25 ribu jiwa"}},
			}},
			{Name: "Predicted", Predicted: true, Points: []models.Point{
				{X: 2022, Y: 830},
				{X: 2023, Y: 825},
			}},
		},
	}
}

func barChart(kind models.ChartKind) *models.Chart {
	return &models.Chart{
		Kind:  kind,
		Title: "Garis Kemiskinan",
		Series: []models.ChartSeries{{Name: "2023", Points: []models.Point{
			{Label: "Kota Sabang", Y: 540000, Hover: []string{"Kota Sabang", "Rp540.000"}},
			{Label: "Kabupaten Pidie", Y: 490000},
		}}},
	}
}

func TestEChartsRender(t *testing.T) {
	r := NewECharts()
	for _, c := range []*models.Chart{lineChart(), barChart(models.ChartBar), barChart(models.ChartPie)} {
		var buf bytes.Buffer
		if err := r.Render(&buf, c); err != nil {
			t.Fatalf("%s: %v", c.Kind, err)
		}
		out := buf.String()
		if !strings.Contains(out, "echarts") {
			t.Errorf("%s: output does not load echarts", c.Kind)
		}
		if !strings.Contains(out, c.Title) {
			t.Errorf("%s: title missing", c.Kind)
		}
	}
}

func TestEChartsHoverInTooltip(t *testing.T) {
	var buf bytes.Buffer
	if err := NewECharts().Render(&buf, lineChart()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "814,93 ribu jiwa") {
		t.Error("hover text not embedded in chart data")
	}
}

func TestPlotPNGRender(t *testing.T) {
	r := NewPlotPNG()
	for _, c := range []*models.Chart{lineChart(), barChart(models.ChartBar), barChart(models.ChartPie)} {
		var buf bytes.Buffer
		if err := r.Render(&buf, c); err != nil {
			t.Fatalf("%s: %v", c.Kind, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
			t.Errorf("%s: output is not a PNG", c.Kind)
		}
	}
}

func TestRenderEmptyChart(t *testing.T) {
	empty := &models.Chart{Kind: models.ChartLine}
	for _, r := range []Renderer{NewECharts(), NewPlotPNG()} {
		if err := r.Render(&bytes.Buffer{}, empty); !errors.Is(err, ErrEmptyChart) {
			t.Errorf("%T: got %v, want ErrEmptyChart", r, err)
		}
	}
}

func TestHoverHTML(t *testing.T) {
	got := hoverHTML("Actual", models.Point{Hover: []string{"a", "b"}})
	if got != "a<br/>b" {
		t.Errorf("got %q", got)
	}
	if got := hoverHTML("Actual", models.Point{Y: 2}); got != "Actual: 2" {
		t.Errorf("got %q", got)
	}
}
