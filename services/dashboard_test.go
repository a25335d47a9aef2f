package services

import (
	"strings"
	"testing"

	"aceh-poverty-dashboard/models"
)

func testDatasets() *models.Datasets {
	share := models.NewTable(models.DatasetPovertyShare,
		[]string{"tahun", "daerah", "persentase_penduduk_miskin"},
		[][]string{
			{"2000", "Perdesaan", "99"},
			{"2001", "Perdesaan", "20"},
			{"2002", "Perdesaan", "18"},
			{"2001", "Perkotaan", "12"},
			{"2002", "Perkotaan", "10"},
		})
	index := models.NewTable(models.DatasetPovertyIndex,
		[]string{"tahun", "bps_nama_kabupaten_kota", "indeks_kedalaman", "indeks_keparahan_kemiskinan"},
		[][]string{
			{"2021", "Kota Sabang", "2", "0.4"},
			{"2021", "Kabupaten Pidie", "4", "1.2"},
			{"2022", "Kota Sabang", "3", "0.6"},
			{"2022", "Kabupaten Pidie", "3", "1.0"},
			{"2023", "Kota Sabang", "2", "0.5"},
			{"2023", "Kabupaten Pidie", "2", "0.8"},
		})
	line := models.NewTable(models.DatasetPovertyLine,
		[]string{"tahun", "bps_nama_kabupaten_kota", "garis_kemiskinan"},
		[][]string{
			{"2021", "Kota Sabang", "500000"},
			{"2021", "Kabupaten Pidie", "450000"},
			{"2022", "Kota Sabang", "520000"},
			{"2022", "Kabupaten Pidie", "470000"},
			{"2023", "Kabupaten Pidie", "490000"},
			{"2023", "Kota Sabang", "540000"},
		})
	return &models.Datasets{
		PovertyCount: countTable(),
		PovertyShare: share,
		PovertyIndex: index,
		PovertyLine:  line,
	}
}

func newTestDashboard() *Dashboard {
	return NewDashboard(testDatasets(), NewFormatter("en"), newTestLogger())
}

func TestNormalizeDefaults(t *testing.T) {
	d := newTestDashboard()
	sel := d.Normalize(models.Selection{Page: 9, Chart: "nope", TopN: 7})
	if sel.Page != models.PagePoorPopulation {
		t.Errorf("page: got %v", sel.Page)
	}
	if sel.Chart != models.ChartPoorPopulation {
		t.Errorf("chart: got %v", sel.Chart)
	}
	if sel.TopN != 3 {
		t.Errorf("top: got %d, want 3", sel.TopN)
	}

	sel = d.Normalize(models.Selection{Page: models.PagePovertyLine, Year: 1999})
	if sel.Chart != models.ChartPovertyLine {
		t.Errorf("chart: got %v", sel.Chart)
	}
	if sel.Year != 2023 {
		t.Errorf("year: got %d, want latest 2023", sel.Year)
	}

	sel = d.Normalize(models.Selection{Page: models.PagePovertyLine, Year: 2022})
	if sel.Year != 2022 {
		t.Errorf("year: got %d, want 2022 kept", sel.Year)
	}
}

func TestNormalizeSelectAllExpandsAndDedupes(t *testing.T) {
	d := newTestDashboard()
	sel := d.Normalize(models.Selection{
		Page:      models.PagePovertyLine,
		Regencies: []string{"Kota Sabang", models.SelectAll, "Kota Sabang", ""},
	})
	if len(sel.Regencies) != 23 {
		t.Fatalf("got %d regencies, want 23", len(sel.Regencies))
	}
	if sel.Regencies[0] != "Kota Sabang" {
		t.Errorf("first regency: got %q, want selection order kept", sel.Regencies[0])
	}
}

func TestRenderPopulation(t *testing.T) {
	d := newTestDashboard()
	v, err := d.Render(models.Selection{Page: models.PagePoorPopulation, Chart: models.ChartPoorPopulation, TopN: 3})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(v.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(v.Sections))
	}

	trend := v.Section(SectionTrend)
	if trend == nil || trend.Chart == nil {
		t.Fatal("trend section has no chart")
	}
	if len(trend.Chart.Series) != 2 {
		t.Fatalf("trend series: got %d, want actual and predicted", len(trend.Chart.Series))
	}
	actual, predicted := trend.Chart.Series[0], trend.Chart.Series[1]
	if actual.Name != "Actual" || predicted.Name != "Predicted" || !predicted.Predicted {
		t.Errorf("series names: %q, %q", actual.Name, predicted.Name)
	}
	if len(predicted.Points) != 5 || predicted.Points[0].X != 2022 || predicted.Points[4].X != 2026 {
		t.Errorf("predicted points: %+v", predicted.Points)
	}
	if trend.Chart.Divider == nil || *trend.Chart.Divider != 2021.5 {
		t.Errorf("divider: %v", trend.Chart.Divider)
	}
	if got := actual.Points[0].Hover[1]; got != "Jumlah Penduduk: 165.00 ribu jiwa" {
		t.Errorf("hover: got %q", got)
	}

	regency := v.Section(SectionRegency)
	if regency == nil || len(regency.Chart.Series) != 3 {
		t.Fatalf("regency section: %+v", regency)
	}
	if regency.Chart.Series[0].Name != "Kabupaten Aceh Utara" {
		t.Errorf("top regency: got %q", regency.Chart.Series[0].Name)
	}

	forecast := v.Section(SectionForecast)
	if forecast == nil || forecast.Chart == nil || len(forecast.Chart.Series) != 1 {
		t.Fatalf("forecast section: %+v", forecast)
	}
}

func TestRenderPopulationTopN(t *testing.T) {
	d := newTestDashboard()
	for _, n := range []int{3, 5, 10, 0} {
		v, err := d.Render(models.Selection{Page: models.PagePoorPopulation, TopN: n})
		if err != nil {
			t.Fatalf("render top %d: %v", n, err)
		}
		// The fixture has three regencies.
		if got := len(v.Section(SectionRegency).Chart.Series); got != 3 {
			t.Errorf("top %d: got %d series", n, got)
		}
	}
}

func TestRenderAreaShare(t *testing.T) {
	d := newTestDashboard()
	v, err := d.Render(models.Selection{Page: models.PagePoorPopulation, Chart: models.ChartAreaShare})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := v.Section(SectionShare)
	if s == nil || s.Chart.Kind != models.ChartPie {
		t.Fatalf("share section: %+v", s)
	}
	pts := s.Chart.Series[0].Points
	if len(pts) != 2 {
		t.Fatalf("got %d slices, want 2", len(pts))
	}
	// 2000 is outside the averaging window.
	if pts[0].Label != "Perdesaan" || pts[0].Y != 19 {
		t.Errorf("rural slice: %+v", pts[0])
	}
	if pts[1].Label != "Perkotaan" || pts[1].Y != 11 {
		t.Errorf("urban slice: %+v", pts[1])
	}
}

func TestRenderIndex(t *testing.T) {
	d := newTestDashboard()
	v, err := d.Render(models.Selection{Page: models.PagePovertyIndex, TopN: 0})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	trend := v.Section(SectionTrend)
	if len(trend.Chart.Series) != 4 {
		t.Fatalf("got %d series, want 4", len(trend.Chart.Series))
	}
	if trend.Chart.Series[0].Name != "Indeks Kedalaman (2021-2023)" {
		t.Errorf("series name: %q", trend.Chart.Series[0].Name)
	}
	if trend.Chart.Series[2].Name != "Indeks Kedalaman (Prediksi 2024-2028)" {
		t.Errorf("series name: %q", trend.Chart.Series[2].Name)
	}
	if *trend.Chart.Divider != 2023.5 {
		t.Errorf("divider: %v", *trend.Chart.Divider)
	}
	// Depth means: 3, 3, 2. The 2023 change is -33.33%.
	if got := trend.Chart.Series[0].Points[2].Hover[2]; got != "Perubahan: -33.33%" {
		t.Errorf("change hover: got %q", got)
	}

	regency := v.Section(SectionRegency)
	if regency.Chart.Series[0].Name != "Kabupaten Pidie" {
		t.Errorf("most severe regency: got %q", regency.Chart.Series[0].Name)
	}
	if len(v.Section(SectionForecast).Chart.Series) != 2 {
		t.Error("forecast chart should hold both indices")
	}
}

func TestRenderPovertyLine(t *testing.T) {
	d := newTestDashboard()
	v, err := d.Render(models.Selection{
		Page:      models.PagePovertyLine,
		Year:      2023,
		Regencies: []string{"Kota Sabang", "Kabupaten Simeulue"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	bars := v.Section(SectionByYear).Chart
	if bars.Kind != models.ChartBar || len(bars.Series[0].Points) != 2 {
		t.Fatalf("bar chart: %+v", bars)
	}
	if bars.Series[0].Points[0].Label != "Kabupaten Pidie" {
		t.Errorf("bars should keep file order, got %q first", bars.Series[0].Points[0].Label)
	}
	if got := bars.Series[0].Points[0].Hover[1]; got != "Garis Kemiskinan: Rp490,000" {
		t.Errorf("hover: got %q", got)
	}

	forecast := v.Section(SectionForecast)
	if forecast.Chart == nil || len(forecast.Chart.Series) != 1 {
		t.Fatalf("forecast: %+v", forecast)
	}
	if len(forecast.Warnings) != 1 || forecast.Warnings[0] != "Tidak ada data untuk Kabupaten Simeulue" {
		t.Errorf("warnings: %v", forecast.Warnings)
	}
	pts := forecast.Chart.Series[0].Points
	// Sabang rises 20000 a year.
	if len(pts) != 5 || !almostEqual(pts[0].Y, 560000) || !almostEqual(pts[4].Y, 640000) {
		t.Errorf("sabang forecast: %+v", pts)
	}
}

func TestRenderPovertyLineWithoutRegencies(t *testing.T) {
	d := newTestDashboard()
	v, err := d.Render(models.Selection{Page: models.PagePovertyLine})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	forecast := v.Section(SectionForecast)
	if forecast.Chart != nil {
		t.Error("expected no chart without regencies")
	}
	if !strings.HasPrefix(forecast.Prompt, "Silakan pilih") {
		t.Errorf("prompt: %q", forecast.Prompt)
	}
}

func TestRenderMissingDataset(t *testing.T) {
	d := NewDashboard(&models.Datasets{}, NewFormatter("id"), newTestLogger())
	if _, err := d.Render(models.Selection{Page: models.PagePovertyIndex}); err == nil {
		t.Fatal("expected error for unloaded dataset")
	}
}

func TestControls(t *testing.T) {
	d := newTestDashboard()
	c, err := d.Controls(models.Selection{Page: models.PagePovertyLine, Regencies: []string{"Kota Langsa"}})
	if err != nil {
		t.Fatalf("controls: %v", err)
	}
	if len(c.Pages) != 3 || !c.Pages[2].Selected {
		t.Errorf("pages: %+v", c.Pages)
	}
	if len(c.Years) != 3 || !c.Years[2].Selected {
		t.Errorf("years: %+v", c.Years)
	}
	if len(c.Regencies) != 24 || c.Regencies[0].Value != models.SelectAll {
		t.Fatalf("regencies: %d options", len(c.Regencies))
	}
	for _, o := range c.Regencies {
		if o.Selected != (o.Value == "Kota Langsa") {
			t.Errorf("%s selected=%v", o.Value, o.Selected)
		}
	}
	if c.TopN != nil {
		t.Error("poverty line page has no top-N selector")
	}
}

func TestAllSelections(t *testing.T) {
	d := newTestDashboard()
	sels := d.AllSelections()
	if len(sels) != 4 {
		t.Fatalf("got %d selections, want one per chart", len(sels))
	}
	for _, sel := range sels {
		if _, err := d.Render(sel); err != nil {
			t.Errorf("render %s: %v", sel.Chart, err)
		}
	}
}
