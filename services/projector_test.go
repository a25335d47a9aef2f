package services

import (
	"errors"
	"math"
	"testing"

	"aceh-poverty-dashboard/models"
)

func series(label string, pts ...float64) models.Series {
	s := models.Series{Label: label}
	for i := 0; i+1 < len(pts); i += 2 {
		s.Observations = append(s.Observations, models.Observation{Year: int(pts[i]), Value: pts[i+1]})
	}
	return s
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestFitThreePoints(t *testing.T) {
	m, err := Fit(series("jumlah", 2018, 100, 2019, 110, 2020, 120))
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if !almostEqual(m.Slope, 10) {
		t.Errorf("slope: got %v, want 10", m.Slope)
	}
	if !almostEqual(m.Intercept, -20080) {
		t.Errorf("intercept: got %v, want -20080", m.Intercept)
	}

	p := Project(m, []int{2021, 2022})
	want := []models.ProjectedPoint{{Year: 2021, Value: 130}, {Year: 2022, Value: 140}}
	if len(p) != len(want) {
		t.Fatalf("len: got %d, want %d", len(p), len(want))
	}
	for i := range want {
		if p[i].Year != want[i].Year || !almostEqual(p[i].Value, want[i].Value) {
			t.Errorf("point %d: got %+v, want %+v", i, p[i], want[i])
		}
	}
}

func TestFitMatchesClosedFormOLS(t *testing.T) {
	s := series("garis", 2010, 301250, 2012, 330010, 2013, 352987, 2016, 401120, 2019, 470333, 2023, 590112)

	// slope = Sxy/Sxx, intercept = ybar - slope*xbar
	var xbar, ybar float64
	for _, o := range s.Observations {
		xbar += float64(o.Year)
		ybar += o.Value
	}
	n := float64(s.Len())
	xbar /= n
	ybar /= n
	var sxy, sxx float64
	for _, o := range s.Observations {
		dx := float64(o.Year) - xbar
		sxy += dx * (o.Value - ybar)
		sxx += dx * dx
	}
	slope := sxy / sxx
	intercept := ybar - slope*xbar

	m, err := Fit(s)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	years := make([]int, 0, s.Len())
	for _, o := range s.Observations {
		years = append(years, o.Year)
	}
	for _, pt := range Project(m, years) {
		want := slope*float64(pt.Year) + intercept
		if !almostEqual(pt.Value, want) {
			t.Errorf("year %d: got %v, want %v", pt.Year, pt.Value, want)
		}
	}
}

func TestFitEmptySeries(t *testing.T) {
	_, err := Fit(models.Series{Label: "Kota Sabang"})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	var ide *InsufficientDataError
	if !errors.As(err, &ide) || ide.Label != "Kota Sabang" {
		t.Errorf("expected InsufficientDataError for Kota Sabang, got %#v", err)
	}

	if _, err := FitAndProject(models.Series{}, []int{2024}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("FitAndProject: expected ErrInsufficientData, got %v", err)
	}
}

func TestFitSinglePointIsConstant(t *testing.T) {
	p, err := FitAndProject(series("tunggal", 2020, 500000), []int{2021})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if len(p) != 1 || p[0].Year != 2021 || p[0].Value != 500000 {
		t.Errorf("got %+v, want [(2021, 500000)]", p)
	}
}

func TestFitConstantSeries(t *testing.T) {
	m, err := Fit(series("datar", 2019, 5.5, 2020, 5.5, 2021, 5.5, 2022, 5.5))
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if m.Slope != 0 {
		t.Errorf("slope: got %v, want 0", m.Slope)
	}
	if !almostEqual(m.Intercept, 5.5) {
		t.Errorf("intercept: got %v, want 5.5", m.Intercept)
	}
	for _, pt := range Project(m, []int{2030, 2050}) {
		if !almostEqual(pt.Value, 5.5) {
			t.Errorf("year %d: got %v, want 5.5", pt.Year, pt.Value)
		}
	}
}

func TestFitRepeatedYearIsMean(t *testing.T) {
	m, err := Fit(series("ganda", 2020, 10, 2020, 20))
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if m.Slope != 0 || !almostEqual(m.Intercept, 15) {
		t.Errorf("got %+v, want slope 0 intercept 15", m)
	}
}

func TestProjectOrderPreservingAndDeterministic(t *testing.T) {
	m := models.TrendModel{Slope: -0.137, Intercept: 281.9}
	years := []int{2028, 2024, 2026, 1990, 2024}

	all := Project(m, years)
	if len(all) != len(years) {
		t.Fatalf("len: got %d, want %d", len(all), len(years))
	}
	for i, y := range years {
		single := Project(m, []int{y})
		if all[i] != single[0] {
			t.Errorf("index %d: batch %+v != single %+v", i, all[i], single[0])
		}
	}

	again := Project(m, years)
	for i := range all {
		if math.Float64bits(all[i].Value) != math.Float64bits(again[i].Value) {
			t.Errorf("index %d: not bit-identical across calls", i)
		}
	}

	if got := Project(m, nil); len(got) != 0 {
		t.Errorf("empty years: got %v", got)
	}
}
