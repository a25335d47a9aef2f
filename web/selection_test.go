package web

import (
	"net/http/httptest"
	"testing"

	"aceh-poverty-dashboard/models"
)

func TestParseSelection(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=garis-kemiskinan&year=2022&regency=Kota+Sabang&regency=Select+All&regency=", nil)
	sel, err := parseSelection(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sel.Page != models.PagePovertyLine || sel.Year != 2022 {
		t.Errorf("selection: %+v", sel)
	}
	if len(sel.Regencies) != 2 || sel.Regencies[1] != models.SelectAll {
		t.Errorf("regencies: %v", sel.Regencies)
	}
	if sel.TopN != -1 {
		t.Errorf("absent top should be left for defaulting, got %d", sel.TopN)
	}
}

func TestParseSelectionTop(t *testing.T) {
	tests := []struct {
		query string
		want  int
		bad   bool
	}{
		{"top=5", 5, false},
		{"top=Semua", 0, false},
		{"top=all", 0, false},
		{"top=x", 0, true},
		{"top=-3", 0, true},
		{"year=abc", 0, true},
	}
	for _, tt := range tests {
		sel, err := parseSelection(httptest.NewRequest("GET", "/?"+tt.query, nil))
		if (err != nil) != tt.bad {
			t.Errorf("%s: err = %v", tt.query, err)
			continue
		}
		if !tt.bad && sel.TopN != tt.want {
			t.Errorf("%s: top = %d, want %d", tt.query, sel.TopN, tt.want)
		}
	}
}

func TestSelectionQueryRoundTrip(t *testing.T) {
	sel := models.Selection{
		Page:      models.PagePovertyLine,
		Chart:     models.ChartPovertyLine,
		TopN:      3,
		Year:      2023,
		Regencies: []string{"Kota Sabang", "Kota Langsa"},
	}
	got, err := parseSelection(httptest.NewRequest("GET", "/?"+sel.Encode(), nil))
	if err != nil {
		t.Fatal(err)
	}
	if got.Page != sel.Page || got.Chart != sel.Chart || got.Year != sel.Year || len(got.Regencies) != 2 {
		t.Errorf("got %+v, want %+v", got, sel)
	}
}
