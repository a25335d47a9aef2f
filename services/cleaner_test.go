package services

import (
	"io"
	"strings"
	"testing"

	"aceh-poverty-dashboard/models"
	"aceh-poverty-dashboard/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, utils.LevelDebug) }

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"880.52", 880.52, true},
		{"15,43", 15.43, true},
		{"1.234.567", 1234567, true},
		{"1,234,567.5", 1234567.5, true},
		{"Rp528.120,00", 528120, true},
		{"12 %", 12, true},
		{"2020", 2020, true},
		{"", 0, false},
		{"-", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumeric(tt.raw)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseNumeric(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCleanerCoercesAndDrops(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := models.NewTable(models.DatasetPovertyIndex,
		[]string{"tahun", "bps_nama_kabupaten_kota", "indeks_kedalaman", "indeks_keparahan_kemiskinan"},
		[][]string{
			{"2020", "  Kabupaten   Pidie ", "3,12", "0.81"},
			{"tahun?", "Kota Sabang", "1.1", "0.2"},
			{"2021.0", "Kota Sabang", "-", "0.3"},
		})

	cleaned, err := c.Clean(raw, []string{"indeks_kedalaman", "indeks_keparahan_kemiskinan"})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if cleaned.Len() != 2 {
		t.Fatalf("rows: got %d, want 2", cleaned.Len())
	}
	if got := cleaned.Rows[0][1]; got != "Kabupaten Pidie" {
		t.Errorf("regency not normalised: %q", got)
	}
	if got := cleaned.Rows[0][2]; got != "3.12" {
		t.Errorf("depth: got %q, want 3.12", got)
	}
	if got := cleaned.Rows[1][0]; got != "2021" {
		t.Errorf("year: got %q, want 2021", got)
	}
	if got := cleaned.Rows[1][2]; got != "" {
		t.Errorf("unparsable depth should be blank, got %q", got)
	}
	if raw.Rows[0][2] != "3,12" {
		t.Error("Clean must not modify its input")
	}
}

func TestCleanerMissingColumns(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := models.NewTable(models.DatasetPovertyLine,
		[]string{"tahun", "bps_nama_kabupaten_kota"},
		[][]string{{"2020", "Kota Langsa"}})

	_, err := c.Clean(raw, []string{"garis_kemiskinan"})
	if err == nil || !strings.Contains(err.Error(), "garis_kemiskinan") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}
