package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"aceh-poverty-dashboard/models"
	"aceh-poverty-dashboard/services"
	"aceh-poverty-dashboard/utils"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	data := &models.Datasets{
		PovertyCount: models.NewTable(models.DatasetPovertyCount,
			[]string{"tahun", "bps_nama_kabupaten_kota", "bps_jumlah_penduduk", "persentase_jumlah_penduduk_miskin"},
			[][]string{
				{"2020", "Kota Sabang", "6", "13"},
				{"2021", "Kota Sabang", "7", "12"},
				{"2020", "Kabupaten Pidie", "60", "20"},
				{"2021", "Kabupaten Pidie", "70", "18"},
			}),
		PovertyShare: models.NewTable(models.DatasetPovertyShare,
			[]string{"tahun", "daerah", "persentase_penduduk_miskin"},
			[][]string{{"2001", "Perdesaan", "20"}, {"2001", "Perkotaan", "12"}}),
		PovertyIndex: models.NewTable(models.DatasetPovertyIndex,
			[]string{"tahun", "bps_nama_kabupaten_kota", "indeks_kedalaman", "indeks_keparahan_kemiskinan"},
			[][]string{{"2022", "Kota Sabang", "3", "0.6"}, {"2023", "Kota Sabang", "2", "0.5"}}),
		PovertyLine: models.NewTable(models.DatasetPovertyLine,
			[]string{"tahun", "bps_nama_kabupaten_kota", "garis_kemiskinan"},
			[][]string{{"2022", "Kota Sabang", "520000"}, {"2023", "Kota Sabang", "540000"}}),
	}
	logger := utils.NewLoggerTo(io.Discard, utils.LevelDebug)
	dash := services.NewDashboard(data, services.NewFormatter("id"), logger)
	srv, err := NewServer(dash, []string{"*"}, logger)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return resp, body
}

func TestIndexPage(t *testing.T) {
	ts := testServer(t)
	resp, body := get(t, ts, "/?page=garis-kemiskinan&regency=Kota+Sabang")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	html := string(body)
	for _, want := range []string{
		"Garis Kemiskinan per Kabupaten/Kota",
		`<iframe src="/charts/by-year?`,
		`<option value="Select All">`,
		`class="narrative"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexPromptWithoutRegencies(t *testing.T) {
	ts := testServer(t)
	_, body := get(t, ts, "/?page=3")
	if !strings.Contains(string(body), "Silakan pilih setidaknya satu kabupaten/kota") {
		t.Error("expected regency prompt")
	}
}

func TestBadQueryIs400(t *testing.T) {
	ts := testServer(t)
	for _, path := range []string{"/?top=abc", "/api/view?year=20x3", "/charts/trend?top=-1"} {
		resp, _ := get(t, ts, path)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", path, resp.StatusCode)
		}
	}
}

func TestViewJSON(t *testing.T) {
	ts := testServer(t)
	resp, body := get(t, ts, "/api/view?page=penduduk-miskin&top=all")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var view models.View
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Selection.TopN != 0 || len(view.Sections) != 3 {
		t.Errorf("unexpected view: %+v", view.Selection)
	}
	trend := view.Section("trend")
	if trend == nil || trend.Chart.Divider == nil || *trend.Chart.Divider != 2021.5 {
		t.Errorf("trend: %+v", trend)
	}
}

func TestControlsJSON(t *testing.T) {
	ts := testServer(t)
	_, body := get(t, ts, "/api/controls?page=indeks-kemiskinan")
	var c models.Controls
	if err := json.Unmarshal(body, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(c.Charts) != 1 || len(c.TopN) != 4 {
		t.Errorf("controls: %+v", c)
	}
}

func TestChartEndpoints(t *testing.T) {
	ts := testServer(t)

	resp, body := get(t, ts, "/charts/trend?page=indeks-kemiskinan")
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("html chart: %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), "echarts") {
		t.Error("html chart does not load echarts")
	}

	resp, body = get(t, ts, "/charts/by-year.png?page=garis-kemiskinan&year=2023")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("png chart: %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if !bytes.HasPrefix(body, []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}

	resp, _ = get(t, ts, "/charts/nope?page=1")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown section: status %d", resp.StatusCode)
	}
}

func TestExportWorkbook(t *testing.T) {
	ts := testServer(t)
	resp, body := get(t, ts, "/export.xlsx?page=indeks-kemiskinan")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if got := len(f.GetSheetList()); got != 3 {
		t.Errorf("sheets: got %d, want 3", got)
	}
}

func TestHealth(t *testing.T) {
	ts := testServer(t)
	resp, body := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "ok") {
		t.Errorf("health: %d %s", resp.StatusCode, body)
	}
}
