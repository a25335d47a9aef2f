package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Page is a top-level dashboard page.
type Page int

const (
	PagePoorPopulation Page = iota + 1
	PagePovertyIndex
	PagePovertyLine
)

var pageTitles = map[Page]string{
	PagePoorPopulation: "Jumlah Penduduk Miskin",
	PagePovertyIndex:   "Indeks Kedalaman dan Keparahan Kemiskinan",
	PagePovertyLine:    "Garis Kemiskinan per Kabupaten/Kota pada Tahun Terpilih",
}

var pageSlugs = map[Page]string{
	PagePoorPopulation: "penduduk-miskin",
	PagePovertyIndex:   "indeks-kemiskinan",
	PagePovertyLine:    "garis-kemiskinan",
}

// Pages returns every page in sidebar order.
func Pages() []Page {
	return []Page{PagePoorPopulation, PagePovertyIndex, PagePovertyLine}
}

// Title is the sidebar label of the page.
func (p Page) Title() string { return pageTitles[p] }

// Slug is the URL value of the page.
func (p Page) Slug() string { return pageSlugs[p] }

// Valid reports whether p is one of the known pages.
func (p Page) Valid() bool {
	_, ok := pageTitles[p]
	return ok
}

// ParsePage accepts a slug or the page number.
func ParsePage(s string) (Page, bool) {
	s = strings.TrimSpace(s)
	for p, slug := range pageSlugs {
		if slug == s {
			return p, true
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Page(n).Valid() {
		return Page(n), true
	}
	return 0, false
}

// ChartID names a chart option within a page.
type ChartID string

const (
	ChartPoorPopulation ChartID = "jumlah-penduduk-miskin"
	ChartAreaShare      ChartID = "persentase-menurut-daerah"
	ChartPovertyIndex   ChartID = "indeks-kedalaman-keparahan"
	ChartPovertyLine    ChartID = "garis-kemiskinan"
)

var chartTitles = map[ChartID]string{
	ChartPoorPopulation: "Jumlah Penduduk Miskin Aceh Tahun (2012-2021)",
	ChartAreaShare:      "Rata-rata Persentase Penduduk Miskin Menurut Daerah di Provinsi Aceh (2001-2022)",
	ChartPovertyIndex:   "Indeks Kedalaman dan Keparahan Kemiskinan",
	ChartPovertyLine:    "Garis Kemiskinan per Kabupaten/Kota",
}

var pageCharts = map[Page][]ChartID{
	PagePoorPopulation: {ChartPoorPopulation, ChartAreaShare},
	PagePovertyIndex:   {ChartPovertyIndex},
	PagePovertyLine:    {ChartPovertyLine},
}

// Title is the selector label of the chart.
func (c ChartID) Title() string { return chartTitles[c] }

// Charts lists the chart options of the page in selector order.
func (p Page) Charts() []ChartID { return pageCharts[p] }

// HasChart reports whether c is offered on page p.
func (p Page) HasChart(c ChartID) bool {
	for _, id := range pageCharts[p] {
		if id == c {
			return true
		}
	}
	return false
}

// SelectAll is the multi-select entry that expands to every regency.
const SelectAll = "Select All"

// TopNOption is one entry of the "top regencies" selector. N == 0 means all.
type TopNOption struct {
	N     int    `json:"n"`
	Label string `json:"label"`
}

// TopNOptions returns the selector entries.
func TopNOptions() []TopNOption {
	return []TopNOption{
		{N: 3, Label: "3 Teratas"},
		{N: 5, Label: "5 Teratas"},
		{N: 10, Label: "10 Teratas"},
		{N: 0, Label: "Semua"},
	}
}

// TopNLabel returns the selector label for n.
func TopNLabel(n int) string {
	for _, o := range TopNOptions() {
		if o.N == n {
			return o.Label
		}
	}
	return strconv.Itoa(n) + " Teratas"
}

// Selection is the state of the sidebar controls for one request.
type Selection struct {
	Page      Page     `json:"page"`
	Chart     ChartID  `json:"chart"`
	TopN      int      `json:"top_n"`
	Year      int      `json:"year"`
	Regencies []string `json:"regencies"`
}

// Encode writes the selection as query parameters.
func (s Selection) Encode() string {
	q := url.Values{}
	q.Set("page", s.Page.Slug())
	q.Set("chart", string(s.Chart))
	q.Set("top", strconv.Itoa(s.TopN))
	if s.Year != 0 {
		q.Set("year", strconv.Itoa(s.Year))
	}
	for _, r := range s.Regencies {
		q.Add("regency", r)
	}
	return q.Encode()
}

// Section is one heading of a rendered page: a chart, narrative text, or a
// prompt shown instead of the chart.
type Section struct {
	ID        string   `json:"id"`
	Heading   string   `json:"heading"`
	Chart     *Chart   `json:"chart,omitempty"`
	Narrative string   `json:"narrative,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
	Prompt    string   `json:"prompt,omitempty"`
}

// View is a fully built page for a selection.
type View struct {
	Title     string    `json:"title"`
	Selection Selection `json:"selection"`
	Sections  []Section `json:"sections"`
}

// Section returns the section with id, or nil.
func (v *View) Section(id string) *Section {
	for i := range v.Sections {
		if v.Sections[i].ID == id {
			return &v.Sections[i]
		}
	}
	return nil
}

// Option is a selectable sidebar entry.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Controls is the sidebar model for a selection.
type Controls struct {
	Pages     []Option `json:"pages"`
	Charts    []Option `json:"charts"`
	TopN      []Option `json:"top_n,omitempty"`
	Years     []Option `json:"years,omitempty"`
	Regencies []Option `json:"regencies,omitempty"`
}
