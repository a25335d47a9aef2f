package services

import (
	"fmt"
	"strconv"

	"aceh-poverty-dashboard/models"
	"aceh-poverty-dashboard/utils"
)

// Forecast horizons, one per dataset.
var (
	populationForecastYears  = models.YearRange(2022, 2026)
	indexForecastYears       = models.YearRange(2024, 2028)
	povertyLineForecastYears = models.YearRange(2024, 2028)
)

// Section identifiers, shared by the web routes and exports.
const (
	SectionTrend    = "trend"
	SectionRegency  = "regency"
	SectionForecast = "forecast"
	SectionShare    = "share"
	SectionByYear   = "by-year"
)

// sectionBuilder renders every section of one chart option.
type sectionBuilder func(d *Dashboard, sel models.Selection) ([]models.Section, error)

// Dashboard turns sidebar selections into views over the loaded datasets.
// It holds no mutable state and is safe for concurrent use.
type Dashboard struct {
	data     *models.Datasets
	format   *Formatter
	logger   *utils.Logger
	builders map[models.ChartID]sectionBuilder
}

// NewDashboard creates a Dashboard over data, which must not be modified afterwards.
func NewDashboard(data *models.Datasets, format *Formatter, logger *utils.Logger) *Dashboard {
	return &Dashboard{
		data:   data,
		format: format,
		logger: logger.With("dashboard"),
		builders: map[models.ChartID]sectionBuilder{
			models.ChartPoorPopulation: (*Dashboard).populationSections,
			models.ChartAreaShare:      (*Dashboard).areaShareSections,
			models.ChartPovertyIndex:   (*Dashboard).indexSections,
			models.ChartPovertyLine:    (*Dashboard).povertyLineSections,
		},
	}
}

// Normalize replaces out-of-range parts of sel with their defaults: the first
// page, the first chart of the page, top 3, the latest year. "Select All"
// expands to every regency and duplicates are dropped.
func (d *Dashboard) Normalize(sel models.Selection) models.Selection {
	if !sel.Page.Valid() {
		sel.Page = models.PagePoorPopulation
	}
	if !sel.Page.HasChart(sel.Chart) {
		sel.Chart = sel.Page.Charts()[0]
	}

	validTop := false
	for _, o := range models.TopNOptions() {
		if o.N == sel.TopN {
			validTop = true
			break
		}
	}
	if !validTop {
		sel.TopN = models.TopNOptions()[0].N
	}

	if sel.Page == models.PagePovertyLine && d.data.PovertyLine != nil {
		years, err := Years(d.data.PovertyLine)
		if err == nil && len(years) > 0 && !containsInt(years, sel.Year) {
			sel.Year = years[len(years)-1]
		}
	}

	set := utils.NewNameSet()
	for _, r := range sel.Regencies {
		if r == models.SelectAll {
			for _, name := range models.AcehRegencies() {
				set.Add(name)
			}
			continue
		}
		if r != "" {
			set.Add(r)
		}
	}
	sel.Regencies = set.Names()
	return sel
}

// Render builds the view for sel after normalising it.
func (d *Dashboard) Render(sel models.Selection) (*models.View, error) {
	sel = d.Normalize(sel)
	build, ok := d.builders[sel.Chart]
	if !ok {
		return nil, fmt.Errorf("no builder for chart %q", sel.Chart)
	}

	sections, err := build(d, sel)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", sel.Chart, err)
	}
	d.logger.Debug("Rendered %s/%s with %d sections", sel.Page.Slug(), sel.Chart, len(sections))
	return &models.View{
		Title:     sel.Chart.Title(),
		Selection: sel,
		Sections:  sections,
	}, nil
}

// Controls returns the sidebar model for sel.
func (d *Dashboard) Controls(sel models.Selection) (*models.Controls, error) {
	sel = d.Normalize(sel)
	c := &models.Controls{}

	for _, p := range models.Pages() {
		c.Pages = append(c.Pages, models.Option{Value: p.Slug(), Label: p.Title(), Selected: p == sel.Page})
	}
	for _, id := range sel.Page.Charts() {
		c.Charts = append(c.Charts, models.Option{Value: string(id), Label: id.Title(), Selected: id == sel.Chart})
	}

	if sel.Chart == models.ChartPoorPopulation || sel.Chart == models.ChartPovertyIndex {
		for _, o := range models.TopNOptions() {
			c.TopN = append(c.TopN, models.Option{Value: strconv.Itoa(o.N), Label: o.Label, Selected: o.N == sel.TopN})
		}
	}

	if sel.Chart == models.ChartPovertyLine {
		years, err := Years(d.data.PovertyLine)
		if err != nil {
			return nil, err
		}
		for _, y := range years {
			c.Years = append(c.Years, models.Option{Value: strconv.Itoa(y), Label: strconv.Itoa(y), Selected: y == sel.Year})
		}
		selected := utils.NewNameSet(sel.Regencies...)
		c.Regencies = append(c.Regencies, models.Option{Value: models.SelectAll, Label: models.SelectAll})
		for _, name := range models.AcehRegencies() {
			c.Regencies = append(c.Regencies, models.Option{Value: name, Label: name, Selected: selected.Contains(name)})
		}
	}
	return c, nil
}

// AllSelections returns one selection per chart option, with every regency
// selected and no top-N limit. Exports and snapshots iterate over it.
func (d *Dashboard) AllSelections() []models.Selection {
	var out []models.Selection
	for _, p := range models.Pages() {
		for _, id := range p.Charts() {
			out = append(out, d.Normalize(models.Selection{
				Page:      p,
				Chart:     id,
				TopN:      0,
				Regencies: []string{models.SelectAll},
			}))
		}
	}
	return out
}

func (d *Dashboard) table(name models.DatasetName) (*models.Table, error) {
	t := d.data.Get(name)
	if t == nil {
		return nil, fmt.Errorf("dataset %s is not loaded", name)
	}
	return t, nil
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
