package services

import (
	"errors"
	"fmt"

	"aceh-poverty-dashboard/models"
)

const (
	labelYear       = "Tahun"
	labelRegency    = "Kabupaten/Kota"
	labelPopulation = "Jumlah Penduduk (Ribu Jiwa)"
)

func (d *Dashboard) populationSections(sel models.Selection) ([]models.Section, error) {
	t, err := d.table(models.DatasetPovertyCount)
	if err != nil {
		return nil, err
	}

	pop, err := SeriesByYear(t, models.ColPoorPopulation, Sum)
	if err != nil {
		return nil, err
	}
	pct, err := SeriesByYear(t, models.ColPoorPercentage, Mean)
	if err != nil {
		return nil, err
	}
	pctByYear := byYear(pct)

	trend := models.Section{
		ID:        SectionTrend,
		Heading:   models.ChartPoorPopulation.Title(),
		Narrative: narrativePopulationTrend,
	}
	forecast := models.Section{
		ID:        SectionForecast,
		Heading:   fmt.Sprintf("Prediksi Jumlah Penduduk Miskin dan Persentase di Aceh (%d-%d)", first(populationForecastYears), last(populationForecastYears)),
		Narrative: narrativePopulationForecast,
	}

	actual := models.ChartSeries{Name: "Actual"}
	for _, o := range pop.Observations {
		actual.Points = append(actual.Points, yearPoint(o.Year, o.Value, d.populationHover(o.Year, o.Value, pctByYear)...))
	}

	trendChart := &models.Chart{
		Kind:        models.ChartLine,
		Title:       fmt.Sprintf("Grafik Jumlah Penduduk Miskin dan Prediksi di Aceh (Hingga %d)", last(populationForecastYears)),
		XLabel:      labelYear,
		YLabel:      labelPopulation,
		LegendTitle: "Data Type",
		Series:      []models.ChartSeries{actual},
	}

	popProj, pctProj, err := d.projectPair(pop, pct, populationForecastYears)
	if err != nil {
		trend.Warnings = append(trend.Warnings, err.Error())
		forecast.Warnings = append(forecast.Warnings, err.Error())
	} else {
		predictedPct := make(map[int]float64, len(pctProj))
		for _, p := range pctProj {
			predictedPct[p.Year] = p.Value
		}
		predicted := models.ChartSeries{Name: "Predicted", Predicted: true}
		for _, p := range popProj {
			predicted.Points = append(predicted.Points, yearPoint(p.Year, p.Value, d.populationHover(p.Year, p.Value, predictedPct)...))
		}
		trendChart.Series = append(trendChart.Series, predicted)
		trendChart.Divider = dividerAfter(pop)

		forecast.Chart = &models.Chart{
			Kind:   models.ChartLine,
			Title:  forecast.Heading,
			XLabel: labelYear,
			YLabel: labelPopulation,
			Series: []models.ChartSeries{predicted},
		}
	}
	trend.Chart = trendChart

	regency, err := d.populationRegencySection(t, sel.TopN)
	if err != nil {
		return nil, err
	}
	return []models.Section{trend, regency, forecast}, nil
}

func (d *Dashboard) populationHover(year int, pop float64, pct map[int]float64) []string {
	hover := []string{
		fmt.Sprintf("%s: %d", labelYear, year),
		fmt.Sprintf("Jumlah Penduduk: %s ribu jiwa", d.format.Decimal(pop, 2)),
	}
	if v, ok := pct[year]; ok {
		hover = append(hover, fmt.Sprintf("Persentase Penduduk Miskin: %s%%", d.format.Decimal(v, 2)))
	}
	return hover
}

func (d *Dashboard) populationRegencySection(t *models.Table, topN int) (models.Section, error) {
	groups, err := GroupBy(t, models.ColRegency, models.ColPoorPopulation, Sum)
	if err != nil {
		return models.Section{}, err
	}
	top := TopN(groups, topN)

	chart := &models.Chart{
		Kind:        models.ChartLine,
		Title:       fmt.Sprintf("Grafik Jumlah Penduduk Miskin per Kab/Kota Berdasarkan Tahun (%s)", models.TopNLabel(topN)),
		XLabel:      labelYear,
		YLabel:      labelPopulation,
		LegendTitle: labelRegency,
	}
	for _, g := range top {
		s, err := RegencySeries(t, g.Key, models.ColPoorPopulation, Sum)
		if err != nil {
			return models.Section{}, err
		}
		cs := models.ChartSeries{Name: g.Key}
		for _, o := range s.Observations {
			cs.Points = append(cs.Points, yearPoint(o.Year, o.Value,
				fmt.Sprintf("%s: %s", labelRegency, g.Key),
				fmt.Sprintf("%s: %d", labelYear, o.Year),
				fmt.Sprintf("Jumlah Penduduk: %s ribu jiwa", d.format.Decimal(o.Value, 2)),
			))
		}
		chart.Series = append(chart.Series, cs)
	}

	return models.Section{
		ID:        SectionRegency,
		Heading:   "Jumlah Penduduk Miskin per Kab/Kota Tahun (2012-2021)",
		Chart:     chart,
		Narrative: narrativePopulationRegency,
	}, nil
}

func (d *Dashboard) areaShareSections(_ models.Selection) ([]models.Section, error) {
	t, err := d.table(models.DatasetPovertyShare)
	if err != nil {
		return nil, err
	}
	sub, err := FilterYears(t, 2001, 2022)
	if err != nil {
		return nil, err
	}
	groups, err := GroupBy(sub, models.ColArea, models.ColAreaPercentage, Mean)
	if err != nil {
		return nil, err
	}

	series := models.ChartSeries{Name: "Rata-rata Persentase Penduduk Miskin"}
	for _, g := range groups {
		series.Points = append(series.Points, models.Point{
			Label: g.Key,
			Y:     g.Value,
			Hover: []string{
				fmt.Sprintf("Daerah: %s", g.Key),
				fmt.Sprintf("Rata-rata Persentase Penduduk Miskin: %s", d.format.Decimal(g.Value, 2)),
			},
		})
	}

	section := models.Section{
		ID:      SectionShare,
		Heading: models.ChartAreaShare.Title(),
		Chart: &models.Chart{
			Kind:        models.ChartPie,
			Title:       models.ChartAreaShare.Title(),
			LegendTitle: "Daerah",
			Series:      []models.ChartSeries{series},
		},
		Narrative: narrativeAreaShare,
	}
	if len(groups) == 0 {
		section.Warnings = append(section.Warnings, "Tidak ada data persentase untuk periode 2001-2022")
	}
	return []models.Section{section}, nil
}

// projectPair fits and projects two metrics over the same years. An empty
// metric is reported as an InsufficientDataError naming it.
func (d *Dashboard) projectPair(a, b models.Series, years []int) (models.Projection, models.Projection, error) {
	pa, err := FitAndProject(a, years)
	if err != nil {
		return nil, nil, d.reportFit(err)
	}
	pb, err := FitAndProject(b, years)
	if err != nil {
		return nil, nil, d.reportFit(err)
	}
	return pa, pb, nil
}

func (d *Dashboard) reportFit(err error) error {
	if errors.Is(err, ErrInsufficientData) {
		d.logger.Warn("Skipping projection: %v", err)
	}
	return err
}

func yearPoint(year int, y float64, hover ...string) models.Point {
	return models.Point{X: float64(year), Y: y, Hover: hover}
}

func byYear(s models.Series) map[int]float64 {
	out := make(map[int]float64, s.Len())
	for _, o := range s.Observations {
		out[o.Year] = o.Value
	}
	return out
}

// dividerAfter places the actual/predicted separator half a year after the
// last observation.
func dividerAfter(s models.Series) *float64 {
	if s.Len() == 0 {
		return nil
	}
	x := float64(s.LastYear()) + 0.5
	return &x
}

func first(years []int) int { return years[0] }

func last(years []int) int { return years[len(years)-1] }
