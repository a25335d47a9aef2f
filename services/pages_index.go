package services

import (
	"fmt"

	"aceh-poverty-dashboard/models"
)

const (
	labelDepth    = "Indeks Kedalaman"
	labelSeverity = "Indeks Keparahan"
	labelIndex    = "Nilai Indeks"
)

func (d *Dashboard) indexSections(sel models.Selection) ([]models.Section, error) {
	t, err := d.table(models.DatasetPovertyIndex)
	if err != nil {
		return nil, err
	}

	depth, err := SeriesByYear(t, models.ColDepthIndex, Mean)
	if err != nil {
		return nil, err
	}
	severity, err := SeriesByYear(t, models.ColSeverityIndex, Mean)
	if err != nil {
		return nil, err
	}

	span := "tanpa data"
	if depth.Len() > 0 {
		span = fmt.Sprintf("%d-%d", depth.Observations[0].Year, depth.LastYear())
	}
	horizon := fmt.Sprintf("%d-%d", first(indexForecastYears), last(indexForecastYears))

	trend := models.Section{
		ID:        SectionTrend,
		Heading:   fmt.Sprintf("Indeks Kedalaman dan Keparahan Kemiskinan (%s) dan Prediksi (%s)", span, horizon),
		Narrative: narrativeIndexTrend,
	}
	trendChart := &models.Chart{
		Kind:        models.ChartLine,
		Title:       trend.Heading,
		XLabel:      labelYear,
		YLabel:      labelIndex,
		LegendTitle: "Indeks",
		Series: []models.ChartSeries{
			d.indexActual(fmt.Sprintf("%s (%s)", labelDepth, span), labelDepth, depth),
			d.indexActual(fmt.Sprintf("%s (%s)", labelSeverity, span), labelSeverity, severity),
		},
	}
	forecast := models.Section{
		ID:        SectionForecast,
		Heading:   fmt.Sprintf("Prediksi Indeks Kedalaman dan Keparahan Kemiskinan (%s)", horizon),
		Narrative: narrativeIndexForecast,
	}

	depthProj, severityProj, err := d.projectPair(depth, severity, indexForecastYears)
	if err != nil {
		trend.Warnings = append(trend.Warnings, err.Error())
		forecast.Warnings = append(forecast.Warnings, err.Error())
	} else {
		predicted := []models.ChartSeries{
			d.indexPredicted(fmt.Sprintf("%s (Prediksi %s)", labelDepth, horizon), labelDepth, depthProj),
			d.indexPredicted(fmt.Sprintf("%s (Prediksi %s)", labelSeverity, horizon), labelSeverity, severityProj),
		}
		trendChart.Series = append(trendChart.Series, predicted...)
		trendChart.Divider = dividerAfter(depth)
		forecast.Chart = &models.Chart{
			Kind:        models.ChartLine,
			Title:       forecast.Heading,
			XLabel:      labelYear,
			YLabel:      labelIndex,
			LegendTitle: "Indeks",
			Series:      predicted,
		}
	}
	trend.Chart = trendChart

	regency, err := d.indexRegencySection(t, sel.TopN)
	if err != nil {
		return nil, err
	}
	return []models.Section{trend, regency, forecast}, nil
}

func (d *Dashboard) indexActual(name, label string, s models.Series) models.ChartSeries {
	change := PercentChange(s.Values())
	cs := models.ChartSeries{Name: name}
	for i, o := range s.Observations {
		cs.Points = append(cs.Points, yearPoint(o.Year, o.Value,
			fmt.Sprintf("%s: %d", labelYear, o.Year),
			fmt.Sprintf("%s: %s", label, d.format.Decimal(o.Value, 2)),
			fmt.Sprintf("Perubahan: %s%%", d.format.Decimal(change[i], 2)),
		))
	}
	return cs
}

func (d *Dashboard) indexPredicted(name, label string, p models.Projection) models.ChartSeries {
	cs := models.ChartSeries{Name: name, Predicted: true}
	for _, pt := range p {
		cs.Points = append(cs.Points, yearPoint(pt.Year, pt.Value,
			fmt.Sprintf("%s: %d", labelYear, pt.Year),
			fmt.Sprintf("%s (prediksi): %s", label, d.format.Decimal(pt.Value, 2)),
		))
	}
	return cs
}

func (d *Dashboard) indexRegencySection(t *models.Table, topN int) (models.Section, error) {
	groups, err := GroupBy(t, models.ColRegency, models.ColSeverityIndex, Mean)
	if err != nil {
		return models.Section{}, err
	}
	top := TopN(groups, topN)

	chart := &models.Chart{
		Kind:        models.ChartLine,
		Title:       fmt.Sprintf("Indeks Kedalaman Kemiskinan per Kab/Kota (%s berdasarkan Indeks Keparahan)", models.TopNLabel(topN)),
		XLabel:      labelYear,
		YLabel:      labelDepth,
		LegendTitle: labelRegency,
	}
	for _, g := range top {
		depth, err := RegencySeries(t, g.Key, models.ColDepthIndex, Mean)
		if err != nil {
			return models.Section{}, err
		}
		severity, err := RegencySeries(t, g.Key, models.ColSeverityIndex, Mean)
		if err != nil {
			return models.Section{}, err
		}
		sev := byYear(severity)

		cs := models.ChartSeries{Name: g.Key}
		for _, o := range depth.Observations {
			hover := []string{
				fmt.Sprintf("%s: %s", labelRegency, g.Key),
				fmt.Sprintf("%s: %d", labelYear, o.Year),
				fmt.Sprintf("%s: %s", labelDepth, d.format.Decimal(o.Value, 2)),
			}
			if v, ok := sev[o.Year]; ok {
				hover = append(hover, fmt.Sprintf("%s: %s", labelSeverity, d.format.Decimal(v, 2)))
			}
			cs.Points = append(cs.Points, yearPoint(o.Year, o.Value, hover...))
		}
		chart.Series = append(chart.Series, cs)
	}

	return models.Section{
		ID:        SectionRegency,
		Heading:   "Indeks Kedalaman dan Keparahan Kemiskinan per Kab/Kota",
		Chart:     chart,
		Narrative: narrativeIndexRegency,
	}, nil
}
