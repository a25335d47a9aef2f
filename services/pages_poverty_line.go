package services

import (
	"errors"
	"fmt"

	"aceh-poverty-dashboard/models"
)

const labelPovertyLine = "Garis Kemiskinan (Rp)"

func (d *Dashboard) povertyLineSections(sel models.Selection) ([]models.Section, error) {
	t, err := d.table(models.DatasetPovertyLine)
	if err != nil {
		return nil, err
	}

	byYearSection, err := d.povertyLineYearSection(t, sel.Year)
	if err != nil {
		return nil, err
	}
	forecast, err := d.povertyLineForecastSection(t, sel.Regencies)
	if err != nil {
		return nil, err
	}
	return []models.Section{byYearSection, forecast}, nil
}

// povertyLineYearSection plots one bar per row of the selected year, in file order.
func (d *Dashboard) povertyLineYearSection(t *models.Table, year int) (models.Section, error) {
	sub, err := FilterYear(t, year)
	if err != nil {
		return models.Section{}, err
	}
	rc, err := sub.Col(models.ColRegency)
	if err != nil {
		return models.Section{}, err
	}
	vc, err := sub.Col(models.ColPovertyLineValue)
	if err != nil {
		return models.Section{}, err
	}

	series := models.ChartSeries{Name: fmt.Sprintf("Garis Kemiskinan %d", year)}
	for i, row := range sub.Rows {
		v, ok := sub.Float(i, vc)
		if !ok {
			continue
		}
		series.Points = append(series.Points, models.Point{
			Label: row[rc],
			Y:     v,
			Hover: []string{
				fmt.Sprintf("%s: %s", labelRegency, row[rc]),
				fmt.Sprintf("Garis Kemiskinan: %s", d.format.Rupiah(v)),
			},
		})
	}

	heading := fmt.Sprintf("Garis Kemiskinan per Kabupaten/Kota pada Tahun %d", year)
	section := models.Section{
		ID:      SectionByYear,
		Heading: heading,
		Chart: &models.Chart{
			Kind:   models.ChartBar,
			Title:  heading,
			XLabel: labelRegency,
			YLabel: labelPovertyLine,
			Series: []models.ChartSeries{series},
		},
		Narrative: narrativePovertyLineYear,
	}
	if len(series.Points) == 0 {
		section.Warnings = append(section.Warnings, fmt.Sprintf("Tidak ada data garis kemiskinan untuk tahun %d", year))
	}
	return section, nil
}

// povertyLineForecastSection fits each selected regency on its own rows. A
// regency without rows is reported and skipped; the others still render.
func (d *Dashboard) povertyLineForecastSection(t *models.Table, regencies []string) (models.Section, error) {
	horizon := fmt.Sprintf("%d-%d", first(povertyLineForecastYears), last(povertyLineForecastYears))
	section := models.Section{
		ID:        SectionForecast,
		Heading:   fmt.Sprintf("Prediksi Garis Kemiskinan per Kabupaten/Kota (%s)", horizon),
		Narrative: narrativePovertyLineForecast,
	}
	if len(regencies) == 0 {
		section.Prompt = promptSelectRegency
		return section, nil
	}

	chart := &models.Chart{
		Kind:        models.ChartLine,
		Title:       fmt.Sprintf("Prediksi Garis Kemiskinan %s", horizon),
		XLabel:      labelYear,
		YLabel:      labelPovertyLine,
		LegendTitle: labelRegency,
	}
	for _, name := range regencies {
		s, err := RegencySeries(t, name, models.ColPovertyLineValue, Mean)
		if err != nil {
			return models.Section{}, err
		}
		proj, err := FitAndProject(s, povertyLineForecastYears)
		if errors.Is(err, ErrInsufficientData) {
			d.logger.Warn("No poverty line rows for %s, skipping forecast", name)
			section.Warnings = append(section.Warnings, fmt.Sprintf(warnNoRegencyData, name))
			continue
		}
		if err != nil {
			return models.Section{}, err
		}

		cs := models.ChartSeries{Name: name, Predicted: true}
		for _, p := range proj {
			cs.Points = append(cs.Points, yearPoint(p.Year, p.Value,
				fmt.Sprintf("%s: %s", labelRegency, name),
				fmt.Sprintf("%s: %d", labelYear, p.Year),
				fmt.Sprintf("Prediksi Garis Kemiskinan: %s", d.format.Rupiah(p.Value)),
			))
		}
		chart.Series = append(chart.Series, cs)
	}
	if len(chart.Series) > 0 {
		section.Chart = chart
	}
	return section, nil
}
