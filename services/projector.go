package services

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"aceh-poverty-dashboard/models"
)

// ErrInsufficientData is matched by every InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient data for trend fit")

// InsufficientDataError reports a series that cannot be fitted because it has
// no observations. Label names the metric or regency.
type InsufficientDataError struct {
	Label string
}

func (e *InsufficientDataError) Error() string {
	if e.Label == "" {
		return ErrInsufficientData.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientData, e.Label)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

// Fit returns the ordinary least-squares line through the series.
//
// A series with a single observation, or whose observations all share one
// year, has no defined slope. It is fitted as a constant: slope 0 and the
// mean value as intercept.
func Fit(series models.Series) (models.TrendModel, error) {
	if series.Len() == 0 {
		return models.TrendModel{}, &InsufficientDataError{Label: series.Label}
	}

	x := series.Years()
	y := series.Values()
	if !varies(x) {
		return models.TrendModel{Slope: 0, Intercept: stat.Mean(y, nil)}, nil
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return models.TrendModel{Slope: beta, Intercept: alpha}, nil
}

// Project evaluates model at each year, keeping the order of years.
func Project(model models.TrendModel, years []int) models.Projection {
	out := make(models.Projection, len(years))
	for i, y := range years {
		out[i] = models.ProjectedPoint{Year: y, Value: model.At(y)}
	}
	return out
}

// FitAndProject fits series and evaluates the line at years.
func FitAndProject(series models.Series, years []int) (models.Projection, error) {
	model, err := Fit(series)
	if err != nil {
		return nil, err
	}
	return Project(model, years), nil
}

func varies(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return true
		}
	}
	return false
}
