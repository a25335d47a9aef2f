// Package render turns renderer-independent charts into HTML or PNG.
package render

import (
	"errors"
	"io"

	"aceh-poverty-dashboard/models"
)

// ErrEmptyChart is returned for charts without any point.
var ErrEmptyChart = errors.New("chart has no data")

// Renderer writes a chart in one output format.
type Renderer interface {
	Render(w io.Writer, c *models.Chart) error
	ContentType() string
}

// predictedDash is the dash length, in points, of predicted series and the divider.
const predictedDash = 6
