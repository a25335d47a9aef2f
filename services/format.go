package services

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders numbers for hover text in the dashboard locale.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a Formatter for a BCP 47 locale. Unparsable locales
// fall back to Indonesian.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Indonesian
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// Decimal formats v with exactly prec fraction digits and locale grouping.
func (f *Formatter) Decimal(v float64, prec int) string {
	return f.p.Sprintf(fmt.Sprintf("%%.%df", prec), v)
}

// Integer formats v rounded to a whole number with locale grouping.
func (f *Formatter) Integer(v float64) string {
	return f.p.Sprintf("%d", int64(math.Round(v)))
}

// Rupiah formats v as a whole rupiah amount, e.g. Rp528.120.
func (f *Formatter) Rupiah(v float64) string {
	return "Rp" + f.Integer(v)
}
