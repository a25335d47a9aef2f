package storage

import (
	"fmt"

	"aceh-poverty-dashboard/models"
)

// WriteView writes one table per charted section of v, named
// <chart>_<section>.
func WriteView(w TableWriter, v *models.View) (int, error) {
	n := 0
	for _, s := range v.Sections {
		if s.Chart == nil || s.Chart.Empty() {
			continue
		}
		name := fmt.Sprintf("%s_%s", v.Selection.Chart, s.ID)
		if err := w.WriteTable(s.Chart.Table(name)); err != nil {
			return n, fmt.Errorf("export %s: %w", name, err)
		}
		n++
	}
	return n, nil
}
