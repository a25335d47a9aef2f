package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"aceh-poverty-dashboard/models"
)

// parseSelection reads the sidebar state from the query string. Unknown pages
// and charts are left for the dashboard to default; malformed numbers are
// rejected.
func parseSelection(r *http.Request) (models.Selection, error) {
	q := r.URL.Query()
	var sel models.Selection

	if v := q.Get("page"); v != "" {
		if p, ok := models.ParsePage(v); ok {
			sel.Page = p
		}
	}
	sel.Chart = models.ChartID(strings.TrimSpace(q.Get("chart")))

	sel.TopN = -1
	switch v := strings.ToLower(strings.TrimSpace(q.Get("top"))); v {
	case "":
	case "all", "semua":
		sel.TopN = 0
	default:
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return sel, fmt.Errorf("invalid top %q", q.Get("top"))
		}
		sel.TopN = n
	}

	if v := strings.TrimSpace(q.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return sel, fmt.Errorf("invalid year %q", v)
		}
		sel.Year = y
	}

	for _, name := range q["regency"] {
		if name = strings.TrimSpace(name); name != "" {
			sel.Regencies = append(sel.Regencies, name)
		}
	}
	return sel, nil
}
