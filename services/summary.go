package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"aceh-poverty-dashboard/models"
	"aceh-poverty-dashboard/utils"
)

type SummaryService struct {
	logger *utils.Logger
}

func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{logger: logger.With("summary")}
}

// Generate summarises every loaded table. numeric lists, per dataset, the
// columns to compute statistics for.
func (s *SummaryService) Generate(data *models.Datasets, numeric map[models.DatasetName][]string) *models.SummaryReport {
	report := &models.SummaryReport{}
	for _, t := range data.All() {
		ds := s.summarise(t, numeric[t.Name])
		report.TotalRows += ds.Rows
		report.Datasets = append(report.Datasets, ds)
	}
	return report
}

func (s *SummaryService) summarise(t *models.Table, numeric []string) models.DatasetSummary {
	ds := models.DatasetSummary{Name: t.Name, Rows: t.Len(), Columns: t.Columns}

	if years, err := Years(t); err == nil && len(years) > 0 {
		ds.FirstYear, ds.LastYear = years[0], years[len(years)-1]
	}

	if rc, err := t.Col(models.ColRegency); err == nil {
		counts := make(map[string]int)
		for _, row := range t.Rows {
			if row[rc] != "" {
				counts[row[rc]]++
			}
		}
		ds.Regencies = len(counts)
		for k, n := range counts {
			ds.TopRegencies = append(ds.TopRegencies, models.GroupCount{Key: k, Count: n})
		}
		sort.Slice(ds.TopRegencies, func(i, j int) bool {
			if ds.TopRegencies[i].Count != ds.TopRegencies[j].Count {
				return ds.TopRegencies[i].Count > ds.TopRegencies[j].Count
			}
			return ds.TopRegencies[i].Key < ds.TopRegencies[j].Key
		})
		if len(ds.TopRegencies) > 5 {
			ds.TopRegencies = ds.TopRegencies[:5]
		}
	}

	for _, col := range numeric {
		c, err := t.Col(col)
		if err != nil {
			s.logger.Warn("%v", err)
			continue
		}
		st := models.ColumnStats{Column: col}
		var vals []float64
		for i := range t.Rows {
			v, ok := t.Float(i, c)
			if !ok {
				st.Blank++
				continue
			}
			vals = append(vals, v)
		}
		st.Count = len(vals)
		if len(vals) > 0 {
			st.Min = round2(floats.Min(vals))
			st.Max = round2(floats.Max(vals))
			st.Mean = round2(stat.Mean(vals, nil))
		}
		ds.Stats = append(ds.Stats, st)
	}
	return ds
}

// Print writes the report in the terminal style of the other CLI output.
func (s *SummaryService) Print(w io.Writer, r *models.SummaryReport) {
	sep := strings.Repeat("═", 64)
	thin := strings.Repeat("─", 64)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 ACEH POVERTY DATASETS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Datasets loaded : \033[1m%d\033[0m\n", len(r.Datasets))
	fmt.Fprintf(w, "  Total rows      : \033[1m%d\033[0m\n", r.TotalRows)
	fmt.Fprintln(w)

	for _, ds := range r.Datasets {
		fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", ds.Name)
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  Rows       : \033[1m%d\033[0m\n", ds.Rows)
		fmt.Fprintf(w, "  Columns    : %s\n", truncate(strings.Join(ds.Columns, ", "), 60))
		if ds.FirstYear != 0 {
			fmt.Fprintf(w, "  Years      : %d-%d\n", ds.FirstYear, ds.LastYear)
		}
		if ds.Regencies > 0 {
			fmt.Fprintf(w, "  Regencies  : %d\n", ds.Regencies)
		}

		for _, st := range ds.Stats {
			if st.Count == 0 {
				fmt.Fprintf(w, "  %-36s no numeric data\n", truncate(st.Column, 34))
				continue
			}
			fmt.Fprintf(w, "  %-36s min \033[1;32m%.2f\033[0m  mean \033[1;32m%.2f\033[0m  max \033[1;32m%.2f\033[0m",
				truncate(st.Column, 34), st.Min, st.Mean, st.Max)
			if st.Blank > 0 {
				fmt.Fprintf(w, "  \033[1;31m(%d blank)\033[0m", st.Blank)
			}
			fmt.Fprintln(w)
		}

		for _, g := range ds.TopRegencies {
			bar := strings.Repeat("█", min(g.Count, 30))
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(g.Key, 28), bar, g.Count)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	if f < 0 {
		return -round2(-f)
	}
	return float64(int64(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
