package models

// ColumnStats holds the computed statistics of one numeric column.
type ColumnStats struct {
	Column string
	Count  int
	Blank  int
	Min    float64
	Max    float64
	Mean   float64
}

// DatasetSummary describes one loaded dataset.
type DatasetSummary struct {
	Name      DatasetName
	Rows      int
	Columns   []string
	FirstYear int
	LastYear  int
	Regencies int
	Stats     []ColumnStats
	// TopRegencies are the regencies with the most rows, capped at five.
	TopRegencies []GroupCount
}

// GroupCount is a key with its number of rows.
type GroupCount struct {
	Key   string
	Count int
}

// SummaryReport holds the computed overview over every dataset.
type SummaryReport struct {
	Datasets  []DatasetSummary
	TotalRows int
}
