package storage

import (
	"context"
	"errors"

	"aceh-poverty-dashboard/models"
)

// ErrUnknownDataset is returned when a source has no data for a dataset name.
var ErrUnknownDataset = errors.New("unknown dataset")

// TableSource is the interface any dataset backend must satisfy.
type TableSource interface {
	Load(ctx context.Context, spec models.DatasetSpec) (*models.Table, error)
}

// TableWriter is the interface for persisting tables and chart exports.
type TableWriter interface {
	WriteTable(t *models.Table) error
	Close() error
}
