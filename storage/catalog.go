package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"aceh-poverty-dashboard/config"
	"aceh-poverty-dashboard/models"
	"aceh-poverty-dashboard/utils"
)

// TableCleaner normalises a freshly loaded table.
type TableCleaner interface {
	Clean(t *models.Table, numeric []string) (*models.Table, error)
}

// Specs returns the four dataset descriptions for cfg.
func Specs(cfg *config.Config) []models.DatasetSpec {
	return []models.DatasetSpec{
		{
			Name:      models.DatasetPovertyCount,
			Path:      cfg.PovertyCountFile,
			Delimiter: ',',
			Numeric:   []string{models.ColPoorPopulation, models.ColPoorPercentage},
		},
		{
			Name:      models.DatasetPovertyShare,
			Path:      cfg.PovertyShareFile,
			Delimiter: ';',
			Numeric:   []string{models.ColAreaPercentage},
		},
		{
			Name:      models.DatasetPovertyIndex,
			Path:      cfg.PovertyIndexFile,
			Delimiter: ',',
			Numeric:   []string{models.ColDepthIndex, models.ColSeverityIndex},
		},
		{
			Name:      models.DatasetPovertyLine,
			Path:      cfg.PovertyLineFile,
			Delimiter: ';',
			Numeric:   []string{models.ColPovertyLineValue},
		},
	}
}

// Catalog loads every dataset once and hands out the same read-only
// *models.Datasets afterwards. It is safe for concurrent use.
type Catalog struct {
	source  TableSource
	specs   []models.DatasetSpec
	cleaner TableCleaner
	workers int
	retry   *utils.RetryConfig
	logger  *utils.Logger

	once sync.Once
	data *models.Datasets
	err  error
}

// NewCatalog creates a Catalog. A nil cleaner keeps tables as read.
func NewCatalog(source TableSource, specs []models.DatasetSpec, cleaner TableCleaner, workers, maxRetries int, logger *utils.Logger) *Catalog {
	logger = logger.With("loader")
	return &Catalog{
		source:  source,
		specs:   specs,
		cleaner: cleaner,
		workers: workers,
		retry:   &utils.RetryConfig{MaxAttempts: maxRetries, BaseDelay: 500 * time.Millisecond, Logger: logger},
		logger:  logger,
	}
}

// Datasets loads the datasets on the first call. Later calls return the
// same result, including a failure.
func (c *Catalog) Datasets(ctx context.Context) (*models.Datasets, error) {
	c.once.Do(func() {
		c.data, c.err = c.load(ctx)
	})
	return c.data, c.err
}

func (c *Catalog) load(ctx context.Context) (*models.Datasets, error) {
	start := time.Now()
	pool := utils.NewWorkerPool(c.workers, 0)

	var mu sync.Mutex
	data := &models.Datasets{}

	for _, spec := range c.specs {
		spec := spec
		pool.Submit(func() error {
			t, err := c.loadOne(ctx, spec)
			if err != nil {
				return err
			}
			mu.Lock()
			data.Set(t)
			mu.Unlock()
			return nil
		})
	}

	if errs := pool.Wait(); len(errs) > 0 {
		for _, err := range errs {
			c.logger.Error("%v", err)
		}
		return nil, errors.Join(errs...)
	}
	c.logger.Info("Loaded %d datasets in %s", len(data.All()), time.Since(start).Round(time.Millisecond))
	return data, nil
}

func (c *Catalog) loadOne(ctx context.Context, spec models.DatasetSpec) (*models.Table, error) {
	var t *models.Table
	err := c.retry.Do(ctx, fmt.Sprintf("load %s", spec.Name), func() error {
		var err error
		t, err = c.source.Load(ctx, spec)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Read %s: %d rows, %d columns", spec.Name, t.Len(), len(t.Columns))

	if c.cleaner == nil {
		return t, nil
	}
	cleaned, err := c.cleaner.Clean(t, spec.Numeric)
	if err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", spec.Name, err)
	}
	return cleaned, nil
}
