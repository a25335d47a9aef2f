package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"aceh-poverty-dashboard/models"
	"aceh-poverty-dashboard/utils"
)

const insertBatchSize = 200

// PostgresStore keeps datasets in PostgreSQL as header arrays plus one
// TEXT[] row per record. The dashboard only reads from it; Import seeds it.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore opens a connection, pinging with retry until the server
// answers, and runs schema migrations.
func NewPostgresStore(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dataset_columns (
			dataset     TEXT        PRIMARY KEY,
			columns     TEXT[]      NOT NULL,
			imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS dataset_rows (
			id       SERIAL  PRIMARY KEY,
			dataset  TEXT    NOT NULL REFERENCES dataset_columns(dataset) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			cells    TEXT[]  NOT NULL,
			UNIQUE (dataset, position)
		);

		CREATE INDEX IF NOT EXISTS idx_dataset_rows_dataset ON dataset_rows(dataset);
	`)
	return err
}

// Load reads the dataset named by spec. Only spec.Name is used.
func (ps *PostgresStore) Load(ctx context.Context, spec models.DatasetSpec) (*models.Table, error) {
	var header struct {
		Columns pq.StringArray `db:"columns"`
	}
	err := ps.db.GetContext(ctx, &header,
		`SELECT columns FROM dataset_columns WHERE dataset = $1`, string(spec.Name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load dataset %q: %w", spec.Name, ErrUnknownDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", spec.Name, err)
	}

	var records []struct {
		Cells pq.StringArray `db:"cells"`
	}
	if err := ps.db.SelectContext(ctx, &records,
		`SELECT cells FROM dataset_rows WHERE dataset = $1 ORDER BY position`, string(spec.Name)); err != nil {
		return nil, fmt.Errorf("load dataset %q: rows: %w", spec.Name, err)
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string(r.Cells)
	}
	return models.NewTable(spec.Name, []string(header.Columns), rows), nil
}

// Import replaces the stored copy of t in a single transaction.
func (ps *PostgresStore) Import(ctx context.Context, t *models.Table) error {
	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_columns WHERE dataset = $1`, string(t.Name)); err != nil {
		return fmt.Errorf("postgres: clear %s: %w", t.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO dataset_columns (dataset, columns) VALUES ($1, $2)`,
		string(t.Name), pq.StringArray(t.Columns)); err != nil {
		return fmt.Errorf("postgres: insert columns of %s: %w", t.Name, err)
	}

	for i := 0; i < len(t.Rows); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		if err := insertBatch(ctx, tx, t.Name, i, t.Rows[i:end]); err != nil {
			return fmt.Errorf("postgres: insert rows of %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}

func insertBatch(ctx context.Context, tx *sqlx.Tx, name models.DatasetName, offset int, batch [][]string) error {
	args := make([]interface{}, 0, len(batch)*3)
	for i, row := range batch {
		args = append(args, string(name), offset+i, pq.StringArray(row))
	}
	_, err := tx.ExecContext(ctx, batchInsertQuery(len(batch)), args...)
	return err
}

// batchInsertQuery builds a multi-row insert for n rows.
func batchInsertQuery(n int) string {
	values := make([]string, n)
	for i := range values {
		base := i * 3
		values[i] = fmt.Sprintf("($%d,$%d,$%d)", base+1, base+2, base+3)
	}
	return "INSERT INTO dataset_rows (dataset, position, cells) VALUES " + strings.Join(values, ",")
}

// Close closes the connection pool.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
