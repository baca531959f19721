package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xhad/knowtab/internal/models"
)

type ArchiveConfig struct {
	ConnString string
	TableName  string
}

// Archive keeps classification runs in Postgres so earlier screenings can
// be compared. The JSON report file stays the primary output; the archive
// is skipped entirely when no connection string is configured.
type Archive struct {
	config ArchiveConfig
	pool   *pgxpool.Pool
}

func NewWithConfig(config ArchiveConfig) (*Archive, error) {
	if config.TableName == "" {
		config.TableName = "classification_results"
	}

	pool, err := pgxpool.New(context.Background(), config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	a := &Archive{
		config: config,
		pool:   pool,
	}

	if err := a.initialize(); err != nil {
		pool.Close()
		return nil, err
	}

	return a, nil
}

func (a *Archive) initialize() error {
	ctx := context.Background()

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			company TEXT NOT NULL,
			is_indian TEXT,
			is_startup TEXT,
			is_tech TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, a.config.TableName)

	_, err := a.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_run_id_idx
		ON %s (run_id)`,
		a.config.TableName, a.config.TableName)

	_, err = a.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	return nil
}

// Store writes one run's results in a single transaction and returns the
// generated run ID.
func (a *Archive) Store(results []models.Result) (string, error) {
	ctx := context.Background()
	runID := uuid.NewString()

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, run_id, company, is_indian, is_startup, is_tech)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.config.TableName)

	for _, result := range results {
		_, err = tx.Exec(ctx, stmt,
			uuid.NewString(),
			runID,
			result.Company,
			result.IsIndian,
			result.IsStartup,
			result.IsTech,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert result: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %v", err)
	}

	return runID, nil
}

// Results loads one archived run back, in insertion order.
func (a *Archive) Results(runID string) ([]models.Result, error) {
	ctx := context.Background()

	query := fmt.Sprintf(`
		SELECT company, is_indian, is_startup, is_tech
		FROM %s
		WHERE run_id = $1
		ORDER BY created_at`,
		a.config.TableName)

	rows, err := a.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %v", err)
	}
	defer rows.Close()

	var results []models.Result
	for rows.Next() {
		var result models.Result
		err := rows.Scan(
			&result.Company,
			&result.IsIndian,
			&result.IsStartup,
			&result.IsTech,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (a *Archive) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
