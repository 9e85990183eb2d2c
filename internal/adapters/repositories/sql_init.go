package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS plans (
		plan_id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		seed BIGINT NOT NULL,
		vehicle_count INTEGER NOT NULL,
		location_count INTEGER NOT NULL,
		run_count INTEGER NOT NULL,
		unvisited_count INTEGER NOT NULL,
		total_distance DOUBLE PRECISION NOT NULL,
		input_json JSONB NOT NULL,
		locations_json JSONB NOT NULL,
		plan_json JSONB NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plans_created_at
    ON plans(created_at DESC);
	`

	statements := []string{
		createPlansQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
