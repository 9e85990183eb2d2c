package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fleet-route-planner/internal/domain"
	"fleet-route-planner/internal/platform/obs"
	"fleet-route-planner/internal/ports"
	"fmt"
)

// SQLPlanRepository is a Postgres-backed PlanRepository (pgx stdlib driver).
type SQLPlanRepository struct {
	DB *sql.DB
}

func NewSQLPlanRepository(db *sql.DB) *SQLPlanRepository {
	return &SQLPlanRepository{DB: db}
}

const sqlSelectPlan = `
	SELECT
		plan_id::text,
		created_at,
		seed,
		vehicle_count,
		location_count,
		run_count,
		unvisited_count,
		total_distance,
		input_json::text,
		locations_json::text,
		plan_json::text
	FROM plans
`

// Store a plan, replacing any row with the same plan_id.
func (s *SQLPlanRepository) SavePlan(ctx context.Context, p *domain.StoredPlan) (err error) {
	defer obs.Time(ctx, "postgres.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("plan repository: db is nil")
	}

	rec, err := newPlanRecord(p)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	q := `
	INSERT INTO plans (
		plan_id, created_at, seed, vehicle_count, location_count, run_count,
		unvisited_count, total_distance, input_json, locations_json, plan_json
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10::jsonb, $11::jsonb)
	ON CONFLICT (plan_id) DO UPDATE
	SET created_at = EXCLUDED.created_at,
		seed = EXCLUDED.seed,
		vehicle_count = EXCLUDED.vehicle_count,
		location_count = EXCLUDED.location_count,
		run_count = EXCLUDED.run_count,
		unvisited_count = EXCLUDED.unvisited_count,
		total_distance = EXCLUDED.total_distance,
		input_json = EXCLUDED.input_json,
		locations_json = EXCLUDED.locations_json,
		plan_json = EXCLUDED.plan_json;
	`

	_, err = s.DB.ExecContext(ctx, q,
		rec.ID,
		rec.CreatedAt,
		rec.Seed,
		rec.VehicleCount,
		rec.LocationCount,
		rec.RunCount,
		rec.UnvisitedCount,
		rec.TotalDistance,
		rec.InputJSON,
		rec.LocationsJSON,
		rec.PlanJSON,
	)
	if err != nil {
		return fmt.Errorf("save plan: insert plan_id=%s: %w", rec.ID, err)
	}

	return nil
}

// Return the plan with the given id or ports.ErrPlanNotFound.
func (s *SQLPlanRepository) GetPlan(ctx context.Context, id string) (_ *domain.StoredPlan, err error) {
	defer obs.Time(ctx, "postgres.GetPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("plan repository: db is nil")
	}

	row := s.DB.QueryRowContext(ctx, sqlSelectPlan+` WHERE plan_id::text = $1;`, id)
	p, err := scanSQLPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", id, err)
	}

	return p, nil
}

// Return up to limit plans, newest first.
func (s *SQLPlanRepository) ListPlans(ctx context.Context, limit int) (_ []*domain.StoredPlan, err error) {
	defer obs.Time(ctx, "postgres.ListPlans")(&err)

	if s.DB == nil {
		return nil, errors.New("plan repository: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, sqlSelectPlan+` ORDER BY created_at DESC, plan_id LIMIT $1;`, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans: query plans table: %w", err)
	}
	defer rows.Close()

	plans := make([]*domain.StoredPlan, 0, limit)
	for rows.Next() {
		p, err := scanSQLPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("list plans: scan rows: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: row iteration: %w", err)
	}

	return plans, nil
}

func scanSQLPlan(row rowScanner) (*domain.StoredPlan, error) {
	var rec planRecord
	err := row.Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.Seed,
		&rec.VehicleCount,
		&rec.LocationCount,
		&rec.RunCount,
		&rec.UnvisitedCount,
		&rec.TotalDistance,
		&rec.InputJSON,
		&rec.LocationsJSON,
		&rec.PlanJSON,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec.toDomain()
}
