package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fleet-route-planner/internal/domain"
	"fleet-route-planner/internal/platform/obs"
	"fleet-route-planner/internal/ports"
	"fmt"
	"time"
)

// SQLite-backed implementation of the PlanRepository port.
// Timestamps are stored as fixed-width UTC text so they sort lexically.
type SqlitePlanRepository struct{ DB *sql.DB }

const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func NewSqlitePlanRepository(db *sql.DB) *SqlitePlanRepository {
	return &SqlitePlanRepository{DB: db}
}

const sqliteSelectPlan = `
	SELECT
		plan_id,
		created_at,
		seed,
		vehicle_count,
		location_count,
		run_count,
		unvisited_count,
		total_distance,
		input_json,
		locations_json,
		plan_json
	FROM plans
`

// Store a plan, replacing any row with the same plan_id.
func (s *SqlitePlanRepository) SavePlan(ctx context.Context, p *domain.StoredPlan) (err error) {
	defer obs.Time(ctx, "sqlite.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("sqlite plan repository: DB is nil")
	}

	rec, err := newPlanRecord(p)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO plans (
		plan_id,
		created_at,
		seed,
		vehicle_count,
		location_count,
		run_count,
		unvisited_count,
		total_distance,
		input_json,
		locations_json,
		plan_json
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		rec.ID,
		rec.CreatedAt.Format(sqliteTimeLayout),
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
func (s *SqlitePlanRepository) GetPlan(ctx context.Context, id string) (_ *domain.StoredPlan, err error) {
	defer obs.Time(ctx, "sqlite.GetPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite plan repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, sqliteSelectPlan+` WHERE plan_id = ?;`, id)
	p, err := scanSqlitePlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", id, err)
	}

	return p, nil
}

// Return up to limit plans, newest first.
func (s *SqlitePlanRepository) ListPlans(ctx context.Context, limit int) (_ []*domain.StoredPlan, err error) {
	defer obs.Time(ctx, "sqlite.ListPlans")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite plan repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, sqliteSelectPlan+` ORDER BY created_at DESC, plan_id LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans: query plans table: %w", err)
	}
	defer rows.Close()

	plans := make([]*domain.StoredPlan, 0, limit)
	for rows.Next() {
		p, err := scanSqlitePlan(rows)
		if err != nil {
			return nil, fmt.Errorf("list plans: %w", err)
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: row iteration: %w", err)
	}

	return plans, nil
}

func scanSqlitePlan(row rowScanner) (*domain.StoredPlan, error) {
	var rec planRecord
	var createdAt string

	err := row.Scan(
		&rec.ID,
		&createdAt,
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

	rec.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan plan %s: created_at %q: %w", rec.ID, createdAt, err)
	}

	return rec.toDomain()
}
