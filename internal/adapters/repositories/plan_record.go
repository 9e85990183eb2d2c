package repositories

import (
	"encoding/json"
	"fleet-route-planner/internal/domain"
	"fmt"
	"time"
)

// planRecord is the row shape shared by the SQLite and Postgres repositories.
// Summary columns are denormalized for listing; the JSON columns hold the plan.
type planRecord struct {
	ID             string
	CreatedAt      time.Time
	Seed           int64
	VehicleCount   int
	LocationCount  int
	RunCount       int
	UnvisitedCount int
	TotalDistance  float64
	InputJSON      string
	LocationsJSON  string
	PlanJSON       string
}

type rowScanner interface {
	Scan(dest ...any) error
}

func newPlanRecord(p *domain.StoredPlan) (planRecord, error) {
	if p == nil || p.ID == "" {
		return planRecord{}, fmt.Errorf("encode plan: plan id must be non-empty")
	}

	input, err := json.Marshal(p.Input)
	if err != nil {
		return planRecord{}, fmt.Errorf("encode plan %s: marshal input: %w", p.ID, err)
	}
	locations, err := json.Marshal(p.Locations)
	if err != nil {
		return planRecord{}, fmt.Errorf("encode plan %s: marshal locations: %w", p.ID, err)
	}
	plan, err := json.Marshal(p.Plan)
	if err != nil {
		return planRecord{}, fmt.Errorf("encode plan %s: marshal plan: %w", p.ID, err)
	}

	return planRecord{
		ID:             p.ID,
		CreatedAt:      p.CreatedAt.UTC(),
		Seed:           p.Input.Seed,
		VehicleCount:   len(p.Plan.Vehicles),
		LocationCount:  len(p.Locations) - 1,
		RunCount:       p.Plan.RunCount(),
		UnvisitedCount: len(p.Plan.Unvisited),
		TotalDistance:  p.Plan.TotalDistance(),
		InputJSON:      string(input),
		LocationsJSON:  string(locations),
		PlanJSON:       string(plan),
	}, nil
}

func (r planRecord) toDomain() (*domain.StoredPlan, error) {
	p := &domain.StoredPlan{ID: r.ID, CreatedAt: r.CreatedAt}

	if err := json.Unmarshal([]byte(r.InputJSON), &p.Input); err != nil {
		return nil, fmt.Errorf("decode plan %s: input: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.LocationsJSON), &p.Locations); err != nil {
		return nil, fmt.Errorf("decode plan %s: locations: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.PlanJSON), &p.Plan); err != nil {
		return nil, fmt.Errorf("decode plan %s: plan: %w", r.ID, err)
	}

	return p, nil
}
