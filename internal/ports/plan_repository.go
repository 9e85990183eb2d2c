package ports

import (
	"context"
	"errors"
	"fleet-route-planner/internal/domain"
)

var ErrPlanNotFound = errors.New("plan not found")

// Port: a boundary for persisting computed plans.
type PlanRepository interface {
	// Store a plan under its ID, replacing any previous plan with that ID.
	SavePlan(ctx context.Context, plan *domain.StoredPlan) error
	// Retrieve a plan by ID; returns ErrPlanNotFound when absent.
	GetPlan(ctx context.Context, id string) (*domain.StoredPlan, error)
	// Retrieve the most recent plans, newest first.
	ListPlans(ctx context.Context, limit int) ([]*domain.StoredPlan, error)
}
