package ports

import (
	"context"
	"fleet-route-planner/internal/domain"
)

// Optional cache of computed plans keyed by PlanInput fingerprint.
type PlanCache interface {
	// Return the cached plan and true on a hit.
	Get(ctx context.Context, key string) (*domain.StoredPlan, bool, error)
	Put(ctx context.Context, key string, plan *domain.StoredPlan) error
}
