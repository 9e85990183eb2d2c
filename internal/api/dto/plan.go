package dto

import "time"

// Pointer fields distinguish "omitted" (use the default) from an explicit zero.
type PlanRequest struct {
	Seed                  *int64              `json:"seed"`
	LocationCount         *int                `json:"location_count"`
	Locations             []LocationRequest   `json:"locations"`
	VehicleCount          int                 `json:"vehicle_count"`
	MaxDistancePerVehicle *float64            `json:"max_distance_per_vehicle"`
	MaxDeliveriesPerRun   *int                `json:"max_deliveries_per_run"`
	Vehicles              []VehicleLimitsBody `json:"vehicles"`
}

type LocationRequest struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Demand int     `json:"demand"`
}

type VehicleLimitsBody struct {
	MaxDistance         float64 `json:"max_distance"`
	MaxDeliveriesPerRun int     `json:"max_deliveries_per_run"`
}

type LocationResponse struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Demand int     `json:"demand"`
}

// One drawable segment; Demand is what was delivered at the To end.
type LegResponse struct {
	FromID   int     `json:"from_id"`
	ToID     int     `json:"to_id"`
	FromX    float64 `json:"from_x"`
	FromY    float64 `json:"from_y"`
	ToX      float64 `json:"to_x"`
	ToY      float64 `json:"to_y"`
	Distance float64 `json:"distance"`
	Demand   int     `json:"demand"`
}

type RunResponse struct {
	RunNo       int           `json:"run_no"`
	LocationIDs []int         `json:"location_ids"`
	Deliveries  int           `json:"deliveries"`
	Distance    float64       `json:"distance"`
	Legs        []LegResponse `json:"legs"`
}

type VehiclePlanResponse struct {
	VehicleID     int           `json:"vehicle_id"`
	TotalDistance float64       `json:"total_distance"`
	Deliveries    int           `json:"deliveries"`
	Runs          []RunResponse `json:"runs"`
}

type PlanResponse struct {
	ID            string                `json:"id"`
	CreatedAt     time.Time             `json:"created_at"`
	Seed          int64                 `json:"seed"`
	TotalDistance float64               `json:"total_distance"`
	Locations     []LocationResponse    `json:"locations"`
	Vehicles      []VehiclePlanResponse `json:"vehicles"`
	Unvisited     []int                 `json:"unvisited"`
}

type PlanSummaryResponse struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Seed           int64     `json:"seed"`
	LocationCount  int       `json:"location_count"`
	VehicleCount   int       `json:"vehicle_count"`
	RunCount       int       `json:"run_count"`
	UnvisitedCount int       `json:"unvisited_count"`
	TotalDistance  float64   `json:"total_distance"`
}

type ListPlansResponse struct {
	Plans []PlanSummaryResponse `json:"plans"`
}
