package handlers

import (
	"encoding/json"
	"errors"
	"fleet-route-planner/internal/adapters/export"
	"fleet-route-planner/internal/api/dto"
	"fleet-route-planner/internal/domain"
	"fleet-route-planner/internal/platform/obs"
	"fleet-route-planner/internal/ports"
	"fleet-route-planner/internal/services"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100

	// The distance table grows with the square of the location count.
	maxLocationCount = 2000
	maxVehicleCount  = 100
	maxRequestBytes  = 1 << 20
)

// PlanHandler creates, lists and exports route plans.
// Cache is optional and may be nil.
type PlanHandler struct {
	Repo  ports.PlanRepository
	Cache ports.PlanCache
}

// Plans serves the /plans collection: POST computes a plan, GET lists recent ones.
func (h *PlanHandler) Plans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

func (h *PlanHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusBadRequest, "request body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.LocationCount != nil && (*req.LocationCount < 0 || *req.LocationCount > maxLocationCount) {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("location_count must be between 0 and %d", maxLocationCount))
		return
	}
	if len(req.Locations) > maxLocationCount+1 {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("locations must hold at most %d entries", maxLocationCount+1))
		return
	}
	if req.VehicleCount < 0 || req.VehicleCount > maxVehicleCount {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("vehicle_count must be between 0 and %d", maxVehicleCount))
		return
	}

	stored, err := services.PlanDeliveries(r.Context(), planInput(req), h.Repo, h.Cache)
	if errors.Is(err, domain.ErrInvalidConfiguration) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.internalError(w, r, "plan deliveries failed", err)
		return
	}

	w.Header().Set("Location", "/plans/"+stored.ID)
	writeJSON(w, r, http.StatusCreated, toPlanResponse(stored))
}

// planInput applies the request defaults. An omitted seed draws one from the
// clock unless the request carries its own locations, which need no seed.
func planInput(req dto.PlanRequest) domain.PlanInput {
	in := domain.PlanInput{
		VehicleCount:          req.VehicleCount,
		MaxDistancePerVehicle: domain.DefaultMaxDistance,
		MaxDeliveriesPerRun:   domain.DefaultMaxDeliveriesPerRun,
	}

	switch {
	case req.Seed != nil:
		in.Seed = *req.Seed
	case len(req.Locations) == 0:
		in.Seed = time.Now().UnixNano()
	}
	if req.MaxDistancePerVehicle != nil {
		in.MaxDistancePerVehicle = *req.MaxDistancePerVehicle
	}
	if req.MaxDeliveriesPerRun != nil {
		in.MaxDeliveriesPerRun = *req.MaxDeliveriesPerRun
	}

	if len(req.Locations) > 0 {
		in.Locations = make([]domain.Location, 0, len(req.Locations))
		for _, l := range req.Locations {
			in.Locations = append(in.Locations, domain.Location{ID: l.ID, X: l.X, Y: l.Y, Demand: l.Demand})
		}
		in.LocationCount = len(in.Locations) - 1
	} else {
		in.LocationCount = domain.DefaultLocationCount
		if req.LocationCount != nil {
			in.LocationCount = *req.LocationCount
		}
	}

	for _, v := range req.Vehicles {
		in.Vehicles = append(in.Vehicles, domain.VehicleLimits{
			MaxDistance:         v.MaxDistance,
			MaxDeliveriesPerRun: v.MaxDeliveriesPerRun,
		})
	}

	return in
}

func (h *PlanHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxListLimit))
			return
		}
		limit = n
	}

	plans, err := h.Repo.ListPlans(r.Context(), limit)
	if err != nil {
		h.internalError(w, r, "list plans failed", err)
		return
	}

	res := dto.ListPlansResponse{Plans: make([]dto.PlanSummaryResponse, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, dto.PlanSummaryResponse{
			ID:             p.ID,
			CreatedAt:      p.CreatedAt,
			Seed:           p.Input.Seed,
			LocationCount:  len(p.Locations) - 1,
			VehicleCount:   len(p.Plan.Vehicles),
			RunCount:       p.Plan.RunCount(),
			UnvisitedCount: len(p.Plan.Unvisited),
			TotalDistance:  p.Plan.TotalDistance(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one stored plan with its per-leg plot data.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	stored, ok := h.lookup(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(stored))
}

// Export streams the route data table of a stored plan as tab separated values.
func (h *PlanHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	stored, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="route_data_%s.csv"`, stored.ID))
	w.WriteHeader(http.StatusOK)

	if err := export.WriteTSV(w, stored.Plan); err != nil {
		log.WithField("req_id", obs.RequestID(r.Context())).WithError(err).Warn("export plan failed")
	}
}

func (h *PlanHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.StoredPlan, bool) {
	id := r.PathValue("id")

	stored, err := h.Repo.GetPlan(r.Context(), id)
	if errors.Is(err, ports.ErrPlanNotFound) {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return nil, false
	}
	if err != nil {
		h.internalError(w, r, "get plan failed", err)
		return nil, false
	}

	return stored, true
}

func (h *PlanHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	log.WithField("req_id", obs.RequestID(r.Context())).WithError(err).Error(msg)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func toPlanResponse(p *domain.StoredPlan) dto.PlanResponse {
	res := dto.PlanResponse{
		ID:            p.ID,
		CreatedAt:     p.CreatedAt,
		Seed:          p.Input.Seed,
		TotalDistance: p.Plan.TotalDistance(),
		Locations:     make([]dto.LocationResponse, 0, len(p.Locations)),
		Vehicles:      make([]dto.VehiclePlanResponse, 0, len(p.Plan.Vehicles)),
		Unvisited:     p.Plan.Unvisited,
	}
	if res.Unvisited == nil {
		res.Unvisited = []int{}
	}

	for _, l := range p.Locations {
		res.Locations = append(res.Locations, dto.LocationResponse{ID: l.ID, X: l.X, Y: l.Y, Demand: l.Demand})
	}

	for _, v := range p.Plan.Vehicles {
		vr := dto.VehiclePlanResponse{
			VehicleID:     v.VehicleID,
			TotalDistance: v.TotalDistance,
			Deliveries:    v.Deliveries(),
			Runs:          make([]dto.RunResponse, 0, len(v.Runs)),
		}

		for i, run := range v.Runs {
			legs := run.Legs()
			rr := dto.RunResponse{
				RunNo:       i + 1,
				LocationIDs: run.LocationIDs(),
				Deliveries:  run.Deliveries(),
				Distance:    run.Distance,
				Legs:        make([]dto.LegResponse, 0, len(legs)),
			}
			for _, l := range legs {
				rr.Legs = append(rr.Legs, dto.LegResponse{
					FromID:   l.From.ID,
					ToID:     l.To.ID,
					FromX:    l.From.X,
					FromY:    l.From.Y,
					ToX:      l.To.X,
					ToY:      l.To.Y,
					Distance: l.Distance,
					Demand:   l.To.Demand,
				})
			}
			vr.Runs = append(vr.Runs, rr)
		}

		res.Vehicles = append(res.Vehicles, vr)
	}

	return res
}
