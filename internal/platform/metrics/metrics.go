package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served on /metrics.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route pattern and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// PlansTotal counts planning invocations by outcome (ok, invalid, error, cached).
	PlansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_plans_total", Help: "Route planning invocations by outcome."},
		[]string{"outcome"},
	)
	// PlanningDuration tracks instance generation plus planning time in seconds.
	PlanningDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_planning_duration_seconds", Help: "Route planning duration in seconds.", Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8)},
	)
	// PlanRuns records the number of runs per computed plan.
	PlanRuns = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_plan_runs", Help: "Runs per computed plan.", Buckets: prometheus.ExponentialBuckets(1, 2, 10)},
	)
	// PlanUnvisited records how many locations each plan left unvisited.
	PlanUnvisited = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_plan_unvisited_locations", Help: "Locations left unvisited per computed plan.", Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500}},
	)
	// PlanCacheLookups counts plan cache lookups by result (hit, miss, error).
	PlanCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_plan_cache_lookups_total", Help: "Plan cache lookups by result."},
		[]string{"result"},
	)
)

// Register registers all collectors on Registry once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(PlansTotal)
		Registry.MustRegister(PlanningDuration)
		Registry.MustRegister(PlanRuns)
		Registry.MustRegister(PlanUnvisited)
		Registry.MustRegister(PlanCacheLookups)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
