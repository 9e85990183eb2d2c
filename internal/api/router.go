package api

import (
	"fleet-route-planner/internal/api/handlers"
	"fleet-route-planner/internal/platform/metrics"
	"fleet-route-planner/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// cache and limiter are optional.
func NewRouter(repo ports.PlanRepository, cache ports.PlanCache, limiter *rate.Limiter) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Repo: repo, Cache: cache}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plans", planHandler.Plans)
	mux.HandleFunc("/plans/{id}", planHandler.Get)
	mux.HandleFunc("/plans/{id}/export", planHandler.Export)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// Limiting sits inside logging so rejected requests are still logged and counted.
	var h http.Handler = rateLimitMiddleware(limiter, mux)
	h = loggingMiddleware(h)
	return requestIDMiddleware(h)
}
