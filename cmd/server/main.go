package main

import (
	"context"
	"database/sql"
	"errors"
	"fleet-route-planner/internal/adapters/cache"
	"fleet-route-planner/internal/adapters/repositories"
	"fleet-route-planner/internal/api"
	"fleet-route-planner/internal/config"
	"fleet-route-planner/internal/platform/db"
	"fleet-route-planner/internal/platform/metrics"
	"fleet-route-planner/internal/ports"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, optional Redis) behind ports
// and serves the HTTP API until SIGINT or SIGTERM.
func main() {
	config.Load()
	log.SetFormatter(&log.JSONFormatter{})

	port := config.Get("PORT", "8080")

	conn, repo, err := openRepository()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	planCache, rdb, err := openCache(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var limiter *rate.Limiter
	if rps := config.GetFloat("RATE_LIMIT_RPS", 0); rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), config.GetInt("RATE_LIMIT_BURST", 10))
	}

	metrics.Register()
	router := api.NewRouter(repo, planCache, limiter)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

// openRepository selects the plan store from DB_DRIVER and prepares its schema.
func openRepository() (*sql.DB, ports.PlanRepository, error) {
	switch driver := config.Get("DB_DRIVER", "sqlite"); driver {
	case "sqlite":
		conn, err := db.OpenSQLite(config.Get("DB_PATH", "data/plans.db"))
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return conn, repositories.NewSqlitePlanRepository(conn), nil

	case "postgres":
		databaseURL := config.Get("DATABASE_URL", "")
		if databaseURL == "" {
			return nil, nil, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return conn, repositories.NewSQLPlanRepository(conn), nil

	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER %q (want sqlite or postgres)", driver)
	}
}

// openCache connects to Redis when REDIS_URL is set. Without it the returned
// cache is a nil interface and planning always computes.
func openCache(ctx context.Context) (ports.PlanCache, *redis.Client, error) {
	redisURL := config.Get("REDIS_URL", "")
	if redisURL == "" {
		log.Info("REDIS_URL not set, plan cache disabled")
		return nil, nil, nil
	}

	rdb, err := cache.Connect(ctx, redisURL)
	if err != nil {
		return nil, nil, err
	}

	ttl := config.GetDuration("PLAN_CACHE_TTL", time.Hour)
	return cache.NewRedisPlanCache(rdb, ttl), rdb, nil
}
