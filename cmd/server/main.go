package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"shop-delivery-service/internal/adapters/cache"
	"shop-delivery-service/internal/adapters/geocode"
	"shop-delivery-service/internal/adapters/repositories"
	"shop-delivery-service/internal/api"
	"shop-delivery-service/internal/api/handlers"
	"shop-delivery-service/internal/config"
	"shop-delivery-service/internal/domain"
	"shop-delivery-service/internal/jobs"
	"shop-delivery-service/internal/platform/db"
	"shop-delivery-service/internal/platform/metrics"
	"shop-delivery-service/internal/platform/obs"
	"shop-delivery-service/internal/ports"
	"shop-delivery-service/internal/services"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const geocodeCacheTTL = 30 * 24 * time.Hour

// main is the application composition root.
// It wires concrete adapters (SQL store, ORS, caches) behind ports and starts the HTTP server.
func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logrus.Fatal(err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	obs.SetupLogging(cfg.LogLevel, cfg.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer conn.Close()
	dialect := db.Dialect(cfg.DBDriver)

	repo := repositories.NewSQLShopRepository(conn, dialect)

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, conn, repo, cfg.SeedPath); err != nil {
		return err
	}

	geocoder, closeGeocoder, err := newGeocoder(ctx, cfg, conn, dialect)
	if err != nil {
		return err
	}
	defer closeGeocoder()

	m := metrics.New("shopdelivery")
	depot := domain.Location{Lat: cfg.DepotLat, Lon: cfg.DepotLon, Label: cfg.DepotLabel}

	router := api.NewRouter(api.Dependencies{
		Repo:     repo,
		Geocoder: geocoder,
		Metrics:  m,
		PlanDefaults: handlers.PlanDefaults{
			Depot:         depot,
			MaxStops:      cfg.MaxStops,
			MaxDistanceKm: cfg.MaxDistanceKm,
		},
	})

	job := &jobs.WeeklyPlanJob{
		Repo:     repo,
		Geocoder: geocoder,
		Request: services.PlanWeekRequest{
			Depot:         depot,
			MaxStops:      cfg.MaxStops,
			MaxDistanceKm: cfg.MaxDistanceKm,
		},
		Timeout: 5 * time.Minute,
	}
	if strings.TrimSpace(cfg.PlanSchedule) != "" {
		if err := job.Start(cfg.PlanSchedule); err != nil {
			return err
		}
		defer job.Stop()
	}

	// Timeouts are tuned for cold-cache planning (external geocoding latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, repo *repositories.SQLShopRepository, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		logrus.WithField("seed_path", seedPath).Info("no seed file; skipping seed")
		return nil
	}

	if err := repositories.SeedFromJSON(ctx, repo, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// newGeocoder builds the ORS geocoder when an API key is configured.
// Coordinates are cached in Redis when REDIS_URL is set, otherwise in the SQL store.
// A nil geocoder disables geocoding of shops without coordinates.
func newGeocoder(
	ctx context.Context,
	cfg *config.Config,
	conn *sql.DB,
	dialect db.Dialect,
) (ports.Geocoder, func(), error) {
	noop := func() {}

	if strings.TrimSpace(cfg.ORSAPIKey) == "" {
		logrus.Warn("ORS_API_KEY not set; shops without coordinates will not be geocoded")
		return nil, noop, nil
	}

	var geocodeCache ports.GeocodeCache = cache.NewSQLGeocodeCache(conn, dialect)
	closer := noop

	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		geocodeCache = cache.NewRedisGeocodeCache(client, geocodeCacheTTL)
		closer = func() { _ = client.Close() }
	}

	g, err := geocode.NewORSGeocoder(cfg.ORSAPIKey, geocodeCache)
	if err != nil {
		closer()
		return nil, noop, err
	}

	return g, closer, nil
}
