package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"payscope/internal/comp/cache"
	"payscope/internal/comp/handler"
	"payscope/internal/comp/metrics"
	"payscope/internal/comp/ports"
	"payscope/internal/comp/service/catalog"
	"payscope/internal/comp/service/generator"
	"payscope/internal/comp/service/query"
	"payscope/internal/comp/service/records"
	"payscope/internal/comp/service/stats"
	"payscope/internal/comp/store/company"
	"payscope/internal/comp/store/location"
	"payscope/internal/comp/store/record"
	"payscope/internal/comp/store/role"
	"payscope/internal/comp/tier"
	"payscope/internal/platform/config"
	"payscope/internal/platform/httpserver"
	"payscope/internal/platform/logger"
	"payscope/internal/platform/postgres"
	platformredis "payscope/internal/platform/redis"
)

// main wires stores, services and the HTTP router, and keeps the server
// lifecycle small. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	var (
		db            *sql.DB
		companyStore  ports.CompanyStore
		roleStore     ports.RoleStore
		locationStore ports.LocationStore
		recordStore   ports.RecordStore
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(context.Background(), db); err != nil {
			log.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		companyStore = company.NewPostgres(db)
		roleStore = role.NewPostgres(db)
		locationStore = location.NewPostgres(db)
		recordStore = record.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		memCompanies := company.NewInMemory()
		memRoles := role.NewInMemory()
		memLocations := location.NewInMemory()
		companyStore = memCompanies
		roleStore = memRoles
		locationStore = memLocations
		recordStore = record.NewInMemory(memCompanies, memRoles, memLocations)
		log.Info("using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	var statsCache ports.StatsCache
	if redisClient != nil {
		defer redisClient.Close()
		statsCache = cache.New(redisClient, config.StatsCacheTTL, cache.WithLogger(log))
		log.Info("stats cache enabled")
	}

	m := metrics.New()
	table := tier.DefaultTable()

	catalogSvc, err := catalog.New(companyStore, roleStore, locationStore, catalog.WithLogger(log))
	if err != nil {
		log.Error("failed to build catalog service", "error", err)
		os.Exit(1)
	}

	recordOpts := []records.Option{records.WithLogger(log), records.WithMetrics(m)}
	if statsCache != nil {
		recordOpts = append(recordOpts, records.WithStatsCache(statsCache))
	}
	recordSvc, err := records.New(recordStore, recordOpts...)
	if err != nil {
		log.Error("failed to build record service", "error", err)
		os.Exit(1)
	}

	querySvc, err := query.New(recordStore, query.WithLogger(log), query.WithMetrics(m))
	if err != nil {
		log.Error("failed to build query service", "error", err)
		os.Exit(1)
	}

	statsOpts := []stats.Option{stats.WithLogger(log), stats.WithMetrics(m)}
	if statsCache != nil {
		statsOpts = append(statsOpts, stats.WithStatsCache(statsCache))
	}
	statsSvc, err := stats.New(recordStore, statsOpts...)
	if err != nil {
		log.Error("failed to build stats service", "error", err)
		os.Exit(1)
	}

	genOpts := []generator.Option{
		generator.WithLogger(log),
		generator.WithMetrics(m),
		generator.WithBatchSize(cfg.GeneratorBatchSize),
	}
	if statsCache != nil {
		genOpts = append(genOpts, generator.WithStatsCache(statsCache))
	}
	genSvc, err := generator.New(recordStore, companyStore, roleStore, locationStore, table, genOpts...)
	if err != nil {
		log.Error("failed to build generator service", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	h := handler.New(catalogSvc, recordSvc, querySvc, statsSvc, genSvc, log)
	h.Register(router)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/metrics", promhttp.Handler().ServeHTTP)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting payscope server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
