package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	vhttp "github.com/vendra/vendra/internal/adapter/http"
	vnats "github.com/vendra/vendra/internal/adapter/nats"
	"github.com/vendra/vendra/internal/adapter/otel"
	"github.com/vendra/vendra/internal/adapter/postgres"
	"github.com/vendra/vendra/internal/adapter/ristretto"
	"github.com/vendra/vendra/internal/config"
	"github.com/vendra/vendra/internal/logger"
	"github.com/vendra/vendra/internal/middleware"
	"github.com/vendra/vendra/internal/port/messagequeue"
	"github.com/vendra/vendra/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"base_domain", cfg.Marketplace.BaseDomain,
	)

	ctx := context.Background()

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	var queue messagequeue.Queue = messagequeue.Noop{}
	if cfg.NATS.Enabled {
		nq, err := vnats.Connect(ctx, cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		queue = nq
	}
	defer func() { _ = queue.Close() }()

	cache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer cache.Close()

	shutdownTracer := otel.InitTracer(cfg.Logging.Service)
	defer func() { _ = shutdownTracer(ctx) }()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Services ---

	store := postgres.NewStore(pool)
	authSvc := service.NewAuthService(store, &cfg.Auth)
	mktSvc := service.NewMarketplaceService(store, queue, metrics, &cfg.Marketplace)
	tenantSvc := service.NewTenantService(store, cache, cfg.Cache.TenantTTL)
	categorySvc := service.NewCategoryService(store)
	fieldSvc := service.NewFieldService(store)
	productSvc := service.NewProductService(store)
	orderSvc := service.NewOrderService(store, queue, metrics)

	handlers := vhttp.NewHandlers(authSvc, mktSvc, tenantSvc, categorySvc, fieldSvc, productSvc, orderSvc, cfg.Server.BodyLimit)

	// --- HTTP ---

	limiter := middleware.NewRateLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
	stopCleanup := limiter.StartCleanup(time.Minute, 10*time.Minute)
	defer stopCleanup()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(vhttp.SecurityHeaders)
	r.Use(vhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(vhttp.Logger)
	r.Use(otel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(limiter.Handler)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.Server.RequestTimeout))

	r.Get("/health", healthHandler(store, queue))

	vhttp.MountRoutes(r, handlers, authSvc, tenantSvc)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// healthHandler reports liveness of the API and its dependencies.
func healthHandler(store *postgres.Store, queue messagequeue.Queue) http.HandlerFunc {
	type healthStatus struct {
		Status   string `json:"status"`
		Postgres string `json:"postgres"`
		NATS     string `json:"nats"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		status := healthStatus{Status: "ok", Postgres: "ok", NATS: "disabled"}
		code := http.StatusOK

		if err := store.Ping(r.Context()); err != nil {
			status.Status = "degraded"
			status.Postgres = "unreachable"
			code = http.StatusServiceUnavailable
		}
		if queue.IsConnected() {
			status.NATS = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
