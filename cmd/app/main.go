package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"salon-booking/internal/cache"
	"salon-booking/internal/config"
	"salon-booking/internal/handoff"
	"salon-booking/internal/http-server/handlers/bookings/approve"
	bookingCreate "salon-booking/internal/http-server/handlers/bookings/create"
	bookingGet "salon-booking/internal/http-server/handlers/bookings/get"
	"salon-booking/internal/http-server/handlers/health"
	servicesGet "salon-booking/internal/http-server/handlers/services/get"
	slotsGet "salon-booking/internal/http-server/handlers/slots/get"
	unavailableGet "salon-booking/internal/http-server/handlers/unavailable/get"
	"salon-booking/internal/metrics"
	svc "salon-booking/internal/service"
	"salon-booking/internal/storage/postgres"
	slogpretty "salon-booking/pkg/handlers/slogPretty"
	"salon-booking/pkg/middleware/mwLogger"
	"salon-booking/pkg/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	schedule, err := cfg.Schedule.ToConfig()
	if err != nil {
		log.Error("Invalid schedule", sl.Err(err))
		os.Exit(1)
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		log.Error("Invalid services", sl.Err(err))
		os.Exit(1)
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(cfg.StoragePath); err != nil {
			log.Error("Failed to apply migrations", sl.Err(err))
			os.Exit(1)
		}
		log.Info("Migrations applied")
	}

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = storage.Ping(pingCtx)
	pingCancel()
	if err != nil {
		log.Error("Failed to reach storage", sl.Err(err))
		os.Exit(1)
	}

	var (
		unavailableCache cache.UnavailableCache
		redisCache       *cache.RedisCache
	)
	if cfg.Redis.Addr != "" {
		redisCache, err = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
		if err != nil {
			log.Error("Failed to init redis cache", sl.Err(err))
			os.Exit(1)
		}
		unavailableCache = redisCache
	} else {
		log.Info("Redis address is empty, feed cache disabled")
	}

	service := svc.NewService(log, storage, unavailableCache, svc.Options{
		Catalog:  catalog,
		Schedule: schedule,
		Handoff:  handoff.New(cfg.HandoffConfig()),
		Metrics:  metrics.NewBookingMetrics(nil),
	})

	router := newRouter(log, service, cfg.Handoff.SalonName)

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if err := storage.Close(); err != nil {
		log.Error("Failed to close storage", sl.Err(err))
	} else {
		log.Info("Storage closed")
	}

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Error("Failed to close redis cache", sl.Err(err))
		} else {
			log.Info("Redis cache closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

type bookingAPI interface {
	unavailableGet.UnavailableLister
	slotsGet.AvailabilityGetter
	servicesGet.ServiceLister
	bookingCreate.BookingCreator
	bookingGet.BookingGetter
	approve.BookingApprover
}

func newRouter(log *slog.Logger, service bookingAPI, salonName string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(CORS)

	router.Get("/", health.New(salonName))
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/horarios-indisponiveis", unavailableGet.New(log, service))
		r.Get("/horarios", slotsGet.New(log, service))
		r.Get("/servicos", servicesGet.New(log, service))

		r.Post("/agendamentos", bookingCreate.New(log, service))
		r.Get("/agendamentos", bookingGet.New(log, service))
		r.Get("/agendamentos/{id}", bookingGet.New(log, service))
		r.Get("/agendamentos/{id}/aprovar", approve.New(log, service))
	})

	return router
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
