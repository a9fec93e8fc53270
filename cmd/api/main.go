package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/cohort-tools/internal/auth"
	"github.com/Dan9191/cohort-tools/internal/config"
	"github.com/Dan9191/cohort-tools/internal/handler"
	"github.com/Dan9191/cohort-tools/internal/jobs"
	"github.com/Dan9191/cohort-tools/internal/middleware"
	"github.com/Dan9191/cohort-tools/internal/repository"
	"github.com/Dan9191/cohort-tools/internal/repository/memory"
	"github.com/Dan9191/cohort-tools/internal/repository/mongo"
	"github.com/Dan9191/cohort-tools/internal/repository/postgres"
	"github.com/Dan9191/cohort-tools/internal/service"
	"github.com/Dan9191/cohort-tools/internal/utils/email"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store
	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	logger.Infof("Using %s store", cfg.StoreDriver)

	// Initialize layers
	var mailer service.Mailer
	if cfg.EmailEnabled() {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(store, auth.NewHasher(cfg.BcryptCost), auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL), mailer, logger)

	probe := jobs.NewHealthProbe(store, logger)
	scheduler, err := jobs.NewScheduler(cfg.HealthCheckSpec, probe, logger)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}
	scheduler.Start()

	limiter := newRateLimiter(cfg, logger)
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	h := handler.NewHandler(svc, logger, probe)
	router := handler.NewRouter(h, handler.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		Limiter:        limiter,
		Metrics:        metrics,
		MetricsHandler: promhttp.Handler(),
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	scheduler.Stop(shutdownCtx)
	svc.Wait()
	limiter.Close()
	if err := store.Close(shutdownCtx); err != nil {
		logger.Errorf("Failed to close store: %v", err)
	}
	logger.Info("Server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverMongo:
		return mongo.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.DBConn)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func newRateLimiter(cfg *config.Config, logger *logrus.Logger) middleware.RateLimiter {
	if cfg.RateLimitRedisAddr == "" {
		return middleware.NewMemoryRateLimiter()
	}
	limiter, err := middleware.NewRedisRateLimiter(cfg.RateLimitRedisAddr, cfg.RateLimitRedisPass, cfg.RateLimitRedisDB, logger)
	if err != nil {
		logger.Warnf("Redis rate limiter unavailable, using in-process counters: %v", err)
		return middleware.NewMemoryRateLimiter()
	}
	logger.Infof("Using redis rate limiter at %s", cfg.RateLimitRedisAddr)
	return limiter
}
