package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/taskvault/taskvault/pkg/api"
	"github.com/taskvault/taskvault/pkg/auth"
	"github.com/taskvault/taskvault/pkg/config"
	"github.com/taskvault/taskvault/pkg/middleware"
	"github.com/taskvault/taskvault/pkg/observability"
	"github.com/taskvault/taskvault/pkg/service"
	"github.com/taskvault/taskvault/pkg/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("Failed to run schema migration")
	}
	log.Info("Database schema ready")

	userStore := store.NewUserStore(db)
	taskStore := store.NewTaskStore(db)

	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, cfg.Auth.TokenIssuer)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	guard := middleware.NewOwnershipGuard(log)
	guard.MustRegister("task", middleware.NewTaskOwnershipRule(taskStore))
	guard.MustRegister("user", middleware.SelfRule{})

	metrics := observability.NewMetrics(nil)
	health := observability.NewHealthChecker(db)

	server := api.NewServer(api.Deps{
		Users:   service.NewUserService(userStore, hasher, tokens, log),
		Tasks:   service.NewTaskService(taskStore, log),
		Auth:    middleware.NewAuth(tokens, log),
		Guard:   guard,
		Metrics: metrics,
		Log:     log,
	})

	apiServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Probes and metrics serve on their own port so they stay reachable
	// even if the API port is behind an ingress.
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", health.Liveness)
	healthMux.HandleFunc("/readyz", health.Readiness)
	healthMux.Handle("/metrics", metrics.Handler())
	healthServer := &http.Server{
		Addr:    cfg.Server.HealthAddr(),
		Handler: healthMux,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("addr", apiServer.Addr).Info("Starting API server")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.WithField("addr", healthServer.Addr).Info("Starting health/metrics server")
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutdown signal received, draining connections")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("API server shutdown error")
		}
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Health server shutdown error")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("Server exited with error")
	}
	log.Info("Shutdown complete")
}
