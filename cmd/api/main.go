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

	"go.uber.org/zap"

	"github.com/rxtrack/rxtrack-api/config"
	"github.com/rxtrack/rxtrack-api/internal/domain/record"
	v1 "github.com/rxtrack/rxtrack-api/internal/handler/v1"
	"github.com/rxtrack/rxtrack-api/internal/repository"
	"github.com/rxtrack/rxtrack-api/internal/service"
	"github.com/rxtrack/rxtrack-api/pkg/auth"
	"github.com/rxtrack/rxtrack-api/pkg/database"
	"github.com/rxtrack/rxtrack-api/pkg/logger"
	"github.com/rxtrack/rxtrack-api/pkg/metrics"
	"github.com/rxtrack/rxtrack-api/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting service",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracer: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}
	if cfg.Seed.Enabled {
		if err := database.Seed(db, cfg.Seed, log); err != nil {
			return err
		}
	}

	collector := metrics.NewCollector("rxtrack")
	if sqlDB, err := db.DB(); err == nil {
		go func() {
			for range time.Tick(15 * time.Second) {
				collector.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
			}
		}()
	}

	jwtManager := auth.NewJWTManager(cfg.JWT)

	prescriptionRepo := repository.NewRecordRepository[record.Prescription](db)
	historyRepo := repository.NewRecordRepository[record.History](db)
	userRepo := repository.NewUserRepository(db)

	prescriptionSvc := service.NewPrescriptionService(prescriptionRepo, collector, log)
	historySvc := service.NewHistoryService(historyRepo, log)
	authSvc := service.NewAuthService(userRepo, jwtManager, log)

	router := v1.NewRouter(v1.RouterDeps{
		Prescription: v1.NewPrescriptionHandler(prescriptionSvc),
		History:      v1.NewHistoryHandler(historySvc),
		Auth:         v1.NewAuthHandler(authSvc),
		JWTManager:   jwtManager,
		Metrics:      collector,
		Log:          log,
		Config:       cfg,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
