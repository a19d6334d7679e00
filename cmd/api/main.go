package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"subscriptionservice/internal/app"
	"subscriptionservice/internal/config"
	"subscriptionservice/internal/database"
	"subscriptionservice/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.LogLevel, cfg.AppEnv)
	defer func() { _ = zapLogger.Sync() }()

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{
		MaxOpenConns: cfg.DBMaxOpenConns,
		Logger:       logger.WithComponent(zapLogger, "database"),
	})
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedDefaultService {
		created, err := database.SeedDefaultService(ctx, db)
		if err != nil {
			zapLogger.Fatal("failed to seed default service", zap.Error(err))
		}
		if created {
			zapLogger.Warn("seeded default service credentials; disable SEED_DEFAULT_SERVICE outside development",
				zap.String("service_id", database.DefaultServiceID))
		}
	}

	router := app.NewRouter(db, zapLogger, app.Options{
		TokenValidity: cfg.TokenValidity,
		CORSOrigins:   cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		zapLogger.Info("starting HTTP server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("env", cfg.AppEnv),
			zap.Duration("token_validity", cfg.TokenValidity),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
