package main

import (
	"context"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"subscriptionservice/internal/config"
	"subscriptionservice/internal/database"
	"subscriptionservice/internal/domain"
	"subscriptionservice/internal/pkg/logger"
	"subscriptionservice/internal/repository"
)

// Usage: seed [service_id:secret ...]
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.LogLevel, cfg.AppEnv)
	defer func() { _ = zapLogger.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, database.Options{MaxOpenConns: cfg.DBMaxOpenConns})
	if err != nil {
		zapLogger.Fatal("DB connection failed", zap.Error(err))
	}

	zapLogger.Info("running AutoMigrate")
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	ctx := context.Background()
	if cfg.SeedDefaultService {
		created, err := database.SeedDefaultService(ctx, db)
		if err != nil {
			zapLogger.Fatal("default service seed failed", zap.Error(err))
		}
		zapLogger.Info("default service", zap.String("service_id", database.DefaultServiceID), zap.Bool("created", created))
	}

	services := repository.NewServiceRepository(db)
	for _, arg := range os.Args[1:] {
		serviceID, secret, ok := strings.Cut(arg, ":")
		if !ok || serviceID == "" || secret == "" {
			zapLogger.Fatal("expected service_id:secret", zap.String("arg", arg))
		}

		exists, err := services.ExistsByServiceID(ctx, serviceID)
		if err != nil {
			zapLogger.Fatal("lookup failed", zap.String("service_id", serviceID), zap.Error(err))
		}
		if exists {
			zapLogger.Info("service exists, skipping", zap.String("service_id", serviceID))
			continue
		}

		if err := services.Create(ctx, &domain.Service{ServiceID: serviceID, Secret: secret}); err != nil {
			zapLogger.Fatal("create failed", zap.String("service_id", serviceID), zap.Error(err))
		}
		zapLogger.Info("service created", zap.String("service_id", serviceID))
	}
}
