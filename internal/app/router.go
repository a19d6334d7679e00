package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"subscriptionservice/internal/database"
	"subscriptionservice/internal/middleware"
	"subscriptionservice/internal/modules/auth"
	"subscriptionservice/internal/modules/subscription"
	"subscriptionservice/internal/pkg/logger"
	"subscriptionservice/internal/pkg/response"
	"subscriptionservice/internal/repository"
)

const healthTimeout = 2 * time.Second

type Options struct {
	TokenValidity time.Duration
	CORSOrigins   []string
}

// NewRouter wires repositories, services and handlers over db.
func NewRouter(db *gorm.DB, log *zap.Logger, opts Options) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	serviceRepo := repository.NewServiceRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	authService := auth.NewService(serviceRepo, tokenRepo, opts.TokenValidity, logger.WithComponent(log, "auth"))
	authHandler := auth.NewHandler(authService)

	subscriptionService := subscription.NewService(authService, subscriptionRepo, logger.WithComponent(log, "subscription"))
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.CORS(opts.CORSOrigins),
	)

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			log.Warn("health check failed", zap.Error(err))
			response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Database unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		authHandler.RegisterRoutes(api)
		subscriptionHandler.RegisterRoutes(api)
	}

	return r
}
