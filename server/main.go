package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"busgo/api/routes"
	_ "busgo/docs"
	"busgo/internal/notifications"
	"busgo/internal/shared/config"
	"busgo/internal/shared/database"
	"busgo/internal/shared/middleware"
	"busgo/pkg/cache"
	"busgo/pkg/logger"
	"busgo/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title			BusGo API
// @version		1.0
// @description	Bus ticket search, checkout and booking ledger.
// @BasePath		/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// LOG_LEVEL may come from the .env file just loaded
	logger.SetDefault(logger.New())
	appLogger = logger.GetDefault()

	appLogger.Info("Starting BusGo",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("commit", GitCommit),
		slog.String("storage", cfg.Booking.StorageDriver),
	)

	// Storage: PostgreSQL and Redis, or everything in process
	var (
		db           *database.DB
		cacheService cache.Service
		rateLimiter  *ratelimit.RateLimiter
	)
	if cfg.UseMemoryStorage() {
		cacheService = cache.NewMemoryService()
		rateLimiter = ratelimit.NewLocalRateLimiter(cfg.RateLimit)
		appLogger.Warn("Memory storage driver selected: bookings are lost on restart")
	} else {
		var err error
		db, err = database.InitDB(cfg)
		if err != nil {
			appLogger.Error("Failed to initialize storage", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()

		cacheService = cache.NewService(db.Redis)
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, cfg.RateLimit)
	}
	appLogger.Info("Rate limiter initialized",
		slog.Bool("enabled", cfg.RateLimit.Enabled),
		slog.Duration("window", cfg.RateLimit.WindowDuration),
		slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
	)

	publisher := newPublisher(cfg, appLogger)
	defer func() {
		appLogger.Info("Stopping notification publisher...")
		if err := publisher.Close(); err != nil {
			appLogger.Error("Error closing notification publisher", slog.Any("error", err))
		}
	}()

	router := setupRouter(cfg, db, cacheService, publisher, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis", db != nil && db.Redis != nil),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// newPublisher connects to Kafka when enabled and falls back to logging
// notifications.
func newPublisher(cfg *config.Config, appLogger *logger.Logger) notifications.Publisher {
	if !cfg.Kafka.Enabled {
		appLogger.Info("Kafka disabled, notifications are logged")
		return notifications.NewLogPublisher(appLogger)
	}

	kafkaConfig := notifications.DefaultKafkaProducerConfig()
	kafkaConfig.Brokers = cfg.Kafka.Brokers
	kafkaConfig.Topic = cfg.Kafka.Topic
	kafkaConfig.RetryMax = cfg.Kafka.RetryMax

	publisher, err := notifications.NewKafkaPublisher(kafkaConfig)
	if err != nil {
		appLogger.Error("Failed to initialize Kafka publisher, notifications are logged", slog.Any("error", err))
		return notifications.NewLogPublisher(appLogger)
	}
	appLogger.Info("Kafka publisher initialized",
		slog.Any("brokers", cfg.Kafka.Brokers),
		slog.String("topic", cfg.Kafka.Topic),
	)
	return publisher
}

func setupRouter(cfg *config.Config, db *database.DB, c cache.Service, publisher notifications.Publisher, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(ratelimit.Middleware(rateLimiter))

	if !cfg.IsProduction() {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	appRouter := routes.NewRouter(cfg, db, c, publisher)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()
		duration := time.Since(start)

		reqLogger := l.WithRequestID(requestID)
		if userID, ok := c.Get(middleware.ContextUserID); ok {
			if id, ok := userID.(string); ok {
				reqLogger = reqLogger.WithUserID(id)
			}
		}
		reqLogger.LogHTTPRequest(c, duration)
	}
}
