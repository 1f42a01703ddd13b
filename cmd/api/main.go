package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"mental-predictor/internal/config"
	"mental-predictor/internal/db"
	apihttp "mental-predictor/internal/http"
	"mental-predictor/internal/predict"
	"mental-predictor/internal/repository"
	"mental-predictor/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	checks := map[string]apihttp.HealthCheck{}

	var submissions repository.SubmissionRepository = repository.NewMemorySubmissionRepository()
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
		submissions = repository.NewPgSubmissionRepository(pool, logger)
		checks["postgres"] = func(ctx context.Context) error { return db.Ping(ctx, pool) }
	} else {
		logger.Warn("database url not configured, using in-memory history")
	}

	cache := service.NewMemoryPredictionCache()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			cache = service.NewRedisPredictionCache(redisClient)
		}
		cancel()
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	predictor := predict.NewHTTPClient(cfg.PredictURL, cfg.PredictTimeout(), logger)
	predictionSvc := service.NewPredictionService(logger, predictor, cache, cfg.CacheTTL(), submissions)

	formHandler := apihttp.NewFormHandler(logger, predictionSvc, cfg.HistoryLimit)
	healthHandler := apihttp.NewHealthHandler(logger, checks)
	router := apihttp.NewRouter(logger, cfg.CORSAllowOrigin, formHandler, healthHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("predict_url", cfg.PredictURL),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
