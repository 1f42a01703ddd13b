package main

import (
	"log"
	"net/http"
	"time"

	"mental-predictor/internal/config"
	"mental-predictor/internal/encoding"
	apihttp "mental-predictor/internal/http"
	"mental-predictor/internal/model"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadModelServerConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Sin modelo el servidor igual levanta y /predict responde "Model not loaded".
	var m model.Model
	loaded, err := model.Load(cfg.ModelPath)
	if err != nil {
		logger.Warn("model load failed", zap.String("path", cfg.ModelPath), zap.Error(err))
	} else {
		m = loaded
		logger.Info("model loaded",
			zap.String("path", cfg.ModelPath),
			zap.Int("n_features_in", loaded.Info().NFeaturesIn),
		)
	}

	modelHandler := apihttp.NewModelHandler(logger, m, encoding.NewDefaultRowEncoder())
	router := apihttp.NewModelRouter(logger, cfg.CORSAllowOrigin, modelHandler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting model server", zap.String("port", cfg.Port))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
