package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del gateway y del CLI.
type Config struct {
	HTTPPort              string `env:"HTTP_PORT" envDefault:"8080"`
	PredictURL            string `env:"PREDICT_URL" envDefault:"http://127.0.0.1:5000/predict"`
	PredictTimeoutSeconds int    `env:"PREDICT_TIMEOUT_SECONDS" envDefault:"10"`
	DatabaseURL           string `env:"DATABASE_URL"`
	RedisAddr             string `env:"REDIS_ADDR"`
	RedisPassword         string `env:"REDIS_PASSWORD"`
	RedisDB               int    `env:"REDIS_DB" envDefault:"0"`
	CacheTTLMinutes       int    `env:"CACHE_TTL_MINUTES" envDefault:"10"`
	CORSAllowOrigin       string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
	HistoryLimit          int    `env:"HISTORY_LIMIT" envDefault:"50"`
}

// PredictTimeout devuelve el timeout del cliente HTTP de prediccion.
func (c *Config) PredictTimeout() time.Duration {
	return time.Duration(c.PredictTimeoutSeconds) * time.Second
}

// CacheTTL devuelve cuanto vive una prediccion cacheada. 0 desactiva el cache.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// ModelServerConfig es la configuración del servidor de modelo.
type ModelServerConfig struct {
	Port            string `env:"MODEL_PORT" envDefault:"5000"`
	ModelPath       string `env:"MODEL_PATH" envDefault:"model/mental_model.json"`
	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadModelServerConfig carga la configuración del servidor de modelo.
func LoadModelServerConfig() (*ModelServerConfig, error) {
	var cfg ModelServerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
