package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"mental-predictor/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// El historial tiene poca escritura; un pool chico alcanza.
	poolCfg.MaxConns = 5
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS submissions (
		id          UUID PRIMARY KEY,
		features    JSONB NOT NULL,
		prediction  JSONB,
		result      TEXT NOT NULL DEFAULT '',
		error       TEXT NOT NULL DEFAULT '',
		cache_hit   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS submissions_created_at_idx ON submissions (created_at DESC);
`

// EnsureSchema crea la tabla del historial si no existe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
