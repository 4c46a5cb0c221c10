package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"customer-service/internal/config"
)

const (
	poolMaxConns          = 10
	poolMaxConnIdleTime   = 5 * time.Minute
	poolHealthCheckPeriod = time.Minute
	connectPingTimeout    = 5 * time.Second
)

// NewConnectionPool opens a pgx connection pool against the configured
// database URL and verifies connectivity with a bounded ping before
// returning it.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is empty in configuration")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	poolConfig.MaxConns = poolMaxConns
	poolConfig.MaxConnIdleTime = poolMaxConnIdleTime
	poolConfig.HealthCheckPeriod = poolHealthCheckPeriod

	logger.Info("Connecting to PostgreSQL database",
		"host", poolConfig.ConnConfig.Host, "db", poolConfig.ConnConfig.Database)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectPingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.Error("Failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database on connect: %w", err)
	}

	logger.Info("Connected to PostgreSQL database")
	return pool, nil
}
