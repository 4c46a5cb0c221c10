package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"customer-service/internal/pkg/apperrors"
)

// schemaStatements bootstrap the two tables. The foreign key carries
// ON DELETE CASCADE so removing a customer removes its addresses at the
// storage layer, not in application code.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customer (
        id BIGSERIAL PRIMARY KEY,
        first_name TEXT NOT NULL,
        last_name TEXT NOT NULL,
        email TEXT NOT NULL,
        password TEXT NOT NULL,
        active BOOLEAN NOT NULL DEFAULT TRUE
    )`,
	`CREATE TABLE IF NOT EXISTS address (
        address_id BIGSERIAL PRIMARY KEY,
        street TEXT NOT NULL,
        city TEXT NOT NULL,
        state TEXT NOT NULL,
        country TEXT NOT NULL,
        pin_code TEXT NOT NULL,
        customer_id BIGINT NOT NULL REFERENCES customer(id) ON DELETE CASCADE
    )`,
	`CREATE INDEX IF NOT EXISTS idx_address_customer_id ON address (customer_id)`,
}

func EnsureSchema(ctx context.Context, db DBPool, logger *slog.Logger) error {
	logger.Info("Ensuring database schema exists...")

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			logger.Error("Failed to execute schema statement", "error", err)
			return fmt.Errorf("%w: failed to ensure schema: %w", apperrors.ErrDatabase, err)
		}
	}

	logger.Info("Database schema is up to date.")
	return nil
}
