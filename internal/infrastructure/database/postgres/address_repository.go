package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"customer-service/internal/domain/address"
	"customer-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type AddressRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ address.Repository = (*AddressRepository)(nil)

func NewAddressRepository(db DBPool, logger *slog.Logger) *AddressRepository {
	if db == nil {
		panic("DBPool cannot be nil for AddressRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAddressRepository, using default stderr handler")
	}
	return &AddressRepository{
		db:     db,
		logger: logger.With("component", "AddressRepository"),
	}
}

func (r *AddressRepository) Create(ctx context.Context, addr *address.Address) error {
	if addr == nil {
		return fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new address", slog.Int64("customerID", addr.CustomerID))

	query := `
        INSERT INTO address (street, city, state, country, pin_code, customer_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING address_id`

	err := r.db.QueryRow(ctx, query,
		addr.Street,
		addr.City,
		addr.State,
		addr.Country,
		addr.PinCode,
		addr.CustomerID,
	).Scan(&addr.AddressID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert address", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Address inserted successfully", slog.Int64("addressID", addr.AddressID))
	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, addressID int64) (*address.Address, error) {
	r.logger.DebugContext(ctx, "Attempting to find address by ID")

	query := `
        SELECT address_id, street, city, state, country, pin_code, customer_id
        FROM address
        WHERE address_id = $1`

	var addr address.Address
	err := r.db.QueryRow(ctx, query, addressID).Scan(
		&addr.AddressID,
		&addr.Street,
		&addr.City,
		&addr.State,
		&addr.Country,
		&addr.PinCode,
		&addr.CustomerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Address not found", slog.Int64("addressID", addressID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan address by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get address by ID: %w", apperrors.ErrDatabase, err)
	}

	return &addr, nil
}

func (r *AddressRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*address.Address, error) {
	query := `
        SELECT address_id, street, city, state, country, pin_code, customer_id
        FROM address
        WHERE customer_id = $1
        ORDER BY address_id ASC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query addresses", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query addresses: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	addresses := make([]*address.Address, 0)
	for rows.Next() {
		var addr address.Address
		err := rows.Scan(
			&addr.AddressID,
			&addr.Street,
			&addr.City,
			&addr.State,
			&addr.Country,
			&addr.PinCode,
			&addr.CustomerID,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan address row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan address row: %w", apperrors.ErrDatabase, err)
		}
		addresses = append(addresses, &addr)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating address rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating address rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.DebugContext(ctx, "Finished finding addresses", slog.Int("count", len(addresses)))
	return addresses, nil
}

func (r *AddressRepository) Update(ctx context.Context, addr *address.Address) error {
	if addr == nil {
		return fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to update address", slog.Int64("addressID", addr.AddressID))

	query := `
        UPDATE address
        SET street = $1,
            city = $2,
            state = $3,
            country = $4,
            pin_code = $5,
            customer_id = $6
        WHERE address_id = $7`

	cmdTag, err := r.db.Exec(ctx, query,
		addr.Street,
		addr.City,
		addr.State,
		addr.Country,
		addr.PinCode,
		addr.CustomerID,
		addr.AddressID,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update address", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, address likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Address updated successfully")
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, addressID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete address")

	query := `DELETE FROM address WHERE address_id = $1`

	cmdTag, err := r.db.Exec(ctx, query, addressID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete address", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete address: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, address likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Address deleted successfully")
	return nil
}
