package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"customer-service/internal/domain/address"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v3"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

// addressFilterColumns whitelists the address columns customers may be
// filtered by; values never reach the SQL text, only these column names do.
var addressFilterColumns = map[customer.AddressField]string{
	customer.AddressFieldStreet:  "street",
	customer.AddressFieldCity:    "city",
	customer.AddressFieldState:   "state",
	customer.AddressFieldCountry: "country",
	customer.AddressFieldPinCode: "pin_code",
}

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

// Create inserts the customer row and any staged addresses in one
// transaction, assigning all surrogate keys on the way out.
func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("email", cust.Email))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	query := `
        INSERT INTO customer (first_name, last_name, email, password, active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	err = tx.QueryRow(ctx, query,
		cust.FirstName,
		cust.LastName,
		cust.Email,
		cust.Password,
		cust.Active,
	).Scan(&cust.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		r.rollback(ctx, tx)
		return translateDBError(err, r.logger)
	}

	addressQuery := `
        INSERT INTO address (street, city, state, country, pin_code, customer_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING address_id`

	for i := range cust.Addresses {
		addr := &cust.Addresses[i]
		addr.CustomerID = cust.ID
		err = tx.QueryRow(ctx, addressQuery,
			addr.Street,
			addr.City,
			addr.State,
			addr.Country,
			addr.PinCode,
			addr.CustomerID,
		).Scan(&addr.AddressID)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to insert staged address", slog.Any("error", err))
			r.rollback(ctx, tx)
			return translateDBError(err, r.logger)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit customer insert", slog.Any("error", err))
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", err))
	}
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	r.logger.DebugContext(ctx, "Attempting to find customer by ID")

	query := `
        SELECT id, first_name, last_name, email, password, active
        FROM customer
        WHERE id = $1`

	var cust customer.Customer
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&cust.ID,
		&cust.FirstName,
		&cust.LastName,
		&cust.Email,
		&cust.Password,
		&cust.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found", slog.Int64("customerID", customerID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer by ID: %w", apperrors.ErrDatabase, err)
	}

	if err := r.hydrateAddresses(ctx, []*customer.Customer{&cust}); err != nil {
		return nil, err
	}
	return &cust, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, customerID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM customer WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&exists); err != nil {
		r.logger.ErrorContext(ctx, "Failed to check customer existence", slog.Any("error", err))
		return false, fmt.Errorf("%w: failed to check customer existence: %w", apperrors.ErrDatabase, err)
	}
	return exists, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	query := `
        SELECT id, first_name, last_name, email, password, active
        FROM customer
        ORDER BY id ASC`

	return r.findManyByQuery(ctx, query)
}

func (r *CustomerRepository) FindByFirstName(ctx context.Context, firstName string) ([]*customer.Customer, error) {
	query := `
        SELECT id, first_name, last_name, email, password, active
        FROM customer
        WHERE first_name = $1
        ORDER BY id ASC`

	return r.findManyByQuery(ctx, query, firstName)
}

func (r *CustomerRepository) FindByLastName(ctx context.Context, lastName string) ([]*customer.Customer, error) {
	query := `
        SELECT id, first_name, last_name, email, password, active
        FROM customer
        WHERE last_name = $1
        ORDER BY id ASC`

	return r.findManyByQuery(ctx, query, lastName)
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) ([]*customer.Customer, error) {
	query := `
        SELECT id, first_name, last_name, email, password, active
        FROM customer
        WHERE email = $1
        ORDER BY id ASC`

	return r.findManyByQuery(ctx, query, email)
}

func (r *CustomerRepository) FindByActive(ctx context.Context, active bool) ([]*customer.Customer, error) {
	query := `
        SELECT id, first_name, last_name, email, password, active
        FROM customer
        WHERE active = $1
        ORDER BY id ASC`

	return r.findManyByQuery(ctx, query, active)
}

// FindByAddressField joins onto the address table and collapses the result to
// distinct parent customers.
func (r *CustomerRepository) FindByAddressField(ctx context.Context, field customer.AddressField, value string) ([]*customer.Customer, error) {
	column, ok := addressFilterColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: unknown address filter field: %s", apperrors.ErrInvalidArgument, field)
	}

	query := fmt.Sprintf(`
        SELECT DISTINCT c.id, c.first_name, c.last_name, c.email, c.password, c.active
        FROM customer c
        JOIN address a ON a.customer_id = c.id
        WHERE a.%s = $1
        ORDER BY c.id ASC`, column)

	return r.findManyByQuery(ctx, query, value)
}

func (r *CustomerRepository) findManyByQuery(ctx context.Context, query string, args ...any) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		err := rows.Scan(
			&cust.ID,
			&cust.FirstName,
			&cust.LastName,
			&cust.Email,
			&cust.Password,
			&cust.Active,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, &cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	if err := r.hydrateAddresses(ctx, customers); err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) hydrateAddresses(ctx context.Context, customers []*customer.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	ids := make([]int64, len(customers))
	byID := make(map[int64]*customer.Customer, len(customers))
	for i, cust := range customers {
		ids[i] = cust.ID
		byID[cust.ID] = cust
		cust.Addresses = []address.Address{}
	}

	query := `
        SELECT address_id, street, city, state, country, pin_code, customer_id
        FROM address
        WHERE customer_id = ANY($1)
        ORDER BY address_id ASC`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query addresses for customers", slog.Any("error", err))
		return fmt.Errorf("%w: failed to query addresses: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

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
			return fmt.Errorf("%w: failed to scan address row: %w", apperrors.ErrDatabase, err)
		}
		if cust, ok := byID[addr.CustomerID]; ok {
			cust.Addresses = append(cust.Addresses, addr)
		}
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating address rows", slog.Any("error", err))
		return fmt.Errorf("%w: error iterating address rows: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", cust.ID))

	query := `
        UPDATE customer
        SET first_name = $1,
            last_name = $2,
            email = $3,
            password = $4,
            active = $5
        WHERE id = $6`

	cmdTag, err := r.db.Exec(ctx, query,
		cust.FirstName,
		cust.LastName,
		cust.Email,
		cust.Password,
		cust.Active,
		cust.ID,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) SetActiveStatus(ctx context.Context, customerID int64, active bool) error {
	r.logger.InfoContext(ctx, "Attempting to set active status")

	query := `UPDATE customer SET active = $1 WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, active, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute update active status", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update active status: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update active status affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer active status updated successfully")
	return nil
}

// Delete removes the customer row. The address table's ON DELETE CASCADE
// takes the owned addresses with it.
func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete customer")

	query := `DELETE FROM customer WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer deleted successfully")
	return nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}
		if pgErr.Code == "23503" {
			// Foreign key violation: the referenced parent row is gone.
			contextLogger.Warn("Database foreign key violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrNotFound, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
