package postgres

import (
	"context"
	"regexp"
	"testing"

	"customer-service/internal/domain/address"
	"customer-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func setupAddressRepo(t *testing.T) (context.Context, *AddressRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewAddressRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func TestCreateAddressWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	query := `
        INSERT INTO address (street, city, state, country, pin_code, customer_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING address_id`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		"100 W 100 St.", "New York", "NY", "USA", "11101", int64(1),
	).WillReturnRows(pgxmock.NewRows([]string{"address_id"}).AddRow(int64(10)))

	addr := &address.Address{
		Street: "100 W 100 St.", City: "New York", State: "NY", Country: "USA", PinCode: "11101", CustomerID: 1,
	}
	err := repo.Create(ctx, addr)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), addr.AddressID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCreateAddressTranslatesForeignKeyViolation(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	query := `
        INSERT INTO address (street, city, state, country, pin_code, customer_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING address_id`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		"100 W 100 St.", "New York", "NY", "USA", "11101", int64(42),
	).WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "address_customer_id_fkey"})

	err := repo.Create(ctx, &address.Address{
		Street: "100 W 100 St.", City: "New York", State: "NY", Country: "USA", PinCode: "11101", CustomerID: 42,
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAddressByIDWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	query := `
        SELECT address_id, street, city, state, country, pin_code, customer_id
        FROM address
        WHERE address_id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(addressColumns).
			AddRow(int64(10), "100 W 100 St.", "New York", "NY", "USA", "11101", int64(1)))

	addr, err := repo.FindByID(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), addr.AddressID)
	assert.Equal(t, int64(1), addr.CustomerID)
	assert.Equal(t, "New York", addr.City)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAddressByIDWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	query := `
        SELECT address_id, street, city, state, country, pin_code, customer_id
        FROM address
        WHERE address_id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	addr, err := repo.FindByID(ctx, 42)

	assert.Nil(t, addr)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAddressesByCustomerID(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	query := `
        SELECT address_id, street, city, state, country, pin_code, customer_id
        FROM address
        WHERE customer_id = $1
        ORDER BY address_id ASC`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(addressColumns).
			AddRow(int64(10), "100 W 100 St.", "New York", "NY", "USA", "11101", int64(1)).
			AddRow(int64(11), "28-40 Jackson Ave", "Boston", "MA", "USA", "02101", int64(1)))

	addresses, err := repo.FindByCustomerID(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, addresses, 2)
	assert.Equal(t, int64(11), addresses[1].AddressID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAddressesByCustomerIDWhenNoneExist(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	query := `
        SELECT address_id, street, city, state, country, pin_code, customer_id
        FROM address
        WHERE customer_id = $1
        ORDER BY address_id ASC`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(addressColumns))

	addresses, err := repo.FindByCustomerID(ctx, 7)

	assert.NoError(t, err)
	assert.NotNil(t, addresses)
	assert.Empty(t, addresses)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateAddressWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	query := `
        UPDATE address
        SET street = $1,
            city = $2,
            state = $3,
            country = $4,
            pin_code = $5,
            customer_id = $6
        WHERE address_id = $7`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		"5th Ave", "New York", "NY", "USA", "10001", int64(1), int64(10),
	).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(ctx, &address.Address{
		AddressID: 10, Street: "5th Ave", City: "New York", State: "NY", Country: "USA", PinCode: "10001", CustomerID: 1,
	})

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateAddressWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	query := `
        UPDATE address
        SET street = $1,
            city = $2,
            state = $3,
            country = $4,
            pin_code = $5,
            customer_id = $6
        WHERE address_id = $7`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		"5th Ave", "New York", "NY", "USA", "10001", int64(1), int64(99),
	).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(ctx, &address.Address{
		AddressID: 99, Street: "5th Ave", City: "New York", State: "NY", Country: "USA", PinCode: "10001", CustomerID: 1,
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteAddressWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	query := `DELETE FROM address WHERE address_id = $1`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(ctx, 10)

	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteAddressWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupAddressRepo(t)
	defer mockPool.Close()

	query := `DELETE FROM address WHERE address_id = $1`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(ctx, 42)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
