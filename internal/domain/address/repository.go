package address

import (
	"context"
)

type Repository interface {
	// Create persists a new address and assigns its AddressID. The referenced
	// customer must already exist; the parent check happens before the insert,
	// the foreign key is only a backstop.
	Create(ctx context.Context, addr *Address) error

	FindByID(ctx context.Context, addressID int64) (*Address, error)

	FindByCustomerID(ctx context.Context, customerID int64) ([]*Address, error)

	// Update overwrites street/city/state/country/pin_code/customer_id of an
	// existing row. AddressID must already be set.
	Update(ctx context.Context, addr *Address) error

	Delete(ctx context.Context, addressID int64) error
}

// CustomerChecker is the slice of the customer repository the address service
// needs for parent existence checks.
type CustomerChecker interface {
	Exists(ctx context.Context, customerID int64) (bool, error)
}
