package customer

import (
	"context"
)

// AddressField names an address column usable as a customer filter. Filtering
// on one of these returns the distinct parent customers owning at least one
// matching address.
type AddressField string

const (
	AddressFieldStreet  AddressField = "street"
	AddressFieldCity    AddressField = "city"
	AddressFieldState   AddressField = "state"
	AddressFieldCountry AddressField = "country"
	AddressFieldPinCode AddressField = "pin_code"
)

type Repository interface {
	// Create persists a new customer together with any staged addresses in a
	// single transaction and assigns all surrogate keys.
	Create(ctx context.Context, cust *Customer) error

	// FindByID returns the customer with its address collection hydrated.
	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	Exists(ctx context.Context, customerID int64) (bool, error)

	FindAll(ctx context.Context) ([]*Customer, error)

	FindByFirstName(ctx context.Context, firstName string) ([]*Customer, error)

	FindByLastName(ctx context.Context, lastName string) ([]*Customer, error)

	FindByEmail(ctx context.Context, email string) ([]*Customer, error)

	FindByActive(ctx context.Context, active bool) ([]*Customer, error)

	// FindByAddressField returns the distinct customers having at least one
	// address whose given column equals value. Exact, case-sensitive match.
	FindByAddressField(ctx context.Context, field AddressField, value string) ([]*Customer, error)

	// Update overwrites first_name/last_name/email/password/active of an
	// existing row. ID must already be set; the address collection is not
	// touched.
	Update(ctx context.Context, cust *Customer) error

	SetActiveStatus(ctx context.Context, customerID int64, active bool) error

	// Delete removes the row; owned addresses go with it via the storage
	// layer's cascade.
	Delete(ctx context.Context, customerID int64) error
}
