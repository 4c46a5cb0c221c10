package customer_test

import (
	"testing"

	"customer-service/internal/domain/address"
	"customer-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
)

func TestNewCustomer(t *testing.T) {
	cust := customer.NewCustomer("Alice", "Wonderland", "alice@example.com", "s3cret")

	assert.NotNil(t, cust, "NewCustomer should return a non-nil customer")
	assert.Equal(t, "Alice", cust.FirstName)
	assert.Equal(t, "Wonderland", cust.LastName)
	assert.Equal(t, "alice@example.com", cust.Email)
	assert.Equal(t, "s3cret", cust.Password)
	assert.True(t, cust.Active, "New customer should be active by default")
	assert.NotNil(t, cust.Addresses, "Address collection should be initialized")
	assert.Empty(t, cust.Addresses)
	assert.Equal(t, int64(0), cust.ID, "ID should be unset before persistence")
}

func TestCustomer_ActivateDeactivate(t *testing.T) {
	cust := customer.NewCustomer("Bob", "Builder", "bob@example.com", "fixit")

	cust.Deactivate()
	assert.False(t, cust.Active, "Deactivate should clear the active flag")

	cust.Activate()
	assert.True(t, cust.Active, "Activate should set the active flag")
}

func TestCustomer_AddAddress(t *testing.T) {
	cust := customer.NewCustomer("Carol", "Danvers", "carol@example.com", "higher")
	cust.ID = 7

	cust.AddAddress(address.Address{
		Street:  "100 W 100 St.",
		City:    "New York",
		State:   "NY",
		Country: "USA",
		PinCode: "11101",
	})

	assert.Len(t, cust.Addresses, 1)
	assert.Equal(t, int64(7), cust.Addresses[0].CustomerID, "Staged address should be pinned to its parent")
	assert.Equal(t, int64(0), cust.Addresses[0].AddressID, "Staged address should have no surrogate key yet")
}
