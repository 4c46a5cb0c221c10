package address_test

import (
	"testing"

	"customer-service/internal/domain/address"

	"github.com/stretchr/testify/assert"
)

func TestNewAddress(t *testing.T) {
	addr := address.NewAddress("28-40 Jackson Ave", "Long Island City", "NY", "USA", "11101", 42)

	assert.NotNil(t, addr)
	assert.Equal(t, "28-40 Jackson Ave", addr.Street)
	assert.Equal(t, "Long Island City", addr.City)
	assert.Equal(t, "NY", addr.State)
	assert.Equal(t, "USA", addr.Country)
	assert.Equal(t, "11101", addr.PinCode)
	assert.Equal(t, int64(42), addr.CustomerID)
	assert.Equal(t, int64(0), addr.AddressID, "AddressID should be unset before persistence")
}

func TestAddress_BelongsTo(t *testing.T) {
	addr := address.NewAddress("5th Ave", "New York", "NY", "USA", "10001", 42)

	assert.True(t, addr.BelongsTo(42))
	assert.False(t, addr.BelongsTo(43))
}
