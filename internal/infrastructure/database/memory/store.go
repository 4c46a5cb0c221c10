// Package memory provides in-process implementations of the domain
// repositories. They back the behavioural test suite, where spinning up
// PostgreSQL per scenario would be wasteful, and are handy for local
// development with no database at hand.
package memory

import (
	"sort"
	"sync"

	"customer-service/internal/domain/address"
	"customer-service/internal/domain/customer"
)

// Store is the shared state behind the memory repositories. Customer and
// address repositories created from the same Store see the same data, so
// deleting a customer cascades to its addresses the way the SQL schema does.
type Store struct {
	mu             sync.Mutex
	customers      map[int64]customer.Customer
	addresses      map[int64]address.Address
	nextCustomerID int64
	nextAddressID  int64
}

func NewStore() *Store {
	return &Store{
		customers:      make(map[int64]customer.Customer),
		addresses:      make(map[int64]address.Address),
		nextCustomerID: 1,
		nextAddressID:  1,
	}
}

// CustomerRepository returns a customer.Repository view over the store.
func (s *Store) CustomerRepository() *CustomerRepository {
	return &CustomerRepository{store: s}
}

// AddressRepository returns an address.Repository view over the store.
func (s *Store) AddressRepository() *AddressRepository {
	return &AddressRepository{store: s}
}

func sortInt64s(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// addressesOf returns the addresses owned by customerID ordered by
// AddressID. Callers must hold s.mu.
func (s *Store) addressesOf(customerID int64) []address.Address {
	owned := []address.Address{}
	for _, addr := range s.addresses {
		if addr.CustomerID == customerID {
			owned = append(owned, addr)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].AddressID < owned[j].AddressID })
	return owned
}

// snapshotCustomer copies the stored row and hydrates its addresses.
// Callers must hold s.mu.
func (s *Store) snapshotCustomer(customerID int64) (*customer.Customer, bool) {
	cust, ok := s.customers[customerID]
	if !ok {
		return nil, false
	}
	cust.Addresses = s.addressesOf(customerID)
	return &cust, true
}
