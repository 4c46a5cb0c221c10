package memory

import (
	"context"
	"fmt"

	"customer-service/internal/domain/address"
	"customer-service/internal/pkg/apperrors"
)

type AddressRepository struct {
	store *Store
}

var _ address.Repository = (*AddressRepository)(nil)

func (r *AddressRepository) Create(ctx context.Context, addr *address.Address) error {
	if addr == nil {
		return fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[addr.CustomerID]; !ok {
		return fmt.Errorf("%w: customer with id %d", apperrors.ErrNotFound, addr.CustomerID)
	}

	addr.AddressID = s.nextAddressID
	s.nextAddressID++
	s.addresses[addr.AddressID] = *addr
	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, addressID int64) (*address.Address, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	addr, ok := s.addresses[addressID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &addr, nil
}

func (r *AddressRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*address.Address, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.addressesOf(customerID)
	addresses := make([]*address.Address, 0, len(owned))
	for i := range owned {
		addr := owned[i]
		addresses = append(addresses, &addr)
	}
	return addresses, nil
}

func (r *AddressRepository) Update(ctx context.Context, addr *address.Address) error {
	if addr == nil {
		return fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.addresses[addr.AddressID]; !ok {
		return apperrors.ErrNotFound
	}
	s.addresses[addr.AddressID] = *addr
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, addressID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.addresses[addressID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.addresses, addressID)
	return nil
}
