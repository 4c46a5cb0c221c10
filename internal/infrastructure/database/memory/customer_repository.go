package memory

import (
	"context"
	"fmt"

	"customer-service/internal/domain/address"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
)

type CustomerRepository struct {
	store *Store
}

var _ customer.Repository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cust.ID = s.nextCustomerID
	s.nextCustomerID++

	for i := range cust.Addresses {
		addr := &cust.Addresses[i]
		addr.AddressID = s.nextAddressID
		s.nextAddressID++
		addr.CustomerID = cust.ID
		s.addresses[addr.AddressID] = *addr
	}

	row := *cust
	row.Addresses = nil
	s.customers[cust.ID] = row
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cust, ok := s.snapshotCustomer(customerID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cust, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, customerID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.customers[customerID]
	return ok, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	return r.findMatching(func(customer.Customer) bool { return true })
}

func (r *CustomerRepository) FindByFirstName(ctx context.Context, firstName string) ([]*customer.Customer, error) {
	return r.findMatching(func(c customer.Customer) bool { return c.FirstName == firstName })
}

func (r *CustomerRepository) FindByLastName(ctx context.Context, lastName string) ([]*customer.Customer, error) {
	return r.findMatching(func(c customer.Customer) bool { return c.LastName == lastName })
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) ([]*customer.Customer, error) {
	return r.findMatching(func(c customer.Customer) bool { return c.Email == email })
}

func (r *CustomerRepository) FindByActive(ctx context.Context, active bool) ([]*customer.Customer, error) {
	return r.findMatching(func(c customer.Customer) bool { return c.Active == active })
}

func (r *CustomerRepository) FindByAddressField(ctx context.Context, field customer.AddressField, value string) ([]*customer.Customer, error) {
	pick, err := addressFieldPicker(field)
	if err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	parents := map[int64]struct{}{}
	for _, addr := range s.addresses {
		if pick(addr) == value {
			parents[addr.CustomerID] = struct{}{}
		}
	}
	return s.collect(func(c customer.Customer) bool {
		_, ok := parents[c.ID]
		return ok
	}), nil
}

func (r *CustomerRepository) Update(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[cust.ID]; !ok {
		return apperrors.ErrNotFound
	}
	row := *cust
	row.Addresses = nil
	s.customers[cust.ID] = row
	return nil
}

func (r *CustomerRepository) SetActiveStatus(ctx context.Context, customerID int64, active bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cust, ok := s.customers[customerID]
	if !ok {
		return apperrors.ErrNotFound
	}
	cust.Active = active
	s.customers[customerID] = cust
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.customers, customerID)
	for id, addr := range s.addresses {
		if addr.CustomerID == customerID {
			delete(s.addresses, id)
		}
	}
	return nil
}

func (r *CustomerRepository) findMatching(match func(customer.Customer) bool) ([]*customer.Customer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collect(match), nil
}

// collect snapshots every matching customer ordered by ID. Callers must hold
// s.mu.
func (s *Store) collect(match func(customer.Customer) bool) []*customer.Customer {
	ids := make([]int64, 0, len(s.customers))
	for id, cust := range s.customers {
		if match(cust) {
			ids = append(ids, id)
		}
	}
	sortInt64s(ids)

	customers := make([]*customer.Customer, 0, len(ids))
	for _, id := range ids {
		cust, _ := s.snapshotCustomer(id)
		customers = append(customers, cust)
	}
	return customers
}

func addressFieldPicker(field customer.AddressField) (func(address.Address) string, error) {
	switch field {
	case customer.AddressFieldStreet:
		return func(a address.Address) string { return a.Street }, nil
	case customer.AddressFieldCity:
		return func(a address.Address) string { return a.City }, nil
	case customer.AddressFieldState:
		return func(a address.Address) string { return a.State }, nil
	case customer.AddressFieldCountry:
		return func(a address.Address) string { return a.Country }, nil
	case customer.AddressFieldPinCode:
		return func(a address.Address) string { return a.PinCode }, nil
	default:
		return nil, fmt.Errorf("%w: unknown address filter field: %s", apperrors.ErrInvalidArgument, field)
	}
}
