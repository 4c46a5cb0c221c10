package customer

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCustomerRepository is a testify mock of Repository shared by the
// service and handler tests.
type MockCustomerRepository struct {
	mock.Mock
}

var _ Repository = (*MockCustomerRepository)(nil)

func (_m *MockCustomerRepository) Create(ctx context.Context, cust *Customer) error {
	ret := _m.Called(ctx, cust)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) Exists(ctx context.Context, customerID int64) (bool, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *MockCustomerRepository) FindAll(ctx context.Context) ([]*Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindByFirstName(ctx context.Context, firstName string) ([]*Customer, error) {
	ret := _m.Called(ctx, firstName)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindByLastName(ctx context.Context, lastName string) ([]*Customer, error) {
	ret := _m.Called(ctx, lastName)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) ([]*Customer, error) {
	ret := _m.Called(ctx, email)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindByActive(ctx context.Context, active bool) ([]*Customer, error) {
	ret := _m.Called(ctx, active)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindByAddressField(ctx context.Context, field AddressField, value string) ([]*Customer, error) {
	ret := _m.Called(ctx, field, value)

	var r0 []*Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) Update(ctx context.Context, cust *Customer) error {
	ret := _m.Called(ctx, cust)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) SetActiveStatus(ctx context.Context, customerID int64, active bool) error {
	ret := _m.Called(ctx, customerID, active)
	return ret.Error(0)
}

func (_m *MockCustomerRepository) Delete(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)
	return ret.Error(0)
}
