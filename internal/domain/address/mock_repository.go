package address

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAddressRepository is a testify mock of Repository shared by the service
// and handler tests.
type MockAddressRepository struct {
	mock.Mock
}

var _ Repository = (*MockAddressRepository)(nil)

func (_m *MockAddressRepository) Create(ctx context.Context, addr *Address) error {
	ret := _m.Called(ctx, addr)
	return ret.Error(0)
}

func (_m *MockAddressRepository) FindByID(ctx context.Context, addressID int64) (*Address, error) {
	ret := _m.Called(ctx, addressID)

	var r0 *Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Address)
	}
	return r0, ret.Error(1)
}

func (_m *MockAddressRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*Address, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Address)
	}
	return r0, ret.Error(1)
}

func (_m *MockAddressRepository) Update(ctx context.Context, addr *Address) error {
	ret := _m.Called(ctx, addr)
	return ret.Error(0)
}

func (_m *MockAddressRepository) Delete(ctx context.Context, addressID int64) error {
	ret := _m.Called(ctx, addressID)
	return ret.Error(0)
}

// MockCustomerChecker is a testify mock of CustomerChecker.
type MockCustomerChecker struct {
	mock.Mock
}

var _ CustomerChecker = (*MockCustomerChecker)(nil)

func (_m *MockCustomerChecker) Exists(ctx context.Context, customerID int64) (bool, error) {
	ret := _m.Called(ctx, customerID)
	return ret.Bool(0), ret.Error(1)
}
