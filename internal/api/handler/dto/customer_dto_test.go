package dto

import (
	"bytes"
	"encoding/json"
	"testing"

	"customer-service/internal/domain/address"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func validCustomerRequest() CustomerRequest {
	return CustomerRequest{
		FirstName: strPtr("John"),
		LastName:  strPtr("Doe"),
		Email:     strPtr("john@example.com"),
		Password:  strPtr("s3cret"),
	}
}

func TestCustomerRequestValidate(t *testing.T) {
	req := validCustomerRequest()
	assert.NoError(t, req.Validate())
}

func TestCustomerRequestValidateReportsMissingField(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*CustomerRequest)
	}{
		{"first_name", func(r *CustomerRequest) { r.FirstName = nil }},
		{"last_name", func(r *CustomerRequest) { r.LastName = nil }},
		{"email", func(r *CustomerRequest) { r.Email = nil }},
		{"password", func(r *CustomerRequest) { r.Password = nil }},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			req := validCustomerRequest()
			tc.mutate(&req)

			err := req.Validate()

			require.ErrorIs(t, err, apperrors.ErrValidation)
			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestCustomerRequestValidateChecksNestedAddresses(t *testing.T) {
	req := validCustomerRequest()
	req.Addresses = []AddressRequest{{
		Street: strPtr("100 W 100 St."), City: strPtr("New York"), State: strPtr("NY"), Country: strPtr("USA"),
	}}

	err := req.Validate()

	require.ErrorIs(t, err, apperrors.ErrValidation)
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "pin_code", vErr.Field)
}

func TestCustomerRequestToDomainDefaultsActive(t *testing.T) {
	req := validCustomerRequest()

	cust := req.ToDomain()

	assert.True(t, cust.Active)
	assert.Empty(t, cust.Addresses)
}

func TestCustomerRequestToDomainHonorsExplicitActive(t *testing.T) {
	req := validCustomerRequest()
	req.Active = boolPtr(false)

	cust := req.ToDomain()

	assert.False(t, cust.Active)
}

func TestCustomerRequestToDomainStagesAddresses(t *testing.T) {
	req := validCustomerRequest()
	req.Addresses = []AddressRequest{{
		Street: strPtr("100 W 100 St."), City: strPtr("New York"), State: strPtr("NY"),
		Country: strPtr("USA"), PinCode: strPtr("11101"),
	}}

	cust := req.ToDomain()

	require.Len(t, cust.Addresses, 1)
	assert.Equal(t, "New York", cust.Addresses[0].City)
}

// A serialized customer must decode back into a request without tripping
// strict field checking, with every field surviving the trip.
func TestCustomerResponseRoundTripsThroughRequest(t *testing.T) {
	cust := &customer.Customer{
		ID: 7, FirstName: "John", LastName: "Doe", Email: "john@example.com", Password: "s3cret", Active: false,
		Addresses: []address.Address{
			{AddressID: 3, Street: "100 W 100 St.", City: "New York", State: "NY", Country: "USA", PinCode: "11101", CustomerID: 7},
		},
	}

	body, err := json.Marshal(NewCustomerResponse(cust))
	require.NoError(t, err)

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	var req CustomerRequest
	require.NoError(t, decoder.Decode(&req))
	require.NoError(t, req.Validate())

	again := req.ToDomain()
	assert.Equal(t, cust.FirstName, again.FirstName)
	assert.Equal(t, cust.LastName, again.LastName)
	assert.Equal(t, cust.Email, again.Email)
	assert.Equal(t, cust.Password, again.Password)
	assert.Equal(t, cust.Active, again.Active)
	require.Len(t, again.Addresses, 1)
	assert.Equal(t, cust.Addresses[0].Street, again.Addresses[0].Street)
	assert.Equal(t, cust.Addresses[0].PinCode, again.Addresses[0].PinCode)
}
