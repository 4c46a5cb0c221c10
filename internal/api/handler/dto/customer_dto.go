package dto

import (
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
)

// CustomerRequest is the wire shape for creating and updating customers.
// Required fields are pointers so an absent key can be told apart from a zero
// value. ID is accepted so a previously serialized customer can be resubmitted
// as-is; the value is ignored, identity always comes from the URL.
type CustomerRequest struct {
	ID        int64            `json:"id,omitempty"`
	FirstName *string          `json:"first_name"`
	LastName  *string          `json:"last_name"`
	Email     *string          `json:"email"`
	Password  *string          `json:"password"`
	Active    *bool            `json:"active,omitempty"`
	Addresses []AddressRequest `json:"addresses,omitempty"`
}

func (r *CustomerRequest) Validate() error {
	if r.FirstName == nil {
		return apperrors.NewValidationError("first_name", "missing required field")
	}
	if r.LastName == nil {
		return apperrors.NewValidationError("last_name", "missing required field")
	}
	if r.Email == nil {
		return apperrors.NewValidationError("email", "missing required field")
	}
	if r.Password == nil {
		return apperrors.NewValidationError("password", "missing required field")
	}
	for i := range r.Addresses {
		if err := r.Addresses[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToDomain maps the request to a domain customer. Active defaults to true
// when the key is absent.
func (r *CustomerRequest) ToDomain() *customer.Customer {
	cust := customer.NewCustomer(*r.FirstName, *r.LastName, *r.Email, *r.Password)
	if r.Active != nil {
		cust.Active = *r.Active
	}
	for i := range r.Addresses {
		cust.AddAddress(*r.Addresses[i].ToDomain())
	}
	return cust
}

type CustomerResponse struct {
	ID        int64             `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Password  string            `json:"password"`
	Active    bool              `json:"active"`
	Addresses []AddressResponse `json:"addresses"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	addresses := make([]AddressResponse, len(cust.Addresses))
	for i := range cust.Addresses {
		addresses[i] = NewAddressResponse(&cust.Addresses[i])
	}
	return CustomerResponse{
		ID:        cust.ID,
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		Email:     cust.Email,
		Password:  cust.Password,
		Active:    cust.Active,
		Addresses: addresses,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i, cust := range customers {
		responses[i] = NewCustomerResponse(cust)
	}
	return responses
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
