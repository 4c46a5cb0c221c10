package dto

import (
	"customer-service/internal/domain/address"
	"customer-service/internal/pkg/apperrors"
)

// AddressRequest is the wire shape for creating and updating addresses.
// AddressID and CustomerID are accepted for round-tripping a serialized
// address but are ignored; both identifiers come from the URL.
type AddressRequest struct {
	AddressID  int64   `json:"address_id,omitempty"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	Country    *string `json:"country"`
	PinCode    *string `json:"pin_code"`
	CustomerID int64   `json:"customer_id,omitempty"`
}

func (r *AddressRequest) Validate() error {
	if r.Street == nil {
		return apperrors.NewValidationError("street", "missing required field")
	}
	if r.City == nil {
		return apperrors.NewValidationError("city", "missing required field")
	}
	if r.State == nil {
		return apperrors.NewValidationError("state", "missing required field")
	}
	if r.Country == nil {
		return apperrors.NewValidationError("country", "missing required field")
	}
	if r.PinCode == nil {
		return apperrors.NewValidationError("pin_code", "missing required field")
	}
	return nil
}

func (r *AddressRequest) ToDomain() *address.Address {
	return &address.Address{
		Street:  *r.Street,
		City:    *r.City,
		State:   *r.State,
		Country: *r.Country,
		PinCode: *r.PinCode,
	}
}

type AddressResponse struct {
	AddressID  int64  `json:"address_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PinCode    string `json:"pin_code"`
	CustomerID int64  `json:"customer_id"`
}

func NewAddressResponse(addr *address.Address) AddressResponse {
	return AddressResponse{
		AddressID:  addr.AddressID,
		Street:     addr.Street,
		City:       addr.City,
		State:      addr.State,
		Country:    addr.Country,
		PinCode:    addr.PinCode,
		CustomerID: addr.CustomerID,
	}
}

func NewAddressListResponse(addresses []*address.Address) []AddressResponse {
	responses := make([]AddressResponse, len(addresses))
	for i, addr := range addresses {
		responses[i] = NewAddressResponse(addr)
	}
	return responses
}
