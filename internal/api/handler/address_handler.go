package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/address"
	"customer-service/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type AddressHandler struct {
	service address.AddressService
	logger  *slog.Logger
}

func NewAddressHandler(s address.AddressService, l *slog.Logger) *AddressHandler {
	return &AddressHandler{
		service: s,
		logger:  l.With("component", "AddressHandler"),
	}
}

func getAddressIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "addressID")
	if idStr == "" {
		return 0, fmt.Errorf("addressID not found in URL path")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// CreateAddress adds an address to an existing customer.
//
// @Summary Create a new address
// @Description Creates an address under the customer named in the URL. The owning customer must exist; any customer_id or address_id in the body is ignored.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID"
// @Param request body dto.AddressRequest true "Address creation request payload"
// @Success 201 {object} dto.AddressResponse "Address successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/addresses [post]
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var req dto.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.CreateAddress(r.Context(), customerID, req.ToDomain())
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/customers/%d/addresses/%d", customerID, created.AddressID))
	respondJSON(w, http.StatusCreated, dto.NewAddressResponse(created))
}

// ListAddresses returns every address owned by a customer.
//
// @Summary List a customer's addresses
// @Description Returns all addresses of the customer, ordered by address_id. A customer without addresses yields an empty array.
// @Tags Addresses
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {array} dto.AddressResponse "Addresses successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/addresses [get]
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	addresses, err := h.service.ListAddresses(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAddressListResponse(addresses))
}

// GetAddress retrieves a single address of a customer.
//
// @Summary Retrieve address details
// @Description Returns the address only when it exists and is owned by the customer named in the URL.
// @Tags Addresses
// @Produce json
// @Param customerID path int true "Customer ID"
// @Param addressID path int true "Address ID"
// @Success 200 {object} dto.AddressResponse "Address details successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer or address ID"
// @Failure 404 {object} dto.ErrorResponse "Address not found for this customer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/addresses/{addressID} [get]
func (h *AddressHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	customerID, addressID, err := addressPathIDs(r)
	if err != nil {
		respondError(w, err)
		return
	}

	addr, err := h.service.GetAddress(r.Context(), customerID, addressID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAddressResponse(addr))
}

// UpdateAddress performs a full replace of an address's mutable fields.
//
// @Summary Update an address
// @Description Replaces street, city, state, country and pin_code of an existing address. Ownership cannot be moved; customer_id in the body is ignored.
// @Tags Addresses
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID"
// @Param addressID path int true "Address ID"
// @Param request body dto.AddressRequest true "Address update request payload"
// @Success 200 {object} dto.AddressResponse "Address successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Address not found for this customer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/addresses/{addressID} [put]
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	customerID, addressID, err := addressPathIDs(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.UpdateAddress(r.Context(), customerID, addressID, req.ToDomain())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAddressResponse(updated))
}

// DeleteAddress removes an address from a customer.
//
// @Summary Delete an address
// @Description Deletes the address when it is owned by the customer named in the URL. Deleting an absent address, or one owned by another customer, still returns 204.
// @Tags Addresses
// @Param customerID path int true "Customer ID"
// @Param addressID path int true "Address ID"
// @Success 204 "Address successfully deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer or address ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/addresses/{addressID} [delete]
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	customerID, addressID, err := addressPathIDs(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteAddress(r.Context(), customerID, addressID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func addressPathIDs(r *http.Request) (customerID, addressID int64, err error) {
	customerID, err = getCustomerIDFromURL(r)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}
	addressID, err = getAddressIDFromURL(r)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}
	return customerID, addressID, nil
}
