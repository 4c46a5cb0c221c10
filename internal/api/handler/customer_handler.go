package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists):
		status, message = http.StatusConflict, "Resource already exists."
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "customerID")
	if idStr == "" {
		return 0, fmt.Errorf("customerID not found in URL path")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// CreateCustomer handles the creation of a new customer.
//
// @Summary Create a new customer
// @Description Creates a customer from the JSON payload. Staged addresses are persisted with it; any client-supplied id is ignored. When `active` is omitted it defaults to true.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer creation request payload"
// @Success 201 {object} dto.CustomerResponse "Customer successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.service.CreateCustomer(r.Context(), req.ToDomain())
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/customers/%d", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(created))
}

// ListCustomers returns all customers, optionally filtered.
//
// @Summary List customers
// @Description Returns every customer, or the subset matching a single filter query parameter. When several filters are supplied only the highest-precedence one applies: first_name, last_name, email, active, then the address fields street, city, state, country, pin_code. Address filters return the distinct owning customers.
// @Tags Customers
// @Produce json
// @Param first_name query string false "Filter by first name (exact match)"
// @Param last_name query string false "Filter by last name (exact match)"
// @Param email query string false "Filter by email (exact match)"
// @Param active query bool false "Filter by active status"
// @Param city query string false "Filter by address city (exact match)"
// @Success 200 {array} dto.CustomerResponse "Customers successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter value"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter *customer.Filter
	for _, field := range customer.FilterPrecedence {
		if query.Has(string(field)) {
			filter = &customer.Filter{Field: field, Value: query.Get(string(field))}
			break
		}
	}

	customers, err := h.service.ListCustomers(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerListResponse(customers))
}

// GetCustomer retrieves a single customer with its addresses.
//
// @Summary Retrieve customer details
// @Description Returns the customer with its full address collection.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer details successfully retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	cust, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// UpdateCustomer performs a full replace of a customer's mutable fields.
//
// @Summary Update a customer
// @Description Replaces first_name, last_name, email, password and active of an existing customer. The address collection is not touched by this endpoint.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID"
// @Param request body dto.CustomerRequest true "Customer update request payload"
// @Success 200 {object} dto.CustomerResponse "Customer successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [put]
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	cust := req.ToDomain()
	cust.ID = customerID

	updated, err := h.service.UpdateCustomer(r.Context(), cust)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
}

// ActivateCustomer marks a customer active.
//
// @Summary Activate a customer
// @Description Sets the customer's active flag to true. Activating an already active customer is a no-op.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer successfully activated"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/activate [put]
func (h *CustomerHandler) ActivateCustomer(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// DeactivateCustomer marks a customer inactive.
//
// @Summary Deactivate a customer
// @Description Sets the customer's active flag to false. Deactivating an already inactive customer is a no-op.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer successfully deactivated"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID}/deactivate [put]
func (h *CustomerHandler) DeactivateCustomer(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *CustomerHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	cust, err := h.service.SetCustomerActive(r.Context(), customerID, active)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// DeleteCustomer removes a customer and its addresses.
//
// @Summary Delete a customer
// @Description Deletes the customer and, through the storage cascade, every address it owns. Deleting an absent customer still returns 204.
// @Tags Customers
// @Param customerID path int true "Customer ID"
// @Success 204 "Customer successfully deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [delete]
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
