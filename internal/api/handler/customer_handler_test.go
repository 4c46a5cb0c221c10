package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/address"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	args := m.Called(ctx, cust)
	if created, ok := args.Get(0).(*customer.Customer); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context, filter *customer.Filter) ([]*customer.Customer, error) {
	args := m.Called(ctx, filter)
	if customers, ok := args.Get(0).([]*customer.Customer); ok {
		return customers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	args := m.Called(ctx, cust)
	if updated, ok := args.Get(0).(*customer.Customer); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) SetCustomerActive(ctx context.Context, customerID int64, active bool) (*customer.Customer, error) {
	args := m.Called(ctx, customerID, active)
	if cust, ok := args.Get(0).(*customer.Customer); ok {
		return cust, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func newCustomerHandler(t *testing.T) (*CustomerHandler, *MockCustomerService) {
	t.Helper()
	mockService := new(MockCustomerService)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return NewCustomerHandler(mockService, logger), mockService
}

func withCustomerID(req *http.Request, id string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{Keys: []string{"customerID"}, Values: []string{id}},
	}))
}

func TestCustomerHandlerCreateCustomer(t *testing.T) {
	handler, mockService := newCustomerHandler(t)

	t.Run("creates customer and sets location header", func(t *testing.T) {
		created := &customer.Customer{
			ID: 7, FirstName: "John", LastName: "Doe", Email: "john@example.com", Password: "s3cret", Active: true,
			Addresses: []address.Address{},
		}
		mockService.On("CreateCustomer", mock.Anything, mock.AnythingOfType("*customer.Customer")).Return(created, nil).Once()

		body := `{"first_name":"John","last_name":"Doe","email":"john@example.com","password":"s3cret"}`
		req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "/customers/7", rec.Header().Get("Location"))
		var resp dto.CustomerResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.ID)
		assert.True(t, resp.Active)
		assert.NotNil(t, resp.Addresses)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects payload with missing field", func(t *testing.T) {
		body := `{"first_name":"John","last_name":"Doe","email":"john@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "password", resp.Error.Field)
	})

	t.Run("rejects payload with unknown field", func(t *testing.T) {
		body := `{"first_name":"John","last_name":"Doe","email":"john@example.com","password":"x","nickname":"JD"}`
		req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"first_name":`))
		rec := httptest.NewRecorder()

		handler.CreateCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomerHandlerListCustomers(t *testing.T) {
	t.Run("lists all customers without filter", func(t *testing.T) {
		handler, mockService := newCustomerHandler(t)
		mockService.On("ListCustomers", mock.Anything, (*customer.Filter)(nil)).
			Return([]*customer.Customer{{ID: 1, Addresses: []address.Address{}}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers", nil)
		rec := httptest.NewRecorder()

		handler.ListCustomers(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.CustomerResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("passes single filter through", func(t *testing.T) {
		handler, mockService := newCustomerHandler(t)
		mockService.On("ListCustomers", mock.Anything, &customer.Filter{Field: customer.FilterCity, Value: "New York"}).
			Return([]*customer.Customer{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers?city=New+York", nil)
		rec := httptest.NewRecorder()

		handler.ListCustomers(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("higher precedence filter wins", func(t *testing.T) {
		handler, mockService := newCustomerHandler(t)
		mockService.On("ListCustomers", mock.Anything, &customer.Filter{Field: customer.FilterFirstName, Value: "John"}).
			Return([]*customer.Customer{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers?city=New+York&first_name=John", nil)
		rec := httptest.NewRecorder()

		handler.ListCustomers(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("surfaces invalid filter value", func(t *testing.T) {
		handler, mockService := newCustomerHandler(t)
		mockService.On("ListCustomers", mock.Anything, &customer.Filter{Field: customer.FilterActive, Value: "maybe"}).
			Return(nil, apperrors.NewValidationError("active", "must be true or false")).Once()

		req := httptest.NewRequest(http.MethodGet, "/customers?active=maybe", nil)
		rec := httptest.NewRecorder()

		handler.ListCustomers(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestCustomerHandlerGetCustomer(t *testing.T) {
	handler, mockService := newCustomerHandler(t)

	t.Run("successfully retrieves customer", func(t *testing.T) {
		mockService.On("GetCustomer", mock.Anything, int64(5)).
			Return(&customer.Customer{ID: 5, Addresses: []address.Address{}}, nil).Once()

		req := withCustomerID(httptest.NewRequest(http.MethodGet, "/customers/5", nil), "5")
		rec := httptest.NewRecorder()

		handler.GetCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 404 when customer does not exist", func(t *testing.T) {
		mockService.On("GetCustomer", mock.Anything, int64(42)).Return(nil, apperrors.ErrNotFound).Once()

		req := withCustomerID(httptest.NewRequest(http.MethodGet, "/customers/42", nil), "42")
		rec := httptest.NewRecorder()

		handler.GetCustomer(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 400 for non-numeric id", func(t *testing.T) {
		req := withCustomerID(httptest.NewRequest(http.MethodGet, "/customers/abc", nil), "abc")
		rec := httptest.NewRecorder()

		handler.GetCustomer(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomerHandlerUpdateCustomer(t *testing.T) {
	handler, mockService := newCustomerHandler(t)

	t.Run("pins id from url", func(t *testing.T) {
		mockService.On("UpdateCustomer", mock.Anything, mock.MatchedBy(func(c *customer.Customer) bool {
			return c.ID == 5 && c.FirstName == "Johnny"
		})).Return(&customer.Customer{ID: 5, FirstName: "Johnny", Addresses: []address.Address{}}, nil).Once()

		body := `{"id":999,"first_name":"Johnny","last_name":"Doe","email":"john@example.com","password":"s3cret"}`
		req := withCustomerID(httptest.NewRequest(http.MethodPut, "/customers/5", strings.NewReader(body)), "5")
		rec := httptest.NewRecorder()

		handler.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 404 when customer does not exist", func(t *testing.T) {
		mockService.On("UpdateCustomer", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

		body := `{"first_name":"Johnny","last_name":"Doe","email":"john@example.com","password":"s3cret"}`
		req := withCustomerID(httptest.NewRequest(http.MethodPut, "/customers/42", strings.NewReader(body)), "42")
		rec := httptest.NewRecorder()

		handler.UpdateCustomer(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestCustomerHandlerActivateDeactivate(t *testing.T) {
	handler, mockService := newCustomerHandler(t)

	t.Run("activate returns updated customer", func(t *testing.T) {
		mockService.On("SetCustomerActive", mock.Anything, int64(5), true).
			Return(&customer.Customer{ID: 5, Active: true, Addresses: []address.Address{}}, nil).Once()

		req := withCustomerID(httptest.NewRequest(http.MethodPut, "/customers/5/activate", nil), "5")
		rec := httptest.NewRecorder()

		handler.ActivateCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Active)
		mockService.AssertExpectations(t)
	})

	t.Run("deactivate returns updated customer", func(t *testing.T) {
		mockService.On("SetCustomerActive", mock.Anything, int64(5), false).
			Return(&customer.Customer{ID: 5, Active: false, Addresses: []address.Address{}}, nil).Once()

		req := withCustomerID(httptest.NewRequest(http.MethodPut, "/customers/5/deactivate", nil), "5")
		rec := httptest.NewRecorder()

		handler.DeactivateCustomer(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CustomerResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Active)
		mockService.AssertExpectations(t)
	})
}

func TestCustomerHandlerDeleteCustomer(t *testing.T) {
	handler, mockService := newCustomerHandler(t)

	t.Run("returns 204 on delete", func(t *testing.T) {
		mockService.On("DeleteCustomer", mock.Anything, int64(5)).Return(nil).Once()

		req := withCustomerID(httptest.NewRequest(http.MethodDelete, "/customers/5", nil), "5")
		rec := httptest.NewRecorder()

		handler.DeleteCustomer(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		mockService.AssertExpectations(t)
	})
}
