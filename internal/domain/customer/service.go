package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"customer-service/internal/event"
	"customer-service/internal/pkg/apperrors"
)

// FilterField names a query parameter customers can be filtered by. The order
// of FilterPrecedence is the tie-break when a request supplies more than one
// filter: the first present wins.
type FilterField string

const (
	FilterFirstName FilterField = "first_name"
	FilterLastName  FilterField = "last_name"
	FilterEmail     FilterField = "email"
	FilterActive    FilterField = "active"
	FilterStreet    FilterField = "street"
	FilterCity      FilterField = "city"
	FilterState     FilterField = "state"
	FilterCountry   FilterField = "country"
	FilterPinCode   FilterField = "pin_code"
)

var FilterPrecedence = []FilterField{
	FilterFirstName,
	FilterLastName,
	FilterEmail,
	FilterActive,
	FilterStreet,
	FilterCity,
	FilterState,
	FilterCountry,
	FilterPinCode,
}

type Filter struct {
	Field FilterField
	Value string
}

type CustomerService interface {
	// CreateCustomer persists a new customer and its staged addresses. Any
	// client-supplied id is ignored; the store assigns the surrogate key.
	CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error)

	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)

	// ListCustomers returns all customers, or the subset matched by the
	// filter. Address-field filters collapse to distinct parent customers.
	ListCustomers(ctx context.Context, filter *Filter) ([]*Customer, error)

	// UpdateCustomer performs a full replace of the mutable fields. A missing
	// id is a validation error, never an implicit create.
	UpdateCustomer(ctx context.Context, cust *Customer) (*Customer, error)

	SetCustomerActive(ctx context.Context, customerID int64, active bool) (*Customer, error)

	// DeleteCustomer is idempotent; deleting an absent customer is a no-op.
	// Owned addresses are removed by the storage layer's cascade.
	DeleteCustomer(ctx context.Context, customerID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   Repository
	pub    event.Publisher
	logger *slog.Logger
}

func NewCustomerService(repo Repository, pub event.Publisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if pub == nil {
		pub = event.NewNoopPublisher()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	// id must be unset so the store assigns the next surrogate key.
	cust.ID = 0

	if err := s.repo.Create(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist new customer", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Customer created", slog.Int64("customerID", cust.ID))
	s.publishCustomerEvent(ctx, cust, routingCreated)
	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer with id %d", apperrors.ErrNotFound, customerID)
		}
		return nil, err
	}
	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context, filter *Filter) ([]*Customer, error) {
	if filter == nil {
		return s.repo.FindAll(ctx)
	}

	s.logger.DebugContext(ctx, "Listing customers with filter",
		slog.String("field", string(filter.Field)), slog.String("value", filter.Value))

	switch filter.Field {
	case FilterFirstName:
		return s.repo.FindByFirstName(ctx, filter.Value)
	case FilterLastName:
		return s.repo.FindByLastName(ctx, filter.Value)
	case FilterEmail:
		return s.repo.FindByEmail(ctx, filter.Value)
	case FilterActive:
		active, err := strconv.ParseBool(filter.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid boolean for active filter: %s", apperrors.ErrInvalidArgument, filter.Value)
		}
		return s.repo.FindByActive(ctx, active)
	case FilterStreet, FilterCity, FilterState, FilterCountry, FilterPinCode:
		return s.repo.FindByAddressField(ctx, AddressField(filter.Field), filter.Value)
	default:
		return nil, fmt.Errorf("%w: unknown filter field: %s", apperrors.ErrInvalidArgument, filter.Field)
	}
}

func (s *customerService) UpdateCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	if cust.ID == 0 {
		s.logger.WarnContext(ctx, "Update called with empty id field")
		return nil, apperrors.NewValidationError("id", "update called with empty id field")
	}

	if err := s.repo.Update(ctx, cust); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer with id %d", apperrors.ErrNotFound, cust.ID)
		}
		s.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, cust.ID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Customer updated", slog.Int64("customerID", updated.ID))
	s.publishCustomerEvent(ctx, updated, routingUpdated)
	return updated, nil
}

func (s *customerService) SetCustomerActive(ctx context.Context, customerID int64, active bool) (*Customer, error) {
	if err := s.repo.SetActiveStatus(ctx, customerID, active); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer with id %d", apperrors.ErrNotFound, customerID)
		}
		s.logger.ErrorContext(ctx, "Failed to set customer active status", slog.Any("error", err))
		return nil, err
	}

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Customer active status set",
		slog.Int64("customerID", customerID), slog.Bool("active", active))
	s.publishCustomerEvent(ctx, cust, routingUpdated)
	return cust, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	err := s.repo.Delete(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Idempotent delete: removing an absent customer is a success.
			s.logger.InfoContext(ctx, "Delete of absent customer treated as no-op", slog.Int64("customerID", customerID))
			return nil
		}
		s.logger.ErrorContext(ctx, "Failed to delete customer", slog.Any("error", err))
		return err
	}

	s.logger.InfoContext(ctx, "Customer deleted", slog.Int64("customerID", customerID))
	if pubErr := s.pub.PublishCustomerDeleted(ctx, event.CustomerDeletedEvent{
		Timestamp:  time.Now(),
		CustomerID: customerID,
	}); pubErr != nil {
		s.logger.ErrorContext(ctx, "Failed to publish customer deleted event", slog.Any("error", pubErr))
	}
	return nil
}

type customerRouting int

const (
	routingCreated customerRouting = iota
	routingUpdated
)

func (s *customerService) publishCustomerEvent(ctx context.Context, cust *Customer, routing customerRouting) {
	payload := NewCustomerEventPayload(cust)
	now := time.Now()

	var err error
	switch routing {
	case routingCreated:
		err = s.pub.PublishCustomerCreated(ctx, event.CustomerCreatedEvent{Timestamp: now, Payload: payload})
	case routingUpdated:
		err = s.pub.PublishCustomerUpdated(ctx, event.CustomerUpdatedEvent{Timestamp: now, Payload: payload})
	}
	if err != nil {
		// The store is the source of truth; a publish failure never fails the
		// request.
		s.logger.ErrorContext(ctx, "Failed to publish customer event", slog.Any("error", err))
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerPayload {
	if cust == nil {
		return event.CustomerPayload{}
	}
	addresses := make([]event.AddressPayload, len(cust.Addresses))
	for i, addr := range cust.Addresses {
		addresses[i] = event.AddressPayload{
			AddressID:  addr.AddressID,
			Street:     addr.Street,
			City:       addr.City,
			State:      addr.State,
			Country:    addr.Country,
			PinCode:    addr.PinCode,
			CustomerID: addr.CustomerID,
		}
	}
	return event.CustomerPayload{
		CustomerID: cust.ID,
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		Email:      cust.Email,
		Active:     cust.Active,
		Addresses:  addresses,
	}
}
