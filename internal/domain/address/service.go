package address

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"customer-service/internal/event"
	"customer-service/internal/pkg/apperrors"
)

type AddressService interface {
	// CreateAddress persists a new address under the given customer. The
	// parent must exist before the insert; its id is pinned onto the address
	// regardless of what the caller staged.
	CreateAddress(ctx context.Context, customerID int64, addr *Address) (*Address, error)

	ListAddresses(ctx context.Context, customerID int64) ([]*Address, error)

	// GetAddress returns the address only when it exists and belongs to the
	// given customer.
	GetAddress(ctx context.Context, customerID, addressID int64) (*Address, error)

	// UpdateAddress performs a full replace of the mutable fields, with both
	// ids pinned from the caller, never from the body.
	UpdateAddress(ctx context.Context, customerID, addressID int64, addr *Address) (*Address, error)

	// DeleteAddress is idempotent. An ownership mismatch is a silent no-op,
	// not an error.
	DeleteAddress(ctx context.Context, customerID, addressID int64) error
}

var _ AddressService = (*addressService)(nil)

type addressService struct {
	repo      Repository
	customers CustomerChecker
	pub       event.Publisher
	logger    *slog.Logger
}

func NewAddressService(repo Repository, customers CustomerChecker, pub event.Publisher, logger *slog.Logger) AddressService {
	if repo == nil {
		panic("address repository cannot be nil")
	}
	if customers == nil {
		panic("customer checker cannot be nil")
	}
	if pub == nil {
		pub = event.NewNoopPublisher()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAddressService, using default stderr handler")
	}

	return &addressService{
		repo:      repo,
		customers: customers,
		pub:       pub,
		logger:    logger.With(slog.String("component", "addressService")),
	}
}

func (s *addressService) requireCustomer(ctx context.Context, customerID int64) error {
	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check parent customer existence", slog.Any("error", err))
		return err
	}
	if !exists {
		return fmt.Errorf("%w: customer with id %d", apperrors.ErrNotFound, customerID)
	}
	return nil
}

func (s *addressService) CreateAddress(ctx context.Context, customerID int64, addr *Address) (*Address, error) {
	if addr == nil {
		return nil, fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}

	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	addr.AddressID = 0
	addr.CustomerID = customerID

	if err := s.repo.Create(ctx, addr); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist new address", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Address created",
		slog.Int64("addressID", addr.AddressID), slog.Int64("customerID", customerID))
	if err := s.pub.PublishAddressCreated(ctx, event.AddressCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewAddressEventPayload(addr),
	}); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish address created event", slog.Any("error", err))
	}
	return addr, nil
}

func (s *addressService) ListAddresses(ctx context.Context, customerID int64) ([]*Address, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.repo.FindByCustomerID(ctx, customerID)
}

func (s *addressService) GetAddress(ctx context.Context, customerID, addressID int64) (*Address, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	addr, err := s.repo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: address with id %d", apperrors.ErrNotFound, addressID)
		}
		return nil, err
	}
	if !addr.BelongsTo(customerID) {
		return nil, fmt.Errorf("%w: address with id %d for customer %d", apperrors.ErrNotFound, addressID, customerID)
	}
	return addr, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, customerID, addressID int64, addr *Address) (*Address, error) {
	if addr == nil {
		return nil, fmt.Errorf("%w: address cannot be nil", apperrors.ErrInvalidArgument)
	}
	if addressID == 0 {
		s.logger.WarnContext(ctx, "Update called with empty address id field")
		return nil, apperrors.NewValidationError("address_id", "update called with empty id field")
	}

	// The update target must already exist under this customer.
	if _, err := s.GetAddress(ctx, customerID, addressID); err != nil {
		return nil, err
	}

	addr.AddressID = addressID
	addr.CustomerID = customerID

	if err := s.repo.Update(ctx, addr); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: address with id %d", apperrors.ErrNotFound, addressID)
		}
		s.logger.ErrorContext(ctx, "Failed to update address", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Address updated", slog.Int64("addressID", addressID))
	return addr, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, customerID, addressID int64) error {
	addr, err := s.repo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Idempotent delete: nothing to remove.
			return nil
		}
		return err
	}
	if !addr.BelongsTo(customerID) {
		// Ownership mismatch: leave the other customer's address alone.
		s.logger.WarnContext(ctx, "Delete skipped, address belongs to a different customer",
			slog.Int64("addressID", addressID), slog.Int64("customerID", customerID))
		return nil
	}

	if err := s.repo.Delete(ctx, addressID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		s.logger.ErrorContext(ctx, "Failed to delete address", slog.Any("error", err))
		return err
	}

	s.logger.InfoContext(ctx, "Address deleted", slog.Int64("addressID", addressID))
	if pubErr := s.pub.PublishAddressDeleted(ctx, event.AddressDeletedEvent{
		Timestamp:  time.Now(),
		AddressID:  addressID,
		CustomerID: customerID,
	}); pubErr != nil {
		s.logger.ErrorContext(ctx, "Failed to publish address deleted event", slog.Any("error", pubErr))
	}
	return nil
}

func NewAddressEventPayload(addr *Address) event.AddressPayload {
	if addr == nil {
		return event.AddressPayload{}
	}
	return event.AddressPayload{
		AddressID:  addr.AddressID,
		Street:     addr.Street,
		City:       addr.City,
		State:      addr.State,
		Country:    addr.Country,
		PinCode:    addr.PinCode,
		CustomerID: addr.CustomerID,
	}
}
