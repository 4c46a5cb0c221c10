package event

import (
	"context"
	"time"
)

// Payload types are deliberately decoupled from the domain structs so the
// wire contract of published events cannot drift with internal refactors.
// Passwords are never part of an event payload.

type AddressPayload struct {
	AddressID  int64  `json:"address_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PinCode    string `json:"pin_code"`
	CustomerID int64  `json:"customer_id"`
}

type CustomerPayload struct {
	CustomerID int64            `json:"customer_id"`
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	Email      string           `json:"email"`
	Active     bool             `json:"active"`
	Addresses  []AddressPayload `json:"addresses"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time       `json:"timestamp"`
	Payload   CustomerPayload `json:"payload"`
}

type CustomerUpdatedEvent struct {
	Timestamp time.Time       `json:"timestamp"`
	Payload   CustomerPayload `json:"payload"`
}

type CustomerDeletedEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	CustomerID int64     `json:"customer_id"`
}

type AddressCreatedEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Payload   AddressPayload `json:"payload"`
}

type AddressDeletedEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	AddressID  int64     `json:"address_id"`
	CustomerID int64     `json:"customer_id"`
}

type Publisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error
	PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error
	PublishCustomerDeleted(ctx context.Context, event CustomerDeletedEvent) error
	PublishAddressCreated(ctx context.Context, event AddressCreatedEvent) error
	PublishAddressDeleted(ctx context.Context, event AddressDeletedEvent) error
}
