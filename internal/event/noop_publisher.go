package event

import "context"

// NoopPublisher satisfies Publisher when event publishing is disabled in the
// configuration. The HTTP contract does not depend on the broker.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (*NoopPublisher) PublishCustomerCreated(context.Context, CustomerCreatedEvent) error {
	return nil
}

func (*NoopPublisher) PublishCustomerUpdated(context.Context, CustomerUpdatedEvent) error {
	return nil
}

func (*NoopPublisher) PublishCustomerDeleted(context.Context, CustomerDeletedEvent) error {
	return nil
}

func (*NoopPublisher) PublishAddressCreated(context.Context, AddressCreatedEvent) error {
	return nil
}

func (*NoopPublisher) PublishAddressDeleted(context.Context, AddressDeletedEvent) error {
	return nil
}
