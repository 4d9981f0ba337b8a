package messaging

import (
	"context"
)

// OrdersPlacedSubject carries events for orders accepted by the order sink.
const OrdersPlacedSubject = "orders.placed"

// OrdersSubjects matches every order subject, used when declaring the stream.
const OrdersSubjects = "orders.>"

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher discards events. Used when messaging is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
