package order

import (
	"time"

	"makanapa/internal/core/domain/model/kernel"
)

// EventType names a committed lifecycle transition.
type EventType string

const (
	EventCreated   EventType = "order.created"
	EventAccepted  EventType = "order.accepted"
	EventCancelled EventType = "order.cancelled"
)

// Event describes a transition after it was committed. It is informational only;
// nothing in the lifecycle depends on an event being delivered.
type Event struct {
	ID         kernel.UUID
	Type       EventType
	OrderID    ID
	CustomerID kernel.UserID
	RunnerID   *kernel.UserID
	Status     Status
	OccurredAt time.Time
}

// NewEvent captures the current state of o.
func NewEvent(eventType EventType, o *Order, occurredAt time.Time) Event {
	return Event{
		ID:         kernel.NewUUID(),
		Type:       eventType,
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		RunnerID:   o.RunnerID(),
		Status:     o.Status(),
		OccurredAt: occurredAt,
	}
}
