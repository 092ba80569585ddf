// Package ports defines the contracts between the order lifecycle core and the
// infrastructure around it: storage, the dialogue session store, the messaging
// platform and the lifecycle event stream.
package ports

import (
	"context"

	"makanapa/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new pending order. The identifier must not exist yet.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// Transition persists a status change of aggregate, conditioned on the stored
	// status still being from. The check and the write are one statement, so of two
	// concurrent transitions on the same order at most one succeeds; the other gets
	// errs.StateConflictError and nothing is written.
	//
	// An accepted order is additionally required to still have no runner, and a
	// cancelled order to still belong to the same customer.
	Transition(ctx context.Context, aggregate *order.Order, from order.Status) error

	// UpdateMessages stores the customer and runner message references of aggregate.
	UpdateMessages(ctx context.Context, aggregate *order.Order) error
}
