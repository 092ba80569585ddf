// Package queries contains read-only views over stored orders used by the
// moderation API and the background jobs. They read straight from the database
// and never go through the aggregates.
package queries

import (
	"errors"
	"time"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery lists every order still waiting for a runner, oldest first.
//
// Example:
//
//	query := NewGetPendingOrdersQuery()
//	handler := NewGetPendingOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list pending orders: %w", err)
//	}
type GetPendingOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingOrdersQuery() GetPendingOrdersQuery {
	return GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// GetPendingOrdersQueryResponse is one pending order. Published is false when the
// runner post was never sent.
type GetPendingOrdersQueryResponse struct {
	ID         order.ID
	CustomerID kernel.UserID
	Kind       order.DeliveryKind
	From       string
	To         string
	CreatedAt  time.Time
	Published  bool
}
