package queries

import (
	"errors"
	"time"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/pkg/errs"
	"makanapa/internal/pkg/guard"
)

var ErrGetOrphanedOrdersQueryIsNotConstructed = errors.New(
	"GetOrphanedOrdersQuery must be created via NewGetOrphanedOrdersQuery constructor",
)

// GetOrphanedOrdersQuery finds pending orders created before CreatedBefore whose
// runner post was never published. Nothing can reach such an order, so it stays
// pending until someone looks at it.
type GetOrphanedOrdersQuery struct {
	createdBefore time.Time

	guard guard.ConstructorGuard
}

func NewGetOrphanedOrdersQuery(createdBefore time.Time) (GetOrphanedOrdersQuery, error) {
	if createdBefore.IsZero() {
		return GetOrphanedOrdersQuery{}, errs.NewValueIsRequiredError("created before")
	}
	return GetOrphanedOrdersQuery{
		createdBefore: createdBefore,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrphanedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrphanedOrdersQueryIsNotConstructed)
}

func (q GetOrphanedOrdersQuery) CreatedBefore() time.Time { return q.createdBefore }

type GetOrphanedOrdersQueryResponse struct {
	ID         order.ID
	CustomerID kernel.UserID
	CreatedAt  time.Time
}
