package ports

import (
	"context"

	"makanapa/internal/core/domain/model/customer"
	"makanapa/internal/core/domain/model/kernel"
)

type CustomerRepository interface {
	// AddIfAbsent inserts the customer unless a row with the same id exists.
	// An existing row is left untouched, including its blocked flag.
	AddIfAbsent(ctx context.Context, aggregate *customer.Customer) error

	// Get returns errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UserID) (*customer.Customer, error)

	// Update persists the blocked flag of an existing customer.
	Update(ctx context.Context, aggregate *customer.Customer) error
}
