// Package commands contains the operations that change lifecycle state: the
// dialogue steps, order creation, claim, cancel and customer moderation.
// Every command is built through a validating constructor and executed by a
// handler that owns its transaction boundary.
package commands

import (
	"context"
	"time"

	"makanapa/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	RunnerRepoFactory interface {
		RunnerRepository() ports.RunnerRepository
	}

	SequenceFactory interface {
		SequenceGenerator() ports.SequenceGenerator
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CustomerUoW is enough for moderation and for the blocked check at dialogue start.
	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
	}

	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	// UoW spans everything an order transition touches.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   seq, err := uow.SequenceGenerator().Next(ctx)
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CustomerRepoFactory
		RunnerRepoFactory
		SequenceFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Clock returns the current time in the zone order identifiers are formatted in.
type Clock func() time.Time
