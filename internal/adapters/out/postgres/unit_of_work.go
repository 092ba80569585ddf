// Package postgres provides the GORM-backed store of the order lifecycle: the
// unit of work, the repositories behind it and the database bootstrap.
//
// The same code runs on PostgreSQL in production and on SQLite for local runs and
// tests. Everything that must be atomic (the sequence increment and the
// conditional status transition) is a single SQL statement, so correctness does
// not depend on the isolation level of either engine.
//
// Typical use from a command handler:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	seq, err := uow.SequenceGenerator().Next(ctx)
//	...
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"makanapa/internal/adapters/out/postgres/customerrepo"
	"makanapa/internal/adapters/out/postgres/orderrepo"
	"makanapa/internal/adapters/out/postgres/runnerrepo"
	"makanapa/internal/adapters/out/postgres/sequencerepo"
	"makanapa/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db           *gorm.DB
	sequenceName string
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, sequenceName: sequencerepo.DefaultName}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:           f.db,
		sequenceName: f.sequenceName,
	}
}

// GormUnitOfWork coordinates one database transaction. It is not safe for
// concurrent use; each handler invocation creates its own.
//
// Repositories returned by the accessor methods are bound to whatever the unit
// of work holds at the moment they are requested:
//   - after Begin and before Commit or Rollback, the open transaction
//   - otherwise the shared pool, so each statement runs on its own
//
// Handlers use the second form for reads that must not hold the transaction
// open while waiting on the messaging platform, and the first for writes.
//
// Example:
//
//	// Read outside any transaction.
//	o, err := factory.Create().OrderRepository().Get(ctx, id)
//
//	// Write the transition and the runner row together.
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.RunnerRepository().AddIfAbsent(ctx, r); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Transition(ctx, o, order.Pending); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
type GormUnitOfWork struct {
	db           *gorm.DB
	tx           *gorm.DB
	sequenceName string
}

// Begin starts a transaction. Calling it again before Commit or Rollback is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. Returns gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when none
// is active, which handlers ignore in their deferred rollback after a commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn())
}

func (uow *GormUnitOfWork) RunnerRepository() ports.RunnerRepository {
	return runnerrepo.NewGormRunnerRepository(uow.conn())
}

func (uow *GormUnitOfWork) SequenceGenerator() ports.SequenceGenerator {
	return sequencerepo.NewGormSequenceGenerator(uow.conn(), uow.sequenceName)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
