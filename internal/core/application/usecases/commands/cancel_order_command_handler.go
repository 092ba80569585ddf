package commands

import (
	"context"
	"errors"

	"makanapa/internal/core/application/views"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/core/ports"
	"makanapa/internal/pkg/errs"

	"go.uber.org/zap"
)

const operationCancel = "cancel"

// CancelOrderCommandHandler withdraws a pending order on behalf of its customer.
// It races claims through the same conditional transition, so an order is never
// both accepted and cancelled.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	events     ports.OrderEventPublisher
	clock      Clock
	logger     *zap.Logger
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	events ports.OrderEventPublisher,
	clock Clock,
	logger *zap.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		events:     events,
		clock:      clock,
		logger:     logger.With(zap.String("component", "cancel_order")),
	}
}

// Handle returns ErrOrderCannotBeCancelled for unknown orders, orders of another
// customer and orders that already left pending.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	log := h.logger.With(auditFields(operationCancel, cmd.OrderID().String(), cmd.RequesterID())...)

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return h.reject(ctx, cmd, log)
	}
	if err != nil {
		return err
	}
	if !o.IsPending() || !o.BelongsTo(cmd.RequesterID()) {
		return h.reject(ctx, cmd, log)
	}

	now := h.clock()
	if err = o.Cancel(now); err != nil {
		return err
	}

	won, err := h.commit(ctx, o)
	if err != nil {
		return err
	}
	if !won {
		return h.reject(ctx, cmd, log)
	}
	log.Info("order cancelled")

	if err := h.notifier.Edit(ctx, cmd.Source(), views.OrderCancelled()); err != nil {
		log.Warn("failed to confirm cancellation to customer", zap.Error(err))
	}
	if ref := o.RunnerMessage(); !ref.IsZero() {
		if err := h.notifier.Edit(ctx, ref, views.RunnerPostCancelled(o)); err != nil {
			log.Warn("failed to update runner post", zap.Error(err))
		}
	}

	if err := h.events.Publish(ctx, order.NewEvent(order.EventCancelled, o, now)); err != nil {
		log.Warn("failed to publish order event", zap.Error(err))
	}
	return nil
}

func (h CancelOrderCommandHandler) commit(ctx context.Context, o *order.Order) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	err := uow.OrderRepository().Transition(ctx, o, order.Pending)
	if errors.Is(err, errs.ErrStateConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (h CancelOrderCommandHandler) reject(ctx context.Context, cmd CancelOrderCommand, log *zap.Logger) error {
	log.Info("cancel rejected")
	if err := h.notifier.Edit(ctx, cmd.Source(), views.CannotBeCancelled()); err != nil {
		log.Warn("failed to show cancel rejection", zap.Error(err))
	}
	return ErrOrderCannotBeCancelled
}
