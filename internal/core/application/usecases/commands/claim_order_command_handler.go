package commands

import (
	"context"
	"errors"

	"makanapa/internal/core/application/views"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/core/domain/model/runner"
	"makanapa/internal/core/ports"
	"makanapa/internal/pkg/errs"

	"go.uber.org/zap"
)

const operationClaim = "claim"

// ClaimOrderCommandHandler resolves claim races.
//
// The pending check on the loaded order is only a shortcut; the decision is made
// by OrderRepository.Transition, which writes only if the stored status is still
// pending. Whoever loses, at either point, gets ErrOrderNoLongerAvailable and a
// "no longer available" view, and nothing is written on their behalf.
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	events     ports.OrderEventPublisher
	clock      Clock
	logger     *zap.Logger
}

func NewClaimOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	events ports.OrderEventPublisher,
	clock Clock,
	logger *zap.Logger,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		events:     events,
		clock:      clock,
		logger:     logger.With(zap.String("component", "claim_order")),
	}
}

func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	log := h.logger.With(auditFields(operationClaim, cmd.OrderID().String(), cmd.RunnerID())...)

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return h.raceLost(ctx, cmd, log)
	}
	if err != nil {
		return err
	}
	if !o.IsPending() {
		return h.raceLost(ctx, cmd, log)
	}

	now := h.clock()
	r, err := runner.NewRunner(cmd.RunnerID(), cmd.RunnerHandle(), now)
	if err != nil {
		return err
	}
	if err = o.Accept(cmd.RunnerID(), now); err != nil {
		return err
	}

	won, err := h.commit(ctx, o, r)
	if err != nil {
		return err
	}
	if !won {
		return h.raceLost(ctx, cmd, log)
	}
	log.Info("order claimed")

	h.notifyClaimed(ctx, cmd, o, log)

	if err := h.events.Publish(ctx, order.NewEvent(order.EventAccepted, o, now)); err != nil {
		log.Warn("failed to publish order event", zap.Error(err))
	}
	return nil
}

// commit reports false when the conditional transition matched no row.
func (h ClaimOrderCommandHandler) commit(ctx context.Context, o *order.Order, r *runner.Runner) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.RunnerRepository().AddIfAbsent(ctx, r); err != nil {
		return false, err
	}

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

func (h ClaimOrderCommandHandler) raceLost(ctx context.Context, cmd ClaimOrderCommand, log *zap.Logger) error {
	log.Info("claim lost")
	if err := h.notifier.Edit(ctx, cmd.Source(), views.NoLongerAvailable(cmd.SourceText())); err != nil {
		log.Warn("failed to show race-lost view", zap.Error(err))
	}
	return ErrOrderNoLongerAvailable
}

// notifyClaimed performs the post-claim side effects. The claim is already
// committed, so each failure is logged and the rest still run.
func (h ClaimOrderCommandHandler) notifyClaimed(
	ctx context.Context,
	cmd ClaimOrderCommand,
	o *order.Order,
	log *zap.Logger,
) {
	if err := h.notifier.Edit(ctx, cmd.Source(), views.RunnerPostAccepted(o, cmd.RunnerHandle())); err != nil {
		log.Warn("failed to update runner post", zap.Error(err))
	}

	if _, err := h.notifier.Send(ctx, o.CustomerID().Int64(), views.CustomerAccepted(o, cmd.RunnerHandle())); err != nil {
		log.Warn("failed to notify customer", zap.Error(err))
	}

	if ref := o.CustomerMessage(); !ref.IsZero() {
		if err := h.notifier.Delete(ctx, ref); err != nil {
			log.Warn("failed to delete superseded customer message", zap.Error(err))
		}
	}

	customerHandle := kernel.Handle("")
	if c, err := h.uowFactory.Create().CustomerRepository().Get(ctx, o.CustomerID()); err == nil {
		customerHandle = c.Handle()
	} else {
		log.Warn("failed to load customer for runner message", zap.Error(err))
	}

	if _, err := h.notifier.Send(ctx, cmd.RunnerID().Int64(), views.RunnerAssignment(o, customerHandle)); err != nil {
		log.Warn("failed to message runner", zap.Error(err))
	}
}
