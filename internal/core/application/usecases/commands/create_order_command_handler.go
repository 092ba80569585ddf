package commands

import (
	"context"
	"errors"
	"fmt"

	"makanapa/internal/core/application/views"
	"makanapa/internal/core/domain/model/customer"
	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/core/ports"
	"makanapa/internal/pkg/errs"

	"go.uber.org/zap"
)

const operationCreate = "create"

// CreateOrderCommandHandler turns a confirmed draft into a pending order and
// publishes it to the runner channel.
//
// The customer row, the sequence number and the order row, carrying the
// summary message as the customer message, are written in one transaction. Publishing happens after the commit; when it fails the order stays
// pending without a runner message (an orphan) and is neither retried nor
// removed.
type CreateOrderCommandHandler struct {
	uowFactory   UoWFactory
	sessions     ports.SessionStore
	notifier     ports.Notifier
	events       ports.OrderEventPublisher
	clock        Clock
	runnerChatID int64
	logger       *zap.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	sessions ports.SessionStore,
	notifier ports.Notifier,
	events ports.OrderEventPublisher,
	clock Clock,
	runnerChatID int64,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		sessions:     sessions,
		notifier:     notifier,
		events:       events,
		clock:        clock,
		runnerChatID: runnerChatID,
		logger:       logger.With(zap.String("component", "create_order")),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.RequesterID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoActiveDialogue
	}
	if err != nil {
		return err
	}

	draft, err := session.Draft()
	if err != nil {
		return err
	}

	// Ending the dialogue first makes a second press of Confirm a no-op.
	if err := h.sessions.Delete(ctx, cmd.RequesterID()); err != nil {
		return err
	}

	blocked, err := h.isBlocked(ctx, cmd.RequesterID())
	if err != nil {
		return err
	}
	if blocked {
		h.edit(ctx, cmd.Source(), views.Blocked(), "", cmd.RequesterID())
		return ErrCustomerBlocked
	}

	o, err := h.store(ctx, cmd, draft)
	if err != nil {
		return err
	}
	log := h.logger.With(auditFields(operationCreate, o.ID().String(), cmd.RequesterID())...)

	runnerMessage, err := h.notifier.Send(ctx, h.runnerChatID, views.RunnerPost(o))
	if err != nil {
		log.Error("order stored but not published to runners", zap.Error(err))
		h.edit(ctx, cmd.Source(), views.PublishFailed(), o.ID().String(), cmd.RequesterID())
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	o.AttachMessages(o.CustomerMessage(), runnerMessage)
	h.recordMessages(ctx, o, log)

	if ref := h.acknowledge(ctx, cmd, o, log); !ref.IsZero() && ref != o.CustomerMessage() {
		o.AttachMessages(ref, runnerMessage)
		h.recordMessages(ctx, o, log)
	}

	if err := h.events.Publish(ctx, order.NewEvent(order.EventCreated, o, h.clock())); err != nil {
		log.Warn("failed to publish order event", zap.Error(err))
	}

	log.Info("order created")
	return nil
}

func (h CreateOrderCommandHandler) isBlocked(ctx context.Context, id kernel.UserID) (bool, error) {
	c, err := h.uowFactory.Create().CustomerRepository().Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.IsBlocked(), nil
}

func (h CreateOrderCommandHandler) store(ctx context.Context, cmd CreateOrderCommand, draft dialogue.Draft) (*order.Order, error) {
	now := h.clock()

	c, err := customer.NewCustomer(cmd.RequesterID(), cmd.Handle(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CustomerRepository().AddIfAbsent(ctx, c); err != nil {
		return nil, err
	}

	seq, err := uow.SequenceGenerator().Next(ctx)
	if err != nil {
		return nil, err
	}

	id, err := order.NewID(now, seq)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(id, draft.CustomerID, draft.Kind, draft.From, draft.To, now)
	if err != nil {
		return nil, err
	}
	// The summary becomes the order message, so a claim racing the publish
	// still finds it to delete.
	o.AttachMessages(cmd.Source(), kernel.MessageRef{})

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// recordMessages stores the message references after the runner post is out.
// A failure leaves a live post looking like an orphan, so it is logged as an error.
func (h CreateOrderCommandHandler) recordMessages(ctx context.Context, o *order.Order, log *zap.Logger) {
	if err := h.uowFactory.Create().OrderRepository().UpdateMessages(ctx, o); err != nil {
		log.Error("failed to record message references", zap.Error(err))
	}
}

// acknowledge turns the summary into the order message with the cancel button.
// If the summary cannot be edited a fresh message is sent instead.
func (h CreateOrderCommandHandler) acknowledge(
	ctx context.Context,
	cmd CreateOrderCommand,
	o *order.Order,
	log *zap.Logger,
) kernel.MessageRef {
	err := h.notifier.Edit(ctx, cmd.Source(), views.OrderPosted(o))
	if err == nil {
		return cmd.Source()
	}
	log.Warn("failed to edit order summary, sending a new message", zap.Error(err))

	ref, err := h.notifier.Send(ctx, cmd.Source().ChatID, views.OrderPosted(o))
	if err != nil {
		log.Error("customer was not told their order was posted", zap.Error(err))
		return kernel.MessageRef{}
	}
	return ref
}

func (h CreateOrderCommandHandler) edit(
	ctx context.Context,
	ref kernel.MessageRef,
	message ports.Message,
	orderID string,
	actor kernel.UserID,
) {
	if err := h.notifier.Edit(ctx, ref, message); err != nil {
		h.logger.Warn("failed to update customer message",
			append(auditFields(operationCreate, orderID, actor), zap.Error(err))...)
	}
}
