package commands

import (
	"context"

	"go.uber.org/zap"
)

type SetCustomerBlockedCommandHandler struct {
	uowFactory CustomerUoWFactory
	logger     *zap.Logger
}

func NewSetCustomerBlockedCommandHandler(
	uowFactory CustomerUoWFactory,
	logger *zap.Logger,
) SetCustomerBlockedCommandHandler {
	return SetCustomerBlockedCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With(zap.String("component", "moderation")),
	}
}

// Handle returns an ObjectNotFound error for customers that never ordered.
func (h SetCustomerBlockedCommandHandler) Handle(ctx context.Context, cmd SetCustomerBlockedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	operation := "unblock"
	if cmd.Blocked() {
		operation = "block"
		c.Block()
	} else {
		c.Unblock()
	}

	if err := uow.CustomerRepository().Update(ctx, c); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("customer moderated", auditFields(operation, "", cmd.CustomerID())...)
	return nil
}
