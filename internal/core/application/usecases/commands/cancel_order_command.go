package commands

import (
	"errors"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is a customer pressing Cancel Order on their order message.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     order.ID
	requesterID kernel.UserID
	source      kernel.MessageRef

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(
	orderID order.ID,
	requesterID kernel.UserID,
	source kernel.MessageRef,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequesterID(requesterID),
		cmd.setSource(source),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() order.ID          { return c.orderID }
func (c CancelOrderCommand) RequesterID() kernel.UserID { return c.requesterID }
func (c CancelOrderCommand) Source() kernel.MessageRef  { return c.source }

func (c *CancelOrderCommand) setOrderID(id order.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CancelOrderCommand) setRequesterID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requesterID = id
	return nil
}

func (c *CancelOrderCommand) setSource(source kernel.MessageRef) error {
	if err := source.Validate(); err != nil {
		return err
	}
	c.source = source
	return nil
}
