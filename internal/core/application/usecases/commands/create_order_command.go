package commands

import (
	"errors"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand confirms the requester's draft. Source is the summary
// message carrying the Confirm button; it becomes the customer's order message.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(requesterID, "aisyah", summaryRef)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrPublishFailed) {
//	    // stored but not visible to runners; the customer was told
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	requesterID kernel.UserID
	handle      kernel.Handle
	source      kernel.MessageRef

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	requesterID kernel.UserID,
	handle kernel.Handle,
	source kernel.MessageRef,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard(), handle: handle}

	if err := errors.Join(
		cmd.setRequesterID(requesterID),
		cmd.setSource(source),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) RequesterID() kernel.UserID { return c.requesterID }
func (c CreateOrderCommand) Handle() kernel.Handle      { return c.handle }
func (c CreateOrderCommand) Source() kernel.MessageRef  { return c.source }

func (c *CreateOrderCommand) setRequesterID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requesterID = id
	return nil
}

func (c *CreateOrderCommand) setSource(source kernel.MessageRef) error {
	if err := source.Validate(); err != nil {
		return err
	}
	c.source = source
	return nil
}
