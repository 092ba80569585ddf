package commands

import (
	"errors"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand is a runner pressing Accept on a runner channel post.
// SourceText is the post as the runner currently sees it, used to render the
// race-lost view.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      order.ID
	runnerID     kernel.UserID
	runnerHandle kernel.Handle
	source       kernel.MessageRef
	sourceText   string

	guard guard.ConstructorGuard
}

func NewClaimOrderCommand(
	orderID order.ID,
	runnerID kernel.UserID,
	runnerHandle kernel.Handle,
	source kernel.MessageRef,
	sourceText string,
) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		runnerHandle: runnerHandle,
		sourceText:   sourceText,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRunnerID(runnerID),
		cmd.setSource(source),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) OrderID() order.ID           { return c.orderID }
func (c ClaimOrderCommand) RunnerID() kernel.UserID     { return c.runnerID }
func (c ClaimOrderCommand) RunnerHandle() kernel.Handle { return c.runnerHandle }
func (c ClaimOrderCommand) Source() kernel.MessageRef   { return c.source }
func (c ClaimOrderCommand) SourceText() string          { return c.sourceText }

func (c *ClaimOrderCommand) setOrderID(id order.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ClaimOrderCommand) setRunnerID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.runnerID = id
	return nil
}

func (c *ClaimOrderCommand) setSource(source kernel.MessageRef) error {
	if err := source.Validate(); err != nil {
		return err
	}
	c.source = source
	return nil
}
