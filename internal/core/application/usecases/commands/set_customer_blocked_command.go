package commands

import (
	"errors"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/guard"
)

var ErrSetCustomerBlockedCommandIsNotConstructed = errors.New(
	"SetCustomerBlockedCommand must be created via NewSetCustomerBlockedCommand constructor",
)

type SetCustomerBlockedCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UserID
	blocked    bool

	guard guard.ConstructorGuard
}

func NewSetCustomerBlockedCommand(customerID kernel.UserID, blocked bool) (SetCustomerBlockedCommand, error) {
	if err := customerID.Validate(); err != nil {
		return SetCustomerBlockedCommand{}, err
	}

	return SetCustomerBlockedCommand{
		customerID: customerID,
		blocked:    blocked,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SetCustomerBlockedCommand) Validate() error {
	return c.guard.Validate(ErrSetCustomerBlockedCommandIsNotConstructed)
}

func (c SetCustomerBlockedCommand) CustomerID() kernel.UserID { return c.customerID }
func (c SetCustomerBlockedCommand) Blocked() bool             { return c.blocked }
