package commands

import (
	"errors"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/errs"
	"makanapa/internal/pkg/guard"
)

var ErrStartDialogueCommandIsNotConstructed = errors.New(
	"StartDialogueCommand must be created via NewStartDialogueCommand constructor",
)

// StartDialogueCommand opens (or restarts) the order dialogue for a requester.
type StartDialogueCommand struct { //nolint:recvcheck //using for validation
	requesterID kernel.UserID
	chatID      int64

	guard guard.ConstructorGuard
}

func NewStartDialogueCommand(requesterID kernel.UserID, chatID int64) (StartDialogueCommand, error) {
	cmd := StartDialogueCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setRequesterID(requesterID),
		cmd.setChatID(chatID),
	); err != nil {
		return StartDialogueCommand{}, err
	}

	return cmd, nil
}

func (c StartDialogueCommand) Validate() error {
	return c.guard.Validate(ErrStartDialogueCommandIsNotConstructed)
}

func (c StartDialogueCommand) RequesterID() kernel.UserID { return c.requesterID }
func (c StartDialogueCommand) ChatID() int64              { return c.chatID }

func (c *StartDialogueCommand) setRequesterID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requesterID = id
	return nil
}

func (c *StartDialogueCommand) setChatID(chatID int64) error {
	if chatID == 0 {
		return errs.NewValueIsRequiredError("chat id")
	}
	c.chatID = chatID
	return nil
}
