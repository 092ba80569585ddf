package commands

import (
	"errors"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/errs"
	"makanapa/internal/pkg/guard"
)

var ErrAbandonDialogueCommandIsNotConstructed = errors.New(
	"AbandonDialogueCommand must be created via NewAbandonDialogueCommand constructor",
)

// AbandonDialogueCommand discards the requester's draft. It comes either from the
// /cancel command, with no source message, or from the Cancel button of the
// order summary, whose message is then edited in place.
type AbandonDialogueCommand struct { //nolint:recvcheck //using for validation
	requesterID kernel.UserID
	chatID      int64
	source      kernel.MessageRef

	guard guard.ConstructorGuard
}

func NewAbandonDialogueCommand(
	requesterID kernel.UserID,
	chatID int64,
	source kernel.MessageRef,
) (AbandonDialogueCommand, error) {
	cmd := AbandonDialogueCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setRequesterID(requesterID),
		cmd.setChatID(chatID),
		cmd.setSource(source),
	); err != nil {
		return AbandonDialogueCommand{}, err
	}

	return cmd, nil
}

func (c AbandonDialogueCommand) Validate() error {
	return c.guard.Validate(ErrAbandonDialogueCommandIsNotConstructed)
}

func (c AbandonDialogueCommand) RequesterID() kernel.UserID { return c.requesterID }
func (c AbandonDialogueCommand) ChatID() int64              { return c.chatID }
func (c AbandonDialogueCommand) Source() kernel.MessageRef  { return c.source }

func (c *AbandonDialogueCommand) setRequesterID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requesterID = id
	return nil
}

func (c *AbandonDialogueCommand) setChatID(chatID int64) error {
	if chatID == 0 {
		return errs.NewValueIsRequiredError("chat id")
	}
	c.chatID = chatID
	return nil
}

func (c *AbandonDialogueCommand) setSource(source kernel.MessageRef) error {
	if source.IsZero() {
		return nil
	}
	if err := source.Validate(); err != nil {
		return err
	}
	c.source = source
	return nil
}
