package commands

import (
	"errors"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/errs"
	"makanapa/internal/pkg/guard"
)

var ErrSubmitDialogueTextCommandIsNotConstructed = errors.New(
	"SubmitDialogueTextCommand must be created via NewSubmitDialogueTextCommand constructor",
)

// SubmitDialogueTextCommand is a plain text message from a requester. The text
// itself may be blank; the handler answers that with the prompt again.
type SubmitDialogueTextCommand struct { //nolint:recvcheck //using for validation
	requesterID kernel.UserID
	chatID      int64
	text        string

	guard guard.ConstructorGuard
}

func NewSubmitDialogueTextCommand(requesterID kernel.UserID, chatID int64, text string) (SubmitDialogueTextCommand, error) {
	cmd := SubmitDialogueTextCommand{guard: guard.NewConstructorGuard(), text: text}

	if err := errors.Join(
		cmd.setRequesterID(requesterID),
		cmd.setChatID(chatID),
	); err != nil {
		return SubmitDialogueTextCommand{}, err
	}

	return cmd, nil
}

func (c SubmitDialogueTextCommand) Validate() error {
	return c.guard.Validate(ErrSubmitDialogueTextCommandIsNotConstructed)
}

func (c SubmitDialogueTextCommand) RequesterID() kernel.UserID { return c.requesterID }
func (c SubmitDialogueTextCommand) ChatID() int64              { return c.chatID }
func (c SubmitDialogueTextCommand) Text() string               { return c.text }

func (c *SubmitDialogueTextCommand) setRequesterID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requesterID = id
	return nil
}

func (c *SubmitDialogueTextCommand) setChatID(chatID int64) error {
	if chatID == 0 {
		return errs.NewValueIsRequiredError("chat id")
	}
	c.chatID = chatID
	return nil
}
