package commands

import (
	"errors"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/pkg/errs"
	"makanapa/internal/pkg/guard"
)

var ErrChooseDialogueOptionCommandIsNotConstructed = errors.New(
	"ChooseDialogueOptionCommand must be created via NewChooseDialogueOptionCommand constructor",
)

// ChooseDialogueOptionCommand is a button press inside the dialogue. Source is
// the menu message the button belongs to; it is edited into the next step.
type ChooseDialogueOptionCommand struct { //nolint:recvcheck //using for validation
	requesterID kernel.UserID
	tag         string
	source      kernel.MessageRef

	guard guard.ConstructorGuard
}

func NewChooseDialogueOptionCommand(
	requesterID kernel.UserID,
	tag string,
	source kernel.MessageRef,
) (ChooseDialogueOptionCommand, error) {
	cmd := ChooseDialogueOptionCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setRequesterID(requesterID),
		cmd.setTag(tag),
		cmd.setSource(source),
	); err != nil {
		return ChooseDialogueOptionCommand{}, err
	}

	return cmd, nil
}

func (c ChooseDialogueOptionCommand) Validate() error {
	return c.guard.Validate(ErrChooseDialogueOptionCommandIsNotConstructed)
}

func (c ChooseDialogueOptionCommand) RequesterID() kernel.UserID { return c.requesterID }
func (c ChooseDialogueOptionCommand) Tag() string                { return c.tag }
func (c ChooseDialogueOptionCommand) Source() kernel.MessageRef  { return c.source }

func (c *ChooseDialogueOptionCommand) setRequesterID(id kernel.UserID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requesterID = id
	return nil
}

func (c *ChooseDialogueOptionCommand) setTag(tag string) error {
	if tag == "" {
		return errs.NewValueIsRequiredError("tag")
	}
	c.tag = tag
	return nil
}

func (c *ChooseDialogueOptionCommand) setSource(source kernel.MessageRef) error {
	if err := source.Validate(); err != nil {
		return err
	}
	c.source = source
	return nil
}
