package commands

import (
	"context"
	"errors"

	"makanapa/internal/core/application/views"
	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/ports"
	"makanapa/internal/pkg/errs"
)

// SubmitDialogueTextCommandHandler feeds typed locations into the dialogue.
// Text that arrives while no typed answer is expected is answered with a hint and
// otherwise ignored.
type SubmitDialogueTextCommandHandler struct {
	sessions ports.SessionStore
	notifier ports.Notifier
}

func NewSubmitDialogueTextCommandHandler(
	sessions ports.SessionStore,
	notifier ports.Notifier,
) SubmitDialogueTextCommandHandler {
	return SubmitDialogueTextCommandHandler{
		sessions: sessions,
		notifier: notifier,
	}
}

func (h SubmitDialogueTextCommandHandler) Handle(ctx context.Context, cmd SubmitDialogueTextCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.RequesterID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return h.reply(ctx, cmd, views.StartHint())
	}
	if err != nil {
		return err
	}

	var (
		leg  views.Leg
		next ports.Message
	)
	switch session.State() {
	case dialogue.TypingFromPlace:
		leg = views.Pickup
		err = session.TypeFromPlace(cmd.Text())
		next = views.CategoryMenu(views.DropOff)
	case dialogue.TypingToPlace:
		leg = views.DropOff
		err = session.TypeToPlace(cmd.Text())
		if err == nil {
			draft, draftErr := session.Draft()
			if draftErr != nil {
				return draftErr
			}
			next = views.Summary(draft)
		}
	default:
		return h.reply(ctx, cmd, views.UseButtons())
	}

	if errors.Is(err, errs.ErrValueIsRequired) {
		return h.reply(ctx, cmd, views.PlacePrompt(leg))
	}
	if err != nil {
		return err
	}

	if err := h.sessions.Save(ctx, session); err != nil {
		return err
	}

	return h.reply(ctx, cmd, next)
}

func (h SubmitDialogueTextCommandHandler) reply(ctx context.Context, cmd SubmitDialogueTextCommand, message ports.Message) error {
	_, err := h.notifier.Send(ctx, cmd.ChatID(), message)
	return err
}
