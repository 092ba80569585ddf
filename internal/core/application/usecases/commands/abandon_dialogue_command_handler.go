package commands

import (
	"context"

	"makanapa/internal/core/application/views"
	"makanapa/internal/core/ports"
)

// AbandonDialogueCommandHandler drops the session. Nothing was persisted for a
// draft, so there is nothing to roll back.
type AbandonDialogueCommandHandler struct {
	sessions ports.SessionStore
	notifier ports.Notifier
}

func NewAbandonDialogueCommandHandler(sessions ports.SessionStore, notifier ports.Notifier) AbandonDialogueCommandHandler {
	return AbandonDialogueCommandHandler{
		sessions: sessions,
		notifier: notifier,
	}
}

func (h AbandonDialogueCommandHandler) Handle(ctx context.Context, cmd AbandonDialogueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.sessions.Delete(ctx, cmd.RequesterID()); err != nil {
		return err
	}

	if cmd.Source().IsZero() {
		_, err := h.notifier.Send(ctx, cmd.ChatID(), views.DialogueCancelled())
		return err
	}
	return h.notifier.Edit(ctx, cmd.Source(), views.DialogueCancelled())
}
