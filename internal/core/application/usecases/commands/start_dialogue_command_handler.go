package commands

import (
	"context"
	"errors"

	"makanapa/internal/core/application/views"
	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/ports"
	"makanapa/internal/pkg/errs"

	"go.uber.org/zap"
)

// StartDialogueCommandHandler checks the requester is allowed in, discards any
// dialogue they had open and shows the delivery kind menu.
type StartDialogueCommandHandler struct {
	uowFactory CustomerUoWFactory
	sessions   ports.SessionStore
	notifier   ports.Notifier
	logger     *zap.Logger
}

func NewStartDialogueCommandHandler(
	uowFactory CustomerUoWFactory,
	sessions ports.SessionStore,
	notifier ports.Notifier,
	logger *zap.Logger,
) StartDialogueCommandHandler {
	return StartDialogueCommandHandler{
		uowFactory: uowFactory,
		sessions:   sessions,
		notifier:   notifier,
		logger:     logger.With(zap.String("component", "start_dialogue")),
	}
}

// Handle returns ErrCustomerBlocked for blocked requesters. In that case no
// session exists for the requester afterwards.
func (h StartDialogueCommandHandler) Handle(ctx context.Context, cmd StartDialogueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	c, err := uow.CustomerRepository().Get(ctx, cmd.RequesterID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if c != nil && c.IsBlocked() {
		if err := h.sessions.Delete(ctx, cmd.RequesterID()); err != nil {
			h.logger.Warn("failed to drop session of blocked customer",
				append(auditFields("start", "", cmd.RequesterID()), zap.Error(err))...)
		}
		if _, err := h.notifier.Send(ctx, cmd.ChatID(), views.Blocked()); err != nil {
			h.logger.Warn("failed to notify blocked customer",
				append(auditFields("start", "", cmd.RequesterID()), zap.Error(err))...)
		}
		return ErrCustomerBlocked
	}

	session, err := dialogue.NewSession(cmd.RequesterID())
	if err != nil {
		return err
	}
	if err := h.sessions.Save(ctx, session); err != nil {
		return err
	}

	_, err = h.notifier.Send(ctx, cmd.ChatID(), views.Welcome())
	return err
}
