package commands

import (
	"context"
	"errors"
	"fmt"

	"makanapa/internal/core/application/views"
	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/core/ports"
	"makanapa/internal/pkg/errs"
)

// ChooseDialogueOptionCommandHandler advances the dialogue by one button step.
// The meaning of a tag depends on the step the session is in: "to_sister" is a
// category while choosing the drop-off category and a place name afterwards.
//
// Confirmation and discarding are separate commands (CreateOrderCommand and
// AbandonDialogueCommand) because they end the dialogue.
type ChooseDialogueOptionCommandHandler struct {
	sessions ports.SessionStore
	notifier ports.Notifier
	catalog  *dialogue.Catalog
}

func NewChooseDialogueOptionCommandHandler(
	sessions ports.SessionStore,
	notifier ports.Notifier,
	catalog *dialogue.Catalog,
) ChooseDialogueOptionCommandHandler {
	return ChooseDialogueOptionCommandHandler{
		sessions: sessions,
		notifier: notifier,
		catalog:  catalog,
	}
}

// Handle returns ErrNoActiveDialogue without a session and
// dialogue.ErrUnexpectedInput (or a validation error) for tags that do not fit
// the current step. In both cases the session is left unchanged.
func (h ChooseDialogueOptionCommandHandler) Handle(ctx context.Context, cmd ChooseDialogueOptionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.RequesterID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoActiveDialogue
	}
	if err != nil {
		return err
	}

	next, err := h.apply(session, cmd.Tag())
	if err != nil {
		return err
	}

	if err := h.sessions.Save(ctx, session); err != nil {
		return err
	}

	return h.notifier.Edit(ctx, cmd.Source(), next)
}

func (h ChooseDialogueOptionCommandHandler) apply(session *dialogue.Session, tag string) (ports.Message, error) {
	switch session.State() {
	case dialogue.ChoosingService:
		kind, err := order.ParseDeliveryKind(tag)
		if err != nil {
			return ports.Message{}, err
		}
		if err := session.ChooseService(kind); err != nil {
			return ports.Message{}, err
		}
		return views.CategoryMenu(views.Pickup), nil

	case dialogue.ChoosingFromCategory:
		category, err := views.ParseCategoryTag(views.Pickup, tag)
		if err != nil {
			return ports.Message{}, err
		}
		if err := session.ChooseFromCategory(category); err != nil {
			return ports.Message{}, err
		}
		return h.placeStep(views.Pickup, category), nil

	case dialogue.ChoosingFromPlace:
		place, err := views.ParsePlaceTag(views.Pickup, tag)
		if err != nil {
			return ports.Message{}, err
		}
		if err := session.ChooseFromPlace(h.catalog, place); err != nil {
			return ports.Message{}, err
		}
		return views.CategoryMenu(views.DropOff), nil

	case dialogue.ChoosingToCategory:
		category, err := views.ParseCategoryTag(views.DropOff, tag)
		if err != nil {
			return ports.Message{}, err
		}
		if err := session.ChooseToCategory(category); err != nil {
			return ports.Message{}, err
		}
		return h.placeStep(views.DropOff, category), nil

	case dialogue.ChoosingToPlace:
		place, err := views.ParsePlaceTag(views.DropOff, tag)
		if err != nil {
			return ports.Message{}, err
		}
		if err := session.ChooseToPlace(h.catalog, place); err != nil {
			return ports.Message{}, err
		}
		draft, err := session.Draft()
		if err != nil {
			return ports.Message{}, err
		}
		return views.Summary(draft), nil

	default:
		return ports.Message{}, fmt.Errorf("%w: %q while %s", dialogue.ErrUnexpectedInput, tag, session.State())
	}
}

func (h ChooseDialogueOptionCommandHandler) placeStep(leg views.Leg, category dialogue.Category) ports.Message {
	if category.IsClosedChoice() {
		return views.PlaceMenu(leg, h.catalog.Places(category))
	}
	return views.PlacePrompt(leg)
}
