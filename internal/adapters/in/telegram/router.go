package telegram

import (
	"context"
	"errors"
	"time"

	"makanapa/internal/core/application/usecases/commands"
	"makanapa/internal/core/application/views"
	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/core/ports"
	"makanapa/internal/metrics"
	"makanapa/internal/pkg/errs"

	"go.uber.org/zap"
)

const (
	commandStart  = "start"
	commandCancel = "cancel"
)

// Handlers groups the command handlers the router dispatches to.
type Handlers struct {
	Start   commands.StartDialogueCommandHandler
	Choose  commands.ChooseDialogueOptionCommandHandler
	Submit  commands.SubmitDialogueTextCommandHandler
	Abandon commands.AbandonDialogueCommandHandler
	Create  commands.CreateOrderCommandHandler
	Claim   commands.ClaimOrderCommandHandler
	Cancel  commands.CancelOrderCommandHandler
}

// Router maps one Event to one command. Callback tags are matched in a fixed
// order: accept_<id>, cancel_<id>, confirm, cancel, then any dialogue option.
type Router struct {
	handlers     Handlers
	notifier     ports.Notifier
	metrics      *metrics.Metrics
	runnerChatID int64
	logger       *zap.Logger
}

func NewRouter(
	handlers Handlers,
	notifier ports.Notifier,
	m *metrics.Metrics,
	runnerChatID int64,
	logger *zap.Logger,
) *Router {
	return &Router{
		handlers:     handlers,
		notifier:     notifier,
		metrics:      m,
		runnerChatID: runnerChatID,
		logger:       logger.With(zap.String("component", "router")),
	}
}

// Route handles ev and returns the outcome of the command it ran. The outcome
// has already been logged and, where the actor needs to know, rendered; callers
// only need it for tests and counting.
func (r *Router) Route(ctx context.Context, ev Event) error {
	started := time.Now()
	defer func() { r.metrics.ObserveEvent(string(ev.Kind), time.Since(started)) }()

	var err error
	switch ev.Kind {
	case KindCommand:
		err = r.command(ctx, ev)
	case KindText:
		err = r.text(ctx, ev)
	case KindCallback:
		err = r.callback(ctx, ev)
	}

	return r.report(ctx, ev, err)
}

func (r *Router) command(ctx context.Context, ev Event) error {
	if ev.ChatID == r.runnerChatID {
		return nil
	}

	switch ev.Command {
	case commandStart:
		cmd, err := commands.NewStartDialogueCommand(ev.ActorID, ev.ChatID)
		if err != nil {
			return err
		}
		return r.handlers.Start.Handle(ctx, cmd)
	case commandCancel:
		cmd, err := commands.NewAbandonDialogueCommand(ev.ActorID, ev.ChatID, ev.Source)
		if err != nil {
			return err
		}
		return r.handlers.Abandon.Handle(ctx, cmd)
	default:
		_, err := r.notifier.Send(ctx, ev.ChatID, views.StartHint())
		return err
	}
}

func (r *Router) text(ctx context.Context, ev Event) error {
	if ev.ChatID == r.runnerChatID {
		return nil
	}

	cmd, err := commands.NewSubmitDialogueTextCommand(ev.ActorID, ev.ChatID, ev.Text)
	if err != nil {
		return err
	}
	return r.handlers.Submit.Handle(ctx, cmd)
}

func (r *Router) callback(ctx context.Context, ev Event) error {
	if err := r.notifier.Answer(ctx, ev.CallbackID, ""); err != nil {
		r.logger.Warn("failed to answer callback", zap.String("callback_id", ev.CallbackID), zap.Error(err))
	}

	if id, ok := views.ParseAcceptTag(ev.Tag); ok {
		return r.claim(ctx, ev, id)
	}
	if id, ok := views.ParseCancelOrderTag(ev.Tag); ok {
		return r.cancel(ctx, ev, id)
	}

	switch ev.Tag {
	case views.ConfirmTag:
		return r.create(ctx, ev)
	case views.DiscardTag:
		cmd, err := commands.NewAbandonDialogueCommand(ev.ActorID, ev.ChatID, ev.Source)
		if err != nil {
			return err
		}
		return r.handlers.Abandon.Handle(ctx, cmd)
	default:
		cmd, err := commands.NewChooseDialogueOptionCommand(ev.ActorID, ev.Tag, ev.Source)
		if err != nil {
			return err
		}
		return r.handlers.Choose.Handle(ctx, cmd)
	}
}

func (r *Router) claim(ctx context.Context, ev Event, id order.ID) error {
	cmd, err := commands.NewClaimOrderCommand(id, ev.ActorID, ev.Handle, ev.Source, ev.Text)
	if err != nil {
		return err
	}

	err = r.handlers.Claim.Handle(ctx, cmd)
	switch {
	case err == nil:
		r.metrics.Claim(metrics.OutcomeWon)
	case errors.Is(err, commands.ErrOrderNoLongerAvailable):
		r.metrics.Claim(metrics.OutcomeLost)
	default:
		r.metrics.Claim(metrics.OutcomeError)
	}
	return err
}

func (r *Router) cancel(ctx context.Context, ev Event, id order.ID) error {
	cmd, err := commands.NewCancelOrderCommand(id, ev.ActorID, ev.Source)
	if err != nil {
		return err
	}

	err = r.handlers.Cancel.Handle(ctx, cmd)
	switch {
	case err == nil:
		r.metrics.Cancellation(metrics.OutcomeDone)
	case errors.Is(err, commands.ErrOrderCannotBeCancelled):
		r.metrics.Cancellation(metrics.OutcomeRejected)
	default:
		r.metrics.Cancellation(metrics.OutcomeError)
	}
	return err
}

func (r *Router) create(ctx context.Context, ev Event) error {
	cmd, err := commands.NewCreateOrderCommand(ev.ActorID, ev.Handle, ev.Source)
	if err != nil {
		return err
	}

	err = r.handlers.Create.Handle(ctx, cmd)
	switch {
	case err == nil:
		r.metrics.OrderCreated()
	case errors.Is(err, commands.ErrPublishFailed):
		r.metrics.OrderCreated()
		r.metrics.PublishFailed()
	}
	return err
}

// report logs err and tells the actor about failures no handler rendered.
func (r *Router) report(ctx context.Context, ev Event, err error) error {
	if err == nil {
		return nil
	}

	log := r.logger.With(
		zap.String("kind", string(ev.Kind)),
		zap.Int64("actor_id", ev.ActorID.Int64()),
		zap.String("tag", ev.Tag),
		zap.String("command", ev.Command),
	)

	switch {
	case errors.Is(err, commands.ErrCustomerBlocked),
		errors.Is(err, commands.ErrOrderNoLongerAvailable),
		errors.Is(err, commands.ErrOrderCannotBeCancelled):
		log.Info("request rejected", zap.Error(err))
	case errors.Is(err, commands.ErrPublishFailed):
		// Logged with the order id by the create handler.
	case errors.Is(err, commands.ErrNoActiveDialogue):
		log.Debug("input without a dialogue", zap.Error(err))
		r.reply(ctx, ev, views.StartHint(), log)
	case errors.Is(err, dialogue.ErrUnexpectedInput),
		errors.Is(err, views.ErrUnknownTag),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		log.Debug("stale or malformed input ignored", zap.Error(err))
	default:
		log.Error("failed to handle event", zap.Error(err))
		r.reply(ctx, ev, views.GenericFailure(), log)
	}
	return err
}

func (r *Router) reply(ctx context.Context, ev Event, message ports.Message, log *zap.Logger) {
	if ev.ChatID == 0 {
		return
	}
	if _, err := r.notifier.Send(ctx, ev.ChatID, message); err != nil {
		log.Warn("failed to reply", zap.Error(err))
	}
}
