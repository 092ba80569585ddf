// Package telegram turns Telegram updates into lifecycle and dialogue commands.
//
// Updates arrive from a Source (long polling) or from the webhook route of the
// HTTP adapter, are converted to Events and handed to a Dispatcher. The
// Dispatcher runs the Router for each event on a worker chosen by actor id.
package telegram

import (
	"makanapa/internal/core/domain/model/kernel"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Kind string

const (
	KindCommand  Kind = "command"
	KindText     Kind = "text"
	KindCallback Kind = "callback"
)

// Event is the platform-neutral form of one inbound update.
type Event struct {
	Kind    Kind
	ActorID kernel.UserID
	Handle  kernel.Handle
	ChatID  int64

	// Command is the bot command without the slash, for KindCommand.
	Command string
	// Text is the message text, or for callbacks the text of the message that
	// carried the button.
	Text string

	CallbackID string
	Tag        string
	// Source is the message carrying the pressed button.
	Source kernel.MessageRef
}

// EventFromUpdate converts an update. Updates the bot has no use for (edited
// messages, channel posts, messages without a sender) are reported as not ok.
func EventFromUpdate(update tgbotapi.Update) (Event, bool) {
	switch {
	case update.CallbackQuery != nil:
		return callbackEvent(update.CallbackQuery)
	case update.Message != nil:
		return messageEvent(update.Message)
	default:
		return Event{}, false
	}
}

func messageEvent(msg *tgbotapi.Message) (Event, bool) {
	if msg.From == nil || msg.Chat == nil {
		return Event{}, false
	}

	ev := Event{
		Kind:    KindText,
		ActorID: kernel.UserID(msg.From.ID),
		Handle:  kernel.Handle(msg.From.UserName),
		ChatID:  msg.Chat.ID,
		Text:    msg.Text,
	}
	if msg.IsCommand() {
		ev.Kind = KindCommand
		ev.Command = msg.Command()
	}
	return ev, true
}

func callbackEvent(query *tgbotapi.CallbackQuery) (Event, bool) {
	if query.From == nil || query.Message == nil || query.Message.Chat == nil {
		return Event{}, false
	}

	return Event{
		Kind:       KindCallback,
		ActorID:    kernel.UserID(query.From.ID),
		Handle:     kernel.Handle(query.From.UserName),
		ChatID:     query.Message.Chat.ID,
		Text:       query.Message.Text,
		CallbackID: query.ID,
		Tag:        query.Data,
		Source: kernel.MessageRef{
			ChatID:    query.Message.Chat.ID,
			MessageID: query.Message.MessageID,
		},
	}, true
}
