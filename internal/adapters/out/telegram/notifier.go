package telegram

import (
	"context"
	"strings"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/ports"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects edits that change nothing. For callers the message already
// looks as requested, so such edits count as done.
const notModified = "message is not modified"

// Notifier implements ports.Notifier. It never retries; the time bound comes from
// the HTTP client the BotAPI was built with.
type Notifier struct {
	api BotAPI
}

func NewNotifier(api BotAPI) *Notifier {
	return &Notifier{api: api}
}

func (n *Notifier) Send(ctx context.Context, chatID int64, message ports.Message) (kernel.MessageRef, error) {
	if err := ctx.Err(); err != nil {
		return kernel.MessageRef{}, err
	}

	cfg := tgbotapi.NewMessage(chatID, message.Text)
	if markup := inlineKeyboard(message.Keyboard); markup != nil {
		cfg.ReplyMarkup = *markup
	}

	sent, err := n.api.Send(cfg)
	if err != nil {
		return kernel.MessageRef{}, err
	}
	return kernel.NewMessageRef(sent.Chat.ID, sent.MessageID)
}

// Edit replaces the text and buttons of ref. A message without a keyboard leaves
// the edited message without buttons.
func (n *Notifier) Edit(ctx context.Context, ref kernel.MessageRef, message ports.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ref.Validate(); err != nil {
		return err
	}

	cfg := tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, message.Text)
	cfg.ReplyMarkup = inlineKeyboard(message.Keyboard)

	_, err := n.api.Request(cfg)
	if err != nil && strings.Contains(err.Error(), notModified) {
		return nil
	}
	return err
}

func (n *Notifier) Delete(ctx context.Context, ref kernel.MessageRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ref.Validate(); err != nil {
		return err
	}

	_, err := n.api.Request(tgbotapi.NewDeleteMessage(ref.ChatID, ref.MessageID))
	return err
}

func (n *Notifier) Answer(ctx context.Context, callbackID string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := n.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

func inlineKeyboard(rows [][]ports.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(rows) == 0 {
		return nil
	}

	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Tag))
		}
		keyboard = append(keyboard, tgbotapi.NewInlineKeyboardRow(buttons...))
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(keyboard...)
	return &markup
}
