package ports

import (
	"context"

	"makanapa/internal/core/domain/model/kernel"
)

// Button is an inline control. Pressing it delivers Tag back as a callback.
type Button struct {
	Label string
	Tag   string
}

// Message is the platform-neutral form of a chat message.
// Each row of Keyboard is rendered as one line of buttons; a nil Keyboard removes
// any buttons the message had when it is used in an edit.
type Message struct {
	Text     string
	Keyboard [][]Button
}

// Notifier renders messages on the messaging platform. Implementations must bound
// every call in time; none of them retry.
type Notifier interface {
	Send(ctx context.Context, chatID int64, message Message) (kernel.MessageRef, error)
	Edit(ctx context.Context, ref kernel.MessageRef, message Message) error
	Delete(ctx context.Context, ref kernel.MessageRef) error

	// Answer acknowledges a button press. An empty text just stops the client spinner.
	Answer(ctx context.Context, callbackID string, text string) error
}
