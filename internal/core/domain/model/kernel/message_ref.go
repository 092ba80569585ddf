package kernel

import "makanapa/internal/pkg/errs"

// MessageRef locates a message previously sent through the messaging boundary.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

func NewMessageRef(chatID int64, messageID int) (MessageRef, error) {
	ref := MessageRef{ChatID: chatID, MessageID: messageID}
	if err := ref.Validate(); err != nil {
		return MessageRef{}, err
	}
	return ref, nil
}

func (r MessageRef) Validate() error {
	if r.ChatID == 0 {
		return errs.NewValueIsRequiredError("chat id")
	}
	if r.MessageID <= 0 {
		return errs.NewValueIsRequiredError("message id")
	}
	return nil
}

// IsZero reports whether the reference was never set.
func (r MessageRef) IsZero() bool {
	return r.ChatID == 0 && r.MessageID == 0
}
