package telegram_test

import (
	"context"
	"strings"
	"sync"

	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/ports"
)

type sentMessage struct {
	Ref     kernel.MessageRef
	Message ports.Message
}

// recordingNotifier plays the messaging platform: every send gets a fresh
// message id in its chat and every call is kept for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	nextID   int
	sent     []sentMessage
	edited   []sentMessage
	deleted  []kernel.MessageRef
	answered []string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{nextID: 100}
}

func (n *recordingNotifier) Send(_ context.Context, chatID int64, message ports.Message) (kernel.MessageRef, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	ref := kernel.MessageRef{ChatID: chatID, MessageID: n.nextID}
	n.sent = append(n.sent, sentMessage{Ref: ref, Message: message})
	return ref, nil
}

func (n *recordingNotifier) Edit(_ context.Context, ref kernel.MessageRef, message ports.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.edited = append(n.edited, sentMessage{Ref: ref, Message: message})
	return nil
}

func (n *recordingNotifier) Delete(_ context.Context, ref kernel.MessageRef) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.deleted = append(n.deleted, ref)
	return nil
}

func (n *recordingNotifier) Answer(_ context.Context, callbackID string, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.answered = append(n.answered, callbackID)
	return nil
}

// lastSent returns the latest message sent to chatID.
func (n *recordingNotifier) lastSent(chatID int64) (sentMessage, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := len(n.sent) - 1; i >= 0; i-- {
		if n.sent[i].Ref.ChatID == chatID {
			return n.sent[i], true
		}
	}
	return sentMessage{}, false
}

// lastEdit returns the latest edit of ref.
func (n *recordingNotifier) lastEdit(ref kernel.MessageRef) (ports.Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := len(n.edited) - 1; i >= 0; i-- {
		if n.edited[i].Ref == ref {
			return n.edited[i].Message, true
		}
	}
	return ports.Message{}, false
}

func (n *recordingNotifier) sentContaining(chatID int64, fragment string) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	count := 0
	for _, s := range n.sent {
		if s.Ref.ChatID == chatID && strings.Contains(s.Message.Text, fragment) {
			count++
		}
	}
	return count
}

func (n *recordingNotifier) answeredCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.answered)
}

func (n *recordingNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
