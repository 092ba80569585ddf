package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// AllowedUpdates are the update types the bot subscribes to.
var AllowedUpdates = []string{"message", "callback_query"}

// UpdatesAPI is the long-polling part of *tgbotapi.BotAPI.
type UpdatesAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Requester is the raw request part of *tgbotapi.BotAPI.
type Requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// EventSink accepts converted events. *Dispatcher implements it.
type EventSink interface {
	Submit(ctx context.Context, ev Event) error
}

// Poller feeds long-polled updates into a sink.
type Poller struct {
	api         UpdatesAPI
	sink        EventSink
	pollTimeout int
	logger      *zap.Logger
}

// NewPoller creates a poller. pollTimeout is the long-poll wait in seconds and
// must stay below the HTTP client timeout of the bot API.
func NewPoller(api UpdatesAPI, sink EventSink, pollTimeout int, logger *zap.Logger) *Poller {
	if pollTimeout < 1 {
		pollTimeout = 1
	}
	return &Poller{
		api:         api,
		sink:        sink,
		pollTimeout: pollTimeout,
		logger:      logger.With(zap.String("component", "poller")),
	}
}

// Run polls until ctx is done or the update channel closes.
func (p *Poller) Run(ctx context.Context) error {
	updates := p.api.GetUpdatesChan(tgbotapi.UpdateConfig{
		Timeout:        p.pollTimeout,
		AllowedUpdates: AllowedUpdates,
	})
	p.logger.Info("long polling started", zap.Int("timeout_seconds", p.pollTimeout))

	for {
		select {
		case <-ctx.Done():
			p.api.StopReceivingUpdates()
			p.logger.Info("long polling stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			p.forward(ctx, update)
		}
	}
}

func (p *Poller) forward(ctx context.Context, update tgbotapi.Update) {
	ev, ok := EventFromUpdate(update)
	if !ok {
		p.logger.Debug("update ignored", zap.Int("update_id", update.UpdateID))
		return
	}
	if err := p.sink.Submit(ctx, ev); err != nil {
		p.logger.Warn("update dropped", zap.Int("update_id", update.UpdateID), zap.Error(err))
	}
}

// RegisterWebhook points Telegram at url. Pending updates are kept.
func RegisterWebhook(api Requester, url string) error {
	cfg, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	cfg.AllowedUpdates = AllowedUpdates

	if _, err := api.Request(cfg); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}
	return nil
}

// DeleteWebhook removes any registered webhook so that long polling works.
func DeleteWebhook(api Requester) error {
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil
}
