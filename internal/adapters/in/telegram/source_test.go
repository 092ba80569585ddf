package telegram_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"makanapa/internal/adapters/in/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUpdatesAPI struct {
	mock.Mock
}

func (m *MockUpdatesAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	args := m.Called(config)
	return args.Get(0).(tgbotapi.UpdatesChannel)
}

func (m *MockUpdatesAPI) StopReceivingUpdates() {
	m.Called()
}

type MockRequester struct {
	mock.Mock
}

func (m *MockRequester) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	args := m.Called(c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tgbotapi.APIResponse), args.Error(1)
}

type collectingSink struct {
	mu     sync.Mutex
	events []telegram.Event
	err    error
}

func (s *collectingSink) Submit(_ context.Context, ev telegram.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *collectingSink) collected() []telegram.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]telegram.Event(nil), s.events...)
}

func TestPoller_ForwardsUntilChannelCloses(t *testing.T) {
	updates := make(chan tgbotapi.Update, 3)
	updates <- tgbotapi.Update{UpdateID: 1, Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 1001},
		Chat: &tgbotapi.Chat{ID: 1001},
		Text: "Block A",
	}}
	updates <- tgbotapi.Update{UpdateID: 2}
	updates <- tgbotapi.Update{UpdateID: 3, CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: 2002},
		Message: &tgbotapi.Message{MessageID: 9, Chat: &tgbotapi.Chat{ID: -100}},
		Data:    "accept_241103_140509_7",
	}}
	close(updates)

	api := &MockUpdatesAPI{}
	api.On("GetUpdatesChan", tgbotapi.UpdateConfig{
		Timeout:        25,
		AllowedUpdates: telegram.AllowedUpdates,
	}).Return(tgbotapi.UpdatesChannel(updates)).Once()

	sink := &collectingSink{}
	poller := telegram.NewPoller(api, sink, 25, zap.NewNop())

	require.NoError(t, poller.Run(context.Background()))

	events := sink.collected()
	require.Len(t, events, 2)
	assert.Equal(t, telegram.KindText, events[0].Kind)
	assert.Equal(t, telegram.KindCallback, events[1].Kind)
	api.AssertExpectations(t)
}

func TestPoller_StopsOnContext(t *testing.T) {
	updates := make(chan tgbotapi.Update)

	api := &MockUpdatesAPI{}
	api.On("GetUpdatesChan", mock.Anything).Return(tgbotapi.UpdatesChannel(updates)).Once()
	api.On("StopReceivingUpdates").Return().Once()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- telegram.NewPoller(api, &collectingSink{}, 0, zap.NewNop()).Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
	api.AssertExpectations(t)
}

func TestPoller_DropsWhenSinkRefuses(t *testing.T) {
	updates := make(chan tgbotapi.Update, 1)
	updates <- tgbotapi.Update{UpdateID: 1, Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 1001},
		Chat: &tgbotapi.Chat{ID: 1001},
		Text: "hi",
	}}
	close(updates)

	api := &MockUpdatesAPI{}
	api.On("GetUpdatesChan", mock.Anything).Return(tgbotapi.UpdatesChannel(updates)).Once()

	sink := &collectingSink{err: telegram.ErrDispatcherStopped}
	require.NoError(t, telegram.NewPoller(api, sink, 10, zap.NewNop()).Run(context.Background()))
	assert.Empty(t, sink.collected())
}

func TestRegisterWebhook(t *testing.T) {
	api := &MockRequester{}
	api.On("Request", mock.MatchedBy(func(c tgbotapi.WebhookConfig) bool {
		return c.URL.String() == "https://bot.example.com/telegram/s3cret" &&
			assert.ObjectsAreEqual(telegram.AllowedUpdates, c.AllowedUpdates)
	})).Return(&tgbotapi.APIResponse{Ok: true}, nil).Once()

	require.NoError(t, telegram.RegisterWebhook(api, "https://bot.example.com/telegram/s3cret"))
	api.AssertExpectations(t)
}

func TestRegisterWebhook_Failure(t *testing.T) {
	api := &MockRequester{}
	api.On("Request", mock.Anything).Return(nil, errors.New("unauthorized")).Once()

	err := telegram.RegisterWebhook(api, "https://bot.example.com/telegram/s3cret")
	assert.ErrorContains(t, err, "failed to register webhook")
}

func TestDeleteWebhook(t *testing.T) {
	api := &MockRequester{}
	api.On("Request", tgbotapi.DeleteWebhookConfig{}).Return(&tgbotapi.APIResponse{Ok: true}, nil).Once()

	require.NoError(t, telegram.DeleteWebhook(api))
	api.AssertExpectations(t)
}
