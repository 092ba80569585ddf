package telegram_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"makanapa/internal/adapters/in/telegram"
	"makanapa/internal/adapters/out/kafka"
	"makanapa/internal/adapters/out/postgres"
	"makanapa/internal/adapters/out/postgres/testdb"
	"makanapa/internal/adapters/out/sessionstore"
	"makanapa/internal/core/application/usecases/commands"
	"makanapa/internal/core/application/usecases/queries"
	"makanapa/internal/core/application/views"
	"makanapa/internal/core/domain/model/customer"
	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/metrics"
	"makanapa/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	runnerChat int64 = -1001234567890

	customerID kernel.UserID = 1001
	runnerA    kernel.UserID = 2002
	runnerB    kernel.UserID = 2003
)

type uowFactory struct {
	f *postgres.GormUnitOfWorkFactory
}

func (u uowFactory) Create() commands.UoW { return u.f.Create() }

type orderUoWFactory struct {
	f *postgres.GormUnitOfWorkFactory
}

func (u orderUoWFactory) Create() commands.OrderUoW { return u.f.Create() }

type customerUoWFactory struct {
	f *postgres.GormUnitOfWorkFactory
}

func (u customerUoWFactory) Create() commands.CustomerUoW { return u.f.Create() }

type RouterSuite struct {
	suite.Suite

	ctx      context.Context
	db       *gorm.DB
	factory  *postgres.GormUnitOfWorkFactory
	sessions *sessionstore.MemoryStore
	notifier *recordingNotifier
	registry *prometheus.Registry
	router   *telegram.Router

	callbacks int
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testdb.NewSQLite(s.T())
	s.factory = postgres.NewGormUnitOfWorkFactory(s.db)
	s.sessions = sessionstore.NewMemoryStore()
	s.notifier = newRecordingNotifier()
	s.registry = prometheus.NewRegistry()
	s.callbacks = 0

	clock := func() time.Time { return time.Date(2024, 11, 3, 14, 5, 9, 0, time.UTC) }
	logger := zap.NewNop()
	events := kafka.NoopPublisher{}
	uows := uowFactory{s.factory}

	handlers := telegram.Handlers{
		Start:   commands.NewStartDialogueCommandHandler(customerUoWFactory{s.factory}, s.sessions, s.notifier, logger),
		Choose:  commands.NewChooseDialogueOptionCommandHandler(s.sessions, s.notifier, dialogue.DefaultCatalog()),
		Submit:  commands.NewSubmitDialogueTextCommandHandler(s.sessions, s.notifier),
		Abandon: commands.NewAbandonDialogueCommandHandler(s.sessions, s.notifier),
		Create:  commands.NewCreateOrderCommandHandler(uows, s.sessions, s.notifier, events, clock, runnerChat, logger),
		Claim:   commands.NewClaimOrderCommandHandler(uows, s.notifier, events, clock, logger),
		Cancel:  commands.NewCancelOrderCommandHandler(orderUoWFactory{s.factory}, s.notifier, events, clock, logger),
	}
	s.router = telegram.NewRouter(handlers, s.notifier, metrics.New(s.registry), runnerChat, logger)
}

func (s *RouterSuite) route(ev telegram.Event) error {
	return s.router.Route(s.ctx, ev)
}

func (s *RouterSuite) command(actor kernel.UserID, name string) telegram.Event {
	return telegram.Event{
		Kind:    telegram.KindCommand,
		ActorID: actor,
		Handle:  "aisyah",
		ChatID:  actor.Int64(),
		Command: name,
		Text:    "/" + name,
	}
}

func (s *RouterSuite) text(actor kernel.UserID, body string) telegram.Event {
	return telegram.Event{
		Kind:    telegram.KindText,
		ActorID: actor,
		Handle:  "aisyah",
		ChatID:  actor.Int64(),
		Text:    body,
	}
}

func (s *RouterSuite) press(actor kernel.UserID, handle kernel.Handle, source sentMessage, tag string) telegram.Event {
	s.callbacks++
	return telegram.Event{
		Kind:       telegram.KindCallback,
		ActorID:    actor,
		Handle:     handle,
		ChatID:     source.Ref.ChatID,
		Text:       source.Message.Text,
		CallbackID: fmt.Sprintf("cb-%d", s.callbacks),
		Tag:        tag,
		Source:     source.Ref,
	}
}

func (s *RouterSuite) lastSent(chatID int64) sentMessage {
	msg, ok := s.notifier.lastSent(chatID)
	s.Require().True(ok, "nothing sent to chat %d", chatID)
	return msg
}

func (s *RouterSuite) getOrder(id order.ID) *order.Order {
	o, err := s.factory.Create().OrderRepository().Get(s.ctx, id)
	s.Require().NoError(err)
	return o
}

// placeOrder walks the customer through the dialogue up to a published order
// and returns the order id, the runner post and the customer's order message.
func (s *RouterSuite) placeOrder() (order.ID, sentMessage, sentMessage) {
	chat := customerID.Int64()

	s.Require().NoError(s.route(s.command(customerID, "start")))
	welcome := s.lastSent(chat)
	s.Equal(views.Welcome(), welcome.Message)

	s.Require().NoError(s.route(s.press(customerID, "aisyah", welcome, "food")))
	s.Require().NoError(s.route(s.press(customerID, "aisyah", welcome, "in_uia")))
	s.Require().NoError(s.route(s.text(customerID, "Block A")))

	menu := s.lastSent(chat)
	s.Equal(views.CategoryMenu(views.DropOff), menu.Message)

	s.Require().NoError(s.route(s.press(customerID, "aisyah", menu, "to_sister")))
	s.Require().NoError(s.route(s.press(customerID, "aisyah", menu, "to_Safiyyah")))

	summary, ok := s.notifier.lastEdit(menu.Ref)
	s.Require().True(ok)
	s.Contains(summary.Text, "From: Block A")
	s.Contains(summary.Text, "To: Safiyyah")

	s.Require().NoError(s.route(s.press(customerID, "aisyah", sentMessage{Ref: menu.Ref, Message: summary}, views.ConfirmTag)))

	post := s.lastSent(runnerChat)
	s.Require().Len(post.Message.Keyboard, 1)
	id, ok := views.ParseAcceptTag(post.Message.Keyboard[0][0].Tag)
	s.Require().True(ok)

	ack, ok := s.notifier.lastEdit(menu.Ref)
	s.Require().True(ok)
	return id, post, sentMessage{Ref: menu.Ref, Message: ack}
}

func (s *RouterSuite) Test_DialogueCreatesPendingOrder() {
	id, post, ack := s.placeOrder()

	s.Equal("241103_140509_1", id.String())
	s.Equal(views.AcceptTag(id), post.Message.Keyboard[0][0].Tag)
	s.Equal("Accept Order", post.Message.Keyboard[0][0].Label)
	s.Equal(views.CancelOrderTag(id), ack.Message.Keyboard[0][0].Tag)

	pending, err := queries.NewGetPendingOrdersQueryHandler(s.db).Handle(s.ctx, queries.NewGetPendingOrdersQuery())
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(id, pending[0].ID)
	s.Equal(order.Food, pending[0].Kind)
	s.Equal("Block A", pending[0].From)
	s.Equal("Safiyyah", pending[0].To)
	s.True(pending[0].Published)

	o := s.getOrder(id)
	s.Equal(order.Pending, o.Status())
	s.Equal(post.Ref, o.RunnerMessage())
	s.Equal(ack.Ref, o.CustomerMessage())

	_, err = s.sessions.Get(s.ctx, customerID)
	s.ErrorIs(err, errs.ErrObjectNotFound)

	// Every button press got an answer.
	s.Equal(s.callbacks, s.notifier.answeredCount())
}

func (s *RouterSuite) Test_ConcurrentClaimsHaveOneWinner() {
	id, post, _ := s.placeOrder()

	claims := map[kernel.UserID]telegram.Event{
		runnerA: s.press(runnerA, "runner_a", post, views.AcceptTag(id)),
		runnerB: s.press(runnerB, "runner_b", post, views.AcceptTag(id)),
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[kernel.UserID]error)
	)
	start := make(chan struct{})
	for runnerID, ev := range claims {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := s.router.Route(s.ctx, ev)
			mu.Lock()
			results[runnerID] = err
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()

	var winner, loser kernel.UserID
	for runnerID, err := range results {
		if err == nil {
			s.Zero(winner, "two claims succeeded")
			winner = runnerID
			continue
		}
		s.ErrorIs(err, commands.ErrOrderNoLongerAvailable)
		loser = runnerID
	}
	s.Require().NotZero(winner)
	s.Require().NotZero(loser)

	o := s.getOrder(id)
	s.Equal(order.Accepted, o.Status())
	s.Require().NotNil(o.RunnerID())
	s.Equal(winner, *o.RunnerID())
	s.NotNil(o.AcceptedAt())

	s.Equal(1, s.notifier.sentContaining(winner.Int64(), "You have accepted the order #"+id.String()))
	s.Equal(0, s.notifier.sentContaining(loser.Int64(), "You have accepted"))
	s.Equal(1, s.notifier.sentContaining(customerID.Int64(), "✅ Accepted by @runner_"))

	count, err := testutil.GatherAndCount(s.registry, "makanapa_order_claims_total")
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *RouterSuite) Test_ConcurrentClaimsAndCancelHaveOneWinner() {
	const runners = 8
	id, post, ack := s.placeOrder()

	events := make([]telegram.Event, 0, runners+1)
	for i := range runners {
		runnerID := kernel.UserID(3001 + i)
		events = append(events, s.press(runnerID, kernel.Handle(fmt.Sprintf("runner_%d", i)), post, views.AcceptTag(id)))
	}
	events = append(events, s.press(customerID, "aisyah", ack, views.CancelOrderTag(id)))

	var (
		wg      sync.WaitGroup
		results = make([]error, len(events))
	)
	start := make(chan struct{})
	for i, ev := range events {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i] = s.router.Route(s.ctx, ev)
		}()
	}
	close(start)
	wg.Wait()

	var claimed, lost int
	var winner kernel.UserID
	for i, err := range results[:runners] {
		switch {
		case err == nil:
			claimed++
			winner = events[i].ActorID
		case errors.Is(err, commands.ErrOrderNoLongerAvailable):
			lost++
		default:
			s.Failf("unexpected claim outcome", "runner %d: %v", events[i].ActorID, err)
		}
	}
	cancelErr := results[runners]

	o := s.getOrder(id)
	if cancelErr == nil {
		s.Equal(order.Cancelled, o.Status())
		s.Equal(0, claimed)
		s.Equal(runners, lost)
		s.Nil(o.RunnerID())
		return
	}

	s.ErrorIs(cancelErr, commands.ErrOrderCannotBeCancelled)
	s.Equal(1, claimed)
	s.Equal(runners-1, lost)
	s.Equal(order.Accepted, o.Status())
	s.Require().NotNil(o.RunnerID())
	s.Equal(winner, *o.RunnerID())
	s.Nil(o.CancelledAt())
}

func (s *RouterSuite) Test_CancelPendingOrder() {
	id, post, ack := s.placeOrder()

	err := s.route(s.press(customerID, "aisyah", ack, views.CancelOrderTag(id)))
	s.Require().NoError(err)

	o := s.getOrder(id)
	s.Equal(order.Cancelled, o.Status())
	s.NotNil(o.CancelledAt())
	s.Nil(o.RunnerID())

	customerView, ok := s.notifier.lastEdit(ack.Ref)
	s.Require().True(ok)
	s.Equal(views.OrderCancelled(), customerView)

	runnerView, ok := s.notifier.lastEdit(post.Ref)
	s.Require().True(ok)
	s.Contains(runnerView.Text, "has been cancelled by the user")
	s.Nil(runnerView.Keyboard)

	err = s.route(s.press(runnerA, "runner_a", post, views.AcceptTag(id)))
	s.ErrorIs(err, commands.ErrOrderNoLongerAvailable)
	s.Equal(order.Cancelled, s.getOrder(id).Status())

	lost, ok := s.notifier.lastEdit(post.Ref)
	s.Require().True(ok)
	s.Contains(lost.Text, "no longer available")
}

func (s *RouterSuite) Test_CancelAcceptedOrderIsRejected() {
	id, post, ack := s.placeOrder()
	s.Require().NoError(s.route(s.press(runnerA, "runner_a", post, views.AcceptTag(id))))
	before := s.getOrder(id).Snapshot()

	err := s.route(s.press(customerID, "aisyah", ack, views.CancelOrderTag(id)))
	s.ErrorIs(err, commands.ErrOrderCannotBeCancelled)

	s.Equal(before, s.getOrder(id).Snapshot())
	view, ok := s.notifier.lastEdit(ack.Ref)
	s.Require().True(ok)
	s.Equal(views.CannotBeCancelled(), view)
}

func (s *RouterSuite) Test_BlockedCustomerCannotStart() {
	c, err := customer.RestoreCustomer(customerID, "aisyah", true, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.factory.Create().CustomerRepository().AddIfAbsent(s.ctx, c))

	err = s.route(s.command(customerID, "start"))
	s.ErrorIs(err, commands.ErrCustomerBlocked)

	_, err = s.sessions.Get(s.ctx, customerID)
	s.ErrorIs(err, errs.ErrObjectNotFound)
	s.Equal(views.Blocked(), s.lastSent(customerID.Int64()).Message)
}

func (s *RouterSuite) Test_CancelCommandAbandonsDialogue() {
	s.Require().NoError(s.route(s.command(customerID, "start")))
	s.Require().NoError(s.route(s.command(customerID, "cancel")))

	_, err := s.sessions.Get(s.ctx, customerID)
	s.ErrorIs(err, errs.ErrObjectNotFound)
	s.Equal(views.DialogueCancelled(), s.lastSent(customerID.Int64()).Message)
}

func (s *RouterSuite) Test_UnknownCommandGetsHint() {
	s.Require().NoError(s.route(s.command(customerID, "help")))
	s.Equal(views.StartHint(), s.lastSent(customerID.Int64()).Message)
}

func (s *RouterSuite) Test_StaleButtonWithoutDialogue() {
	source := sentMessage{Ref: kernel.MessageRef{ChatID: customerID.Int64(), MessageID: 5}}

	err := s.route(s.press(customerID, "aisyah", source, "food"))
	s.ErrorIs(err, commands.ErrNoActiveDialogue)

	s.Equal(1, s.notifier.answeredCount())
	s.Equal(views.StartHint(), s.lastSent(customerID.Int64()).Message)
}

func (s *RouterSuite) Test_OutOfStepButtonIsIgnored() {
	s.Require().NoError(s.route(s.command(customerID, "start")))
	welcome := s.lastSent(customerID.Int64())
	sends := s.notifier.sentCount()

	err := s.route(s.press(customerID, "aisyah", welcome, "to_Safiyyah"))
	s.Error(err)

	s.Equal(sends, s.notifier.sentCount())
	session, err := s.sessions.Get(s.ctx, customerID)
	s.Require().NoError(err)
	s.Equal(dialogue.ChoosingService, session.State())
}

func (s *RouterSuite) Test_RunnerChatTextIsIgnored() {
	ev := s.text(runnerA, "who is taking this?")
	ev.ChatID = runnerChat

	s.NoError(s.route(ev))
	s.Equal(0, s.notifier.sentCount())
}

func (s *RouterSuite) Test_StoreFailureGetsGenericReply() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())

	err = s.route(s.command(customerID, "start"))
	s.Error(err)
	s.Equal(views.GenericFailure(), s.lastSent(customerID.Int64()).Message)
}

func TestRouter_NilMetrics(t *testing.T) {
	notifier := newRecordingNotifier()
	router := telegram.NewRouter(telegram.Handlers{}, notifier, nil, runnerChat, zap.NewNop())

	err := router.Route(context.Background(), telegram.Event{
		Kind:    telegram.KindCommand,
		ActorID: customerID,
		ChatID:  customerID.Int64(),
		Command: "unknown",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.sentCount())
}
