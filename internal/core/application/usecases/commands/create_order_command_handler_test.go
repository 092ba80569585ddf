package commands_test

import (
	"errors"
	"testing"

	"makanapa/internal/core/application/usecases/commands"
	"makanapa/internal/core/application/views"
	"makanapa/internal/core/domain/model/customer"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	createRequesterID kernel.UserID = 1001
	runnerChatID      int64         = -100500
)

type createFixture struct {
	orderRepo    *MockOrderRepository
	customerRepo *MockCustomerRepository
	sequence     *MockSequenceGenerator
	uow          *MockUoW
	factory      *MockUoWFactory
	sessions     *MockSessionStore
	notifier     *MockNotifier
	events       *MockEventPublisher
	source       kernel.MessageRef
}

func newCreateFixture() *createFixture {
	f := &createFixture{
		orderRepo:    new(MockOrderRepository),
		customerRepo: new(MockCustomerRepository),
		sequence:     new(MockSequenceGenerator),
		uow:          new(MockUoW),
		factory:      new(MockUoWFactory),
		sessions:     new(MockSessionStore),
		notifier:     new(MockNotifier),
		events:       new(MockEventPublisher),
		source:       mustRef(int64(createRequesterID), 5),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("OrderRepository").Return(f.orderRepo).Maybe()
	f.uow.On("CustomerRepository").Return(f.customerRepo).Maybe()
	f.uow.On("SequenceGenerator").Return(f.sequence).Maybe()
	return f
}

func (f *createFixture) handle(t *testing.T) error {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(createRequesterID, "amir", f.source)
	require.NoError(t, err)
	h := commands.NewCreateOrderCommandHandler(
		f.factory, f.sessions, f.notifier, f.events, fixedClock, runnerChatID, zap.NewNop(),
	)
	return h.Handle(t.Context(), cmd)
}

func TestNewCreateOrderCommand(t *testing.T) {
	source := mustRef(1001, 5)
	cmd, err := commands.NewCreateOrderCommand(1001, "amir", source)
	require.NoError(t, err)
	assert.Equal(t, kernel.UserID(1001), cmd.RequesterID())
	assert.Equal(t, kernel.Handle("amir"), cmd.Handle())
	assert.Equal(t, source, cmd.Source())

	_, err = commands.NewCreateOrderCommand(0, "", kernel.MessageRef{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture()
	runnerPost := mustRef(runnerChatID, 42)
	var (
		stored          *order.Order
		customerAtStore kernel.MessageRef
	)

	mock.InOrder(
		f.sessions.On("Get", ctx, createRequesterID).Return(confirmingSession(createRequesterID), nil).Once(),
		f.sessions.On("Delete", ctx, createRequesterID).Return(nil).Once(),
		f.customerRepo.On("Get", ctx, createRequesterID).
			Return(nil, errs.NewObjectNotFoundError("customer", "1001")).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.customerRepo.On("AddIfAbsent", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil).Once(),
		f.sequence.On("Next", ctx).Return(int64(7), nil).Once(),
		f.orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*order.Order)
				customerAtStore = stored.CustomerMessage()
			}).
			Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
		f.notifier.On("Send", ctx, runnerChatID, mock.AnythingOfType("ports.Message")).Return(runnerPost, nil).Once(),
		f.orderRepo.On("UpdateMessages", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		f.notifier.On("Edit", ctx, f.source, mock.AnythingOfType("ports.Message")).Return(nil).Once(),
		f.events.On("Publish", ctx, eventOfType(order.EventCreated)).Return(nil).Once(),
	)

	err := f.handle(t)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "241103_140509_7", stored.ID().String())
	assert.Equal(t, order.Pending, stored.Status())
	assert.Equal(t, order.Food, stored.Kind())
	assert.Equal(t, "Safiyyah", stored.From())
	assert.Equal(t, "Zubair", stored.To())
	assert.Equal(t, runnerPost, stored.RunnerMessage())
	assert.Equal(t, f.source, stored.CustomerMessage())
	assert.Equal(t, f.source, customerAtStore)
	assert.Equal(t, views.RunnerPost(stored), f.notifier.Calls[0].Arguments[2])
	f.sessions.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NoActiveDialogue(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture()
	f.sessions.On("Get", ctx, createRequesterID).Return(nil, errs.NewObjectNotFoundError("session", "1001")).Once()

	err := f.handle(t)

	require.ErrorIs(t, err, commands.ErrNoActiveDialogue)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	f.sessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_BlockedCustomer(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture()
	blocked, err := customer.RestoreCustomer(createRequesterID, "amir", true, fixedNow)
	require.NoError(t, err)

	f.sessions.On("Get", ctx, createRequesterID).Return(confirmingSession(createRequesterID), nil).Once()
	f.sessions.On("Delete", ctx, createRequesterID).Return(nil).Once()
	f.customerRepo.On("Get", ctx, createRequesterID).Return(blocked, nil).Once()
	f.notifier.On("Edit", ctx, f.source, views.Blocked()).Return(nil).Once()

	err = f.handle(t)

	require.ErrorIs(t, err, commands.ErrCustomerBlocked)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_SequenceError(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture()

	f.sessions.On("Get", ctx, createRequesterID).Return(confirmingSession(createRequesterID), nil).Once()
	f.sessions.On("Delete", ctx, createRequesterID).Return(nil).Once()
	f.customerRepo.On("Get", ctx, createRequesterID).Return(nil, errs.NewObjectNotFoundError("customer", "1001")).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.customerRepo.On("AddIfAbsent", ctx, mock.Anything).Return(nil).Once()
	f.sequence.On("Next", ctx).Return(int64(0), errors.New("database error")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	err := f.handle(t)

	require.EqualError(t, err, "database error")
	f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_PublishFailureLeavesOrderStored(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture()

	f.sessions.On("Get", ctx, createRequesterID).Return(confirmingSession(createRequesterID), nil).Once()
	f.sessions.On("Delete", ctx, createRequesterID).Return(nil).Once()
	f.customerRepo.On("Get", ctx, createRequesterID).Return(nil, errs.NewObjectNotFoundError("customer", "1001")).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.customerRepo.On("AddIfAbsent", ctx, mock.Anything).Return(nil).Once()
	f.sequence.On("Next", ctx).Return(int64(8), nil).Once()
	var stored *order.Order
	f.orderRepo.On("Add", ctx, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
		Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.notifier.On("Send", ctx, runnerChatID, mock.Anything).
		Return(kernel.MessageRef{}, errors.New("chat not found")).Once()
	f.notifier.On("Edit", ctx, f.source, views.PublishFailed()).Return(nil).Once()

	err := f.handle(t)

	require.ErrorIs(t, err, commands.ErrPublishFailed)
	assert.Contains(t, err.Error(), "chat not found")
	f.uow.AssertCalled(t, "Commit", ctx)
	require.NotNil(t, stored)
	assert.Equal(t, f.source, stored.CustomerMessage())
	assert.True(t, stored.RunnerMessage().IsZero())
	f.orderRepo.AssertNotCalled(t, "UpdateMessages", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AcknowledgeFallsBackToNewMessage(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture()
	runnerPost := mustRef(runnerChatID, 42)
	fresh := mustRef(int64(createRequesterID), 6)
	var stored *order.Order

	f.sessions.On("Get", ctx, createRequesterID).Return(confirmingSession(createRequesterID), nil).Once()
	f.sessions.On("Delete", ctx, createRequesterID).Return(nil).Once()
	f.customerRepo.On("Get", ctx, createRequesterID).Return(nil, errs.NewObjectNotFoundError("customer", "1001")).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.customerRepo.On("AddIfAbsent", ctx, mock.Anything).Return(nil).Once()
	f.sequence.On("Next", ctx).Return(int64(9), nil).Once()
	f.orderRepo.On("Add", ctx, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
		Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.notifier.On("Send", ctx, runnerChatID, mock.Anything).Return(runnerPost, nil).Once()
	f.orderRepo.On("UpdateMessages", ctx, mock.Anything).Return(nil).Once()
	f.notifier.On("Edit", ctx, f.source, mock.Anything).Return(errors.New("message to edit not found")).Once()
	f.notifier.On("Send", ctx, int64(createRequesterID), mock.Anything).Return(fresh, nil).Once()
	f.orderRepo.On("UpdateMessages", ctx, mock.Anything).Return(errors.New("database error")).Once()
	f.events.On("Publish", ctx, mock.Anything).Return(nil).Once()

	err := f.handle(t)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, fresh, stored.CustomerMessage())
	assert.Equal(t, runnerPost, stored.RunnerMessage())
	f.orderRepo.AssertNumberOfCalls(t, "UpdateMessages", 2)
	f.events.AssertExpectations(t)
}
