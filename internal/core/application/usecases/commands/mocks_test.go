package commands_test

import (
	"context"
	"time"

	"makanapa/internal/core/application/usecases/commands"
	"makanapa/internal/core/domain/model/customer"
	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/domain/model/kernel"
	"makanapa/internal/core/domain/model/order"
	"makanapa/internal/core/domain/model/runner"
	"makanapa/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2024, 11, 3, 14, 5, 9, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Transition(ctx context.Context, o *order.Order, from order.Status) error {
	args := m.Called(ctx, o, from)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateMessages(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) AddIfAbsent(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UserID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockRunnerRepository struct{ mock.Mock }

func (m *MockRunnerRepository) AddIfAbsent(ctx context.Context, r *runner.Runner) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRunnerRepository) Get(ctx context.Context, id kernel.UserID) (*runner.Runner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*runner.Runner), args.Error(1)
}

type MockSequenceGenerator struct{ mock.Mock }

func (m *MockSequenceGenerator) Next(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every unit of work shape the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) RunnerRepository() ports.RunnerRepository {
	args := m.Called()
	return args.Get(0).(ports.RunnerRepository)
}

func (m *MockUoW) SequenceGenerator() ports.SequenceGenerator {
	args := m.Called()
	return args.Get(0).(ports.SequenceGenerator)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCustomerUoWFactory struct{ mock.Mock }

func (m *MockCustomerUoWFactory) Create() commands.CustomerUoW {
	args := m.Called()
	return args.Get(0).(commands.CustomerUoW)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Get(ctx context.Context, requesterID kernel.UserID) (*dialogue.Session, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dialogue.Session), args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, s *dialogue.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, requesterID kernel.UserID) error {
	args := m.Called(ctx, requesterID)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, chatID int64, msg ports.Message) (kernel.MessageRef, error) {
	args := m.Called(ctx, chatID, msg)
	return args.Get(0).(kernel.MessageRef), args.Error(1)
}

func (m *MockNotifier) Edit(ctx context.Context, ref kernel.MessageRef, msg ports.Message) error {
	args := m.Called(ctx, ref, msg)
	return args.Error(0)
}

func (m *MockNotifier) Delete(ctx context.Context, ref kernel.MessageRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockNotifier) Answer(ctx context.Context, callbackID string, text string) error {
	args := m.Called(ctx, callbackID, text)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event order.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventOfType(eventType order.EventType) any {
	return mock.MatchedBy(func(e order.Event) bool { return e.Type == eventType })
}

func mustPendingOrder(customerID kernel.UserID) *order.Order {
	id, err := order.NewID(fixedNow, 7)
	if err != nil {
		panic(err)
	}
	o, err := order.NewOrder(id, customerID, order.Food, "Safiyyah", "Zubair", fixedNow)
	if err != nil {
		panic(err)
	}
	return o
}

func mustRef(chatID int64, messageID int) kernel.MessageRef {
	ref, err := kernel.NewMessageRef(chatID, messageID)
	if err != nil {
		panic(err)
	}
	return ref
}

// confirmingSession walks a fresh session through Food, Safiyyah, Zubair.
func confirmingSession(requesterID kernel.UserID) *dialogue.Session {
	catalog := dialogue.DefaultCatalog()
	s, err := dialogue.NewSession(requesterID)
	if err != nil {
		panic(err)
	}
	for _, step := range []func() error{
		func() error { return s.ChooseService(order.Food) },
		func() error { return s.ChooseFromCategory(dialogue.SisterMahallah) },
		func() error { return s.ChooseFromPlace(catalog, "Safiyyah") },
		func() error { return s.ChooseToCategory(dialogue.BrotherMahallah) },
		func() error { return s.ChooseToPlace(catalog, "Zubair") },
	} {
		if err := step(); err != nil {
			panic(err)
		}
	}
	return s
}
