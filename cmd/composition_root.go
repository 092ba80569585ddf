package cmd

import (
	"time"

	httpin "makanapa/internal/adapters/in/http"
	"makanapa/internal/adapters/in/telegram"
	"makanapa/internal/adapters/out/postgres"
	"makanapa/internal/core/application/usecases/commands"
	"makanapa/internal/core/application/usecases/queries"
	"makanapa/internal/core/domain/model/dialogue"
	"makanapa/internal/core/ports"
	"makanapa/internal/jobs"
	"makanapa/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Adapters holds the outbound adapters built by the caller, which also owns
// their lifetime.
type Adapters struct {
	Notifier ports.Notifier
	Sessions ports.SessionStore
	Events   ports.OrderEventPublisher
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	adapters   Adapters
	catalog    *dialogue.Catalog
	clock      commands.Clock
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, adapters Adapters, logger *zap.Logger) (CompositionRoot, error) {
	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return CompositionRoot{}, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		adapters:   adapters,
		catalog:    dialogue.DefaultCatalog(),
		clock:      func() time.Time { return time.Now().In(location) },
		registry:   registry,
		metrics:    metrics.New(registry),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateStartDialogueCommandHandler() commands.StartDialogueCommandHandler {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartDialogueCommandHandler(f, c.adapters.Sessions, c.adapters.Notifier, c.logger)
}

func (c *CompositionRoot) CreateChooseDialogueOptionCommandHandler() commands.ChooseDialogueOptionCommandHandler {
	return commands.NewChooseDialogueOptionCommandHandler(c.adapters.Sessions, c.adapters.Notifier, c.catalog)
}

func (c *CompositionRoot) CreateSubmitDialogueTextCommandHandler() commands.SubmitDialogueTextCommandHandler {
	return commands.NewSubmitDialogueTextCommandHandler(c.adapters.Sessions, c.adapters.Notifier)
}

func (c *CompositionRoot) CreateAbandonDialogueCommandHandler() commands.AbandonDialogueCommandHandler {
	return commands.NewAbandonDialogueCommandHandler(c.adapters.Sessions, c.adapters.Notifier)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.uows(),
		c.adapters.Sessions,
		c.adapters.Notifier,
		c.adapters.Events,
		c.clock,
		c.cfg.Telegram.RunnerChatID,
		c.logger,
	)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.uows(), c.adapters.Notifier, c.adapters.Events, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.adapters.Notifier, c.adapters.Events, c.clock, c.logger)
}

func (c *CompositionRoot) CreateSetCustomerBlockedCommandHandler() commands.SetCustomerBlockedCommandHandler {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCustomerBlockedCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrphanedOrdersQueryHandler() queries.GetOrphanedOrdersQueryHandler {
	return queries.NewGetOrphanedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRouter() *telegram.Router {
	handlers := telegram.Handlers{
		Start:   c.CreateStartDialogueCommandHandler(),
		Choose:  c.CreateChooseDialogueOptionCommandHandler(),
		Submit:  c.CreateSubmitDialogueTextCommandHandler(),
		Abandon: c.CreateAbandonDialogueCommandHandler(),
		Create:  c.CreateCreateOrderCommandHandler(),
		Claim:   c.CreateClaimOrderCommandHandler(),
		Cancel:  c.CreateCancelOrderCommandHandler(),
	}
	return telegram.NewRouter(handlers, c.adapters.Notifier, c.metrics, c.cfg.Telegram.RunnerChatID, c.logger)
}

func (c *CompositionRoot) CreateDispatcher() *telegram.Dispatcher {
	return telegram.NewDispatcher(
		c.CreateRouter(),
		c.cfg.Telegram.Workers,
		c.cfg.Telegram.QueueSize,
		c.cfg.Telegram.EventTimeout,
		c.logger,
	)
}

// CreateHTTPServer mounts the webhook only when sink is not nil.
func (c *CompositionRoot) CreateHTTPServer(sink telegram.EventSink) *httpin.Server {
	return httpin.NewServer(
		c.CreateSetCustomerBlockedCommandHandler(),
		c.CreateGetPendingOrdersQueryHandler(),
		sink,
		c.logger,
	)
}

func (c *CompositionRoot) HTTPRoutes(webhook bool) httpin.RoutesConfig {
	routes := httpin.RoutesConfig{
		AdminToken: c.cfg.HTTP.AdminToken,
		Metrics:    promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}),
	}
	if webhook {
		routes.WebhookSecret = c.cfg.Telegram.WebhookSecret
	}
	return routes
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	report := jobs.NewOrphanedOrdersJob(
		c.CreateGetOrphanedOrdersQueryHandler(),
		c.cfg.Jobs.OrphanReportSpec,
		c.cfg.Jobs.OrphanAge,
		c.clock,
		c.metrics,
		c.logger,
	)
	return jobs.NewJobManager(c.logger, report)
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
