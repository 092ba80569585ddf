package jobs

import (
	"context"
	"fmt"
	"time"

	"makanapa/internal/core/application/usecases/queries"
	"makanapa/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultOrphanReportSpec runs the report every ten minutes.
const DefaultOrphanReportSpec = "0 */10 * * * *"

// OrphanedOrdersJob periodically reports pending orders that never reached
// the runner channel. It only reads; reported orders stay pending.
type OrphanedOrdersJob struct {
	handler queries.GetOrphanedOrdersQueryHandler
	spec    string
	age     time.Duration
	clock   func() time.Time
	metrics *metrics.Metrics
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewOrphanedOrdersJob creates the job. Orders younger than age are not
// reported, so an order whose post is still being sent is not flagged. spec is
// a cron expression with a seconds field.
func NewOrphanedOrdersJob(
	handler queries.GetOrphanedOrdersQueryHandler,
	spec string,
	age time.Duration,
	clock func() time.Time,
	m *metrics.Metrics,
	logger *zap.Logger,
) *OrphanedOrdersJob {
	if spec == "" {
		spec = DefaultOrphanReportSpec
	}
	return &OrphanedOrdersJob{
		handler: handler,
		spec:    spec,
		age:     age,
		clock:   clock,
		metrics: m,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With(zap.String("component", "orphaned_orders_job")),
	}
}

// Start schedules the report.
func (j *OrphanedOrdersJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.Error("orphaned order report failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.spec, err)
	}

	j.cron.Start()
	j.logger.Info("orphaned order report started", zap.String("schedule", j.spec), zap.Duration("age", j.age))
	return nil
}

// Stop stops scheduling and waits for a running report to finish.
func (j *OrphanedOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("orphaned order report stopped")
}

// Run reports once and returns the number of orphaned orders found.
func (j *OrphanedOrdersJob) Run(ctx context.Context) (int, error) {
	query, err := queries.NewGetOrphanedOrdersQuery(j.clock().Add(-j.age))
	if err != nil {
		return 0, err
	}

	orphans, err := j.handler.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	for _, o := range orphans {
		j.logger.Warn("pending order is not visible to runners",
			zap.String("order_id", o.ID.String()),
			zap.Int64("customer_id", o.CustomerID.Int64()),
			zap.Time("created_at", o.CreatedAt),
		)
	}
	j.metrics.SetOrphanedOrders(len(orphans))

	return len(orphans), nil
}
