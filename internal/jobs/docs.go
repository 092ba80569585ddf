// Package jobs provides scheduled background tasks.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field in their
// schedules and are started and stopped together through JobManager:
//
//	report := jobs.NewOrphanedOrdersJob(handler, "0 */10 * * * *", 5*time.Minute, clock, m, logger)
//	manager := jobs.NewJobManager(logger, report)
//
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// # Available Jobs
//
// OrphanedOrdersJob lists pending orders older than a threshold whose runner
// post was never sent, logs each one and publishes the count as a gauge. It
// never changes or retries an order.
package jobs
