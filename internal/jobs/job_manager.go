package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []Job
	started []Job
	logger  *zap.Logger
}

// NewJobManager creates a job manager for the given jobs. They start in order
// and stop in reverse order.
func NewJobManager(logger *zap.Logger, jobs ...Job) *JobManager {
	return &JobManager{
		jobs:   jobs,
		logger: logger.With(zap.String("component", "job_manager")),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; jobs started before it are stopped.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
		jm.started = append(jm.started, job)
	}

	jm.logger.Info("jobs started", zap.Int("count", len(jm.started)))
	return nil
}

// StopAll stops all started jobs gracefully.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
