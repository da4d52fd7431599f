package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxDispatcherJob *OutboxDispatcherJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(runner PassRunner, pollInterval time.Duration, logger *zap.Logger) *JobManager {
	return &JobManager{
		outboxDispatcherJob: NewOutboxDispatcherJob(runner, pollInterval, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxDispatcherJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox dispatcher job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for running work to finish or
// cancelling it once ctx ends.
func (jm *JobManager) StopAll(ctx context.Context) {
	jm.outboxDispatcherJob.Stop(ctx)
}
