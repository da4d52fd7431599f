// Package jobs provides scheduled background tasks for the fleet service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxDispatcherJob - Runs one outbox pass every poll interval (OUTBOX_POLL_INTERVAL, default 60s)
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatcher, config.OutboxPollInterval, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("Failed to start jobs", zap.Error(err))
//	}
//
//	// blocks until a running pass has committed or rolled back; a pass
//	// still running when shutdownCtx ends is cancelled
//	defer jobManager.StopAll(shutdownCtx)
//
// # Scheduling
//
// The dispatcher job is scheduled with "@every <interval>" and wrapped in
// cron.SkipIfStillRunning, so passes of one process never overlap. Passes of
// different processes may overlap; the outbox claim uses SKIP LOCKED so they
// never share a row.
//
// # Error Handling
//
// - A failed pass is logged and retried on the next tick
// - Dead-lettered messages are logged as a warning with their count
// - Failed job starts are returned to the caller
package jobs
