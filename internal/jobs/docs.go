// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the order pipeline.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to publish pending outbox messages
// ("order.placed" signals and "order.processed" notifications) to RabbitMQ
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(relayHandler, cfg.OutboxBatchSize, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("Failed to start jobs", zap.Error(err))
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The relay uses the cron expression "* * * * * *" (every second). Runs that
// are still in progress when the next tick fires cause that tick to be
// skipped.
//
// # Error Handling
//
// - A failed relay is logged and retried on the next tick
// - Messages the broker rejected stay pending and are retried on the next tick
// - Errors caused by shutdown are not logged
package jobs
