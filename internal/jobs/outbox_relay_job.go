package jobs

import (
	"context"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const everySecond = "* * * * * *"

// OutboxRelayHandler publishes one batch of pending outbox messages.
type OutboxRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (commands.RelayOutboxResult, error)
}

// OutboxRelayJob manages the scheduled relay of outbox messages to the broker.
// Runs every second so a placed order reaches the signal queue without
// noticeable delay.
type OutboxRelayJob struct {
	handler   OutboxRelayHandler
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewOutboxRelayJob creates a new job relaying up to batchSize messages per run.
func NewOutboxRelayJob(handler OutboxRelayHandler, batchSize int, logger *zap.Logger) *OutboxRelayJob {
	ctx, cancel := context.WithCancel(context.Background())

	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		// runs never overlap
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With(zap.String("component", "outbox_relay_job")),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(everySecond, func() { j.Run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started (running every second)", zap.Int("batch_size", j.batchSize))
	return nil
}

// Run relays one batch. Exposed for the scheduler and for tests.
func (j *OutboxRelayJob) Run(cmd commands.RelayOutboxCommand) {
	result, err := j.handler.Handle(j.ctx, cmd)
	if err != nil {
		if j.ctx.Err() == nil {
			j.logger.Error("Outbox relay job failed", zap.Error(err))
		}
		return
	}

	if result.Failed > 0 {
		j.logger.Warn("Outbox messages left pending",
			zap.Int("published", result.Published),
			zap.Int("failed", result.Failed),
		)
	} else if result.Published > 0 {
		j.logger.Debug("Outbox messages published", zap.Int("published", result.Published))
	}
}

// Stop stops the relay job and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.cancel()
	j.logger.Info("Outbox relay job stopped")
}
