// Package rabbitmq delivers order signals from a RabbitMQ queue to the order
// processor in batches.
package rabbitmq

import (
	"context"
	"errors"
	"strconv"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	DefaultBatchSize   = 10
	DefaultBatchWindow = time.Second

	consumerTag = "order-processor"
	maxBackoff  = 30 * time.Second
)

// Channel is the part of *amqp.Channel the consumer uses.
type Channel interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Cancel(consumer string, noWait bool) error
	Close() error
}

// ChannelOpener opens a consumer channel with the given prefetch.
type ChannelOpener func(prefetch int) (Channel, error)

// SignalBatchHandler processes one batch of signals.
type SignalBatchHandler interface {
	Handle(ctx context.Context, cmd commands.ProcessOrderSignalsCommand) (commands.ProcessOrderSignalsResult, error)
}

// Consumer reads the signal queue with manual acks. Deliveries are grouped
// into batches of up to batchSize, or whatever arrived within window of the
// first delivery. After the batch is handled, succeeded deliveries are acked;
// failed ones are requeued, except signals that can never succeed, which go
// to the dead-letter queue.
type Consumer struct {
	open      ChannelOpener
	queue     string
	batchSize int
	window    time.Duration
	handler   SignalBatchHandler
	logger    *zap.Logger
}

func NewConsumer(
	open ChannelOpener,
	queue string,
	batchSize int,
	window time.Duration,
	handler SignalBatchHandler,
	logger *zap.Logger,
) *Consumer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if window <= 0 {
		window = DefaultBatchWindow
	}

	return &Consumer{
		open:      open,
		queue:     queue,
		batchSize: batchSize,
		window:    window,
		handler:   handler,
		logger:    logger.With(zap.String("component", "signal_consumer"), zap.String("queue", queue)),
	}
}

// Run consumes until ctx is cancelled, resubscribing with backoff whenever
// the channel fails. Unacked deliveries are requeued by the broker when the
// channel closes.
func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for ctx.Err() == nil {
		ch, err := c.open(c.batchSize)
		if err != nil {
			c.logger.Error("open channel failed", zap.Error(err))
			if !sleep(ctx, backoff) {
				return
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		deliveries, err := ch.Consume(c.queue, consumerTag, false, false, false, false, nil)
		if err != nil {
			_ = ch.Close()
			c.logger.Error("consume failed", zap.Error(err))
			if !sleep(ctx, backoff) {
				return
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		backoff = time.Second
		c.logger.Info("consuming")

		lost := c.consume(ctx, deliveries)
		if !lost {
			_ = ch.Cancel(consumerTag, false)
			_ = ch.Close()
			return
		}

		_ = ch.Close()
		c.logger.Warn("delivery channel closed, resubscribing")
		if !sleep(ctx, backoff) {
			return
		}
	}
}

// consume batches deliveries until ctx is done (returns false) or the
// delivery channel closes (returns true).
func (c *Consumer) consume(ctx context.Context, deliveries <-chan amqp.Delivery) bool {
	batch := make([]amqp.Delivery, 0, c.batchSize)

	timer := time.NewTimer(c.window)
	timer.Stop()
	defer timer.Stop()
	var windowC <-chan time.Time

	flush := func() {
		timer.Stop()
		windowC = nil
		c.handleBatch(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			return false
		case d, ok := <-deliveries:
			if !ok {
				return true
			}

			batch = append(batch, d)
			if len(batch) == 1 {
				timer.Reset(c.window)
				windowC = timer.C
			}
			if len(batch) >= c.batchSize {
				flush()
			}
		case <-windowC:
			flush()
		}
	}
}

func (c *Consumer) handleBatch(ctx context.Context, batch []amqp.Delivery) {
	if len(batch) == 0 {
		return
	}

	records := make([]commands.SignalRecord, 0, len(batch))
	byID := make(map[string]amqp.Delivery, len(batch))
	for _, d := range batch {
		id := messageID(d)
		records = append(records, commands.SignalRecord{MessageID: id, Body: d.Body})
		byID[id] = d
	}

	result, err := c.handler.Handle(ctx, commands.NewProcessOrderSignalsCommand(records))
	if err != nil {
		c.logger.Error("batch handling failed, requeueing batch", zap.Error(err), zap.Int("size", len(batch)))
		for _, d := range batch {
			_ = d.Nack(false, true)
		}
		return
	}

	failed := make(map[string]struct{}, len(result.Failures))
	for _, f := range result.Failures {
		failed[f.MessageID] = struct{}{}

		requeue := isRetryable(f.Err)
		c.logger.Warn("signal failed",
			zap.String("message_id", f.MessageID),
			zap.Bool("requeue", requeue),
			zap.Error(f.Err),
		)
		if err := byID[f.MessageID].Nack(false, requeue); err != nil {
			c.logger.Error("nack failed", zap.String("message_id", f.MessageID), zap.Error(err))
		}
	}

	// acks follow delivery order
	for _, d := range batch {
		id := messageID(d)
		if _, ok := failed[id]; ok {
			continue
		}
		if err := d.Ack(false); err != nil {
			c.logger.Error("ack failed", zap.String("message_id", id), zap.Error(err))
		}
	}

	c.logger.Debug("batch handled",
		zap.Int("size", len(batch)),
		zap.Int("failed", len(result.Failures)),
	)
}

// messageID identifies a delivery inside its batch. Publishers set
// MessageId; the delivery tag is unique per channel otherwise.
func messageID(d amqp.Delivery) string {
	if d.MessageId != "" {
		return d.MessageId + "#" + strconv.FormatUint(d.DeliveryTag, 10)
	}
	return strconv.FormatUint(d.DeliveryTag, 10)
}

// isRetryable reports whether redelivering a failed signal can succeed.
// Malformed signals and signals for unknown orders are dead-lettered.
func isRetryable(err error) bool {
	return !errs.IsValidation(err) && !errors.Is(err, errs.ErrObjectNotFound)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
