package commands

import (
	"context"
	"time"

	"ordering/internal/core/ports"
)

// RelayOutboxResult counts the outcome of one relay pass.
type RelayOutboxResult struct {
	Published int
	Failed    int
}

// RelayOutboxCommandHandler publishes pending outbox messages to the broker.
// A message that fails to publish stays pending with its error recorded and
// is picked up again on the next pass.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.MessagePublisher
}

func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, publisher ports.MessagePublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayOutboxResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayOutboxResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RelayOutboxResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	messages, err := uow.OutboxRepository().GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return RelayOutboxResult{}, err
	}

	var result RelayOutboxResult
	for _, msg := range messages {
		if pubErr := h.publisher.Publish(ctx, msg.EventName(), msg.Payload()); pubErr != nil {
			msg.MarkFailed(pubErr)
			result.Failed++
		} else {
			msg.MarkPublished(time.Now())
			result.Published++
		}

		if err = uow.OutboxRepository().Update(ctx, msg); err != nil {
			return RelayOutboxResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return RelayOutboxResult{}, err
	}

	return result, nil
}
