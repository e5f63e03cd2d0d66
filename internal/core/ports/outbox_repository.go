package ports

import (
	"context"

	"ordering/internal/core/domain/model/outbox"
)

// OutboxRepository stores messages produced by aggregates so they are
// written in the same transaction as the aggregate change.
type OutboxRepository interface {
	// Add stores new unpublished messages.
	Add(ctx context.Context, messages ...*outbox.Message) error

	// GetUnpublished returns up to limit pending messages, oldest first.
	// Rows are locked and skipped by concurrent relays.
	GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error)

	// Update persists the publish bookkeeping of a message.
	Update(ctx context.Context, message *outbox.Message) error
}
