// Package ports defines the contracts between the ordering core and its
// infrastructure: persistence, the outbox, the artifact store and the
// message broker.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations report missing orders as *errs.ObjectNotFoundError and
// every other failure as an errs storage error.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the surrounding
	// transaction ends, serialising concurrent processing of the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
