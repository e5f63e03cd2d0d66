package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/receipt"
)

// ReceiptStore is the artifact store holding one receipt per order.
// Failures are reported as errs artifact store errors.
type ReceiptStore interface {
	// Put stores the receipt under receipt.Key().
	Put(ctx context.Context, r receipt.Receipt) error

	// Get returns the receipt of an order or *errs.ObjectNotFoundError.
	Get(ctx context.Context, orderID kernel.UUID) (receipt.Receipt, error)

	// Exists reports whether a receipt is stored for the order.
	Exists(ctx context.Context, orderID kernel.UUID) (bool, error)
}
