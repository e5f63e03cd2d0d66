package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetReceiptQueryIsNotConstructed = errors.New(
		"GetReceiptQuery must be created via NewGetReceiptQuery constructor",
	)
)

// GetReceiptQuery fetches the stored receipt of an order.
type GetReceiptQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetReceiptQuery(orderID kernel.UUID) (GetReceiptQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetReceiptQuery{}, err
	}

	return GetReceiptQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetReceiptQuery) Validate() error {
	return q.guard.Validate(ErrGetReceiptQueryIsNotConstructed)
}

func (q GetReceiptQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ReceiptResponse carries the stored bytes and how to label them.
type ReceiptResponse struct {
	Key         string
	ContentType string
	Content     []byte
}
