package queries

import (
	"context"

	"ordering/internal/core/ports"
)

// GetReceiptQueryHandler reads receipts from the configured artifact store,
// so it works the same against PostgreSQL and S3.
type GetReceiptQueryHandler struct {
	store ports.ReceiptStore
}

func NewGetReceiptQueryHandler(store ports.ReceiptStore) GetReceiptQueryHandler {
	return GetReceiptQueryHandler{store: store}
}

func (h GetReceiptQueryHandler) Handle(ctx context.Context, query GetReceiptQuery) (ReceiptResponse, error) {
	if err := query.Validate(); err != nil {
		return ReceiptResponse{}, err
	}

	rc, err := h.store.Get(ctx, query.OrderID())
	if err != nil {
		return ReceiptResponse{}, err
	}

	return ReceiptResponse{
		Key:         rc.Key(),
		ContentType: rc.ContentType(),
		Content:     rc.Content(),
	}, nil
}
