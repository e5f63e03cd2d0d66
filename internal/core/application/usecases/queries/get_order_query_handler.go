package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultOrdersTable = "orders"

// GetOrderQueryHandler reads one order row.
type GetOrderQueryHandler struct {
	db    *gorm.DB
	table string
}

// NewGetOrderQueryHandler creates a handler reading from table. An empty
// table name selects "orders".
func NewGetOrderQueryHandler(db *gorm.DB, table string) GetOrderQueryHandler {
	if table == "" {
		table = defaultOrdersTable
	}
	return GetOrderQueryHandler{db: db, table: table}
}

// Handle returns the order or *errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var row orderRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer,
			items,
			dining_table,
			status,
			created_at,
			updated_at
		FROM ?
		WHERE id = ?
	`, clause.Table{Name: h.table}, query.OrderID().Bytes()).Scan(&row)
	if result.Error != nil {
		return OrderResponse{}, errs.NewStorageError("get order", result.Error)
	}

	if result.RowsAffected == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}

	return row.toResponse()
}

// orderRow is the scan target shared by the order queries.
type orderRow struct {
	ID          uuid.UUID
	Customer    string
	Items       pq.StringArray
	DiningTable string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r orderRow) toResponse() (OrderResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	return OrderResponse{
		ID:        id,
		Customer:  r.Customer,
		Items:     []string(r.Items),
		Table:     r.DiningTable,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}, nil
}
