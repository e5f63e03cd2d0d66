package queries

import (
	"context"

	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrdersQueryHandler lists orders from the database.
type GetOrdersQueryHandler struct {
	db    *gorm.DB
	table string
}

func NewGetOrdersQueryHandler(db *gorm.DB, table string) GetOrdersQueryHandler {
	if table == "" {
		table = defaultOrdersTable
	}
	return GetOrdersQueryHandler{db: db, table: table}
}

// Handle returns up to query.Limit() orders sorted by creation time, newest
// first. An empty result is an empty slice, never nil.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var status any
	if s := query.Status(); s != nil {
		status = s.String()
	}

	rows := make([]orderRow, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer,
			items,
			dining_table,
			status,
			created_at,
			updated_at
		FROM ?
		WHERE (?::text IS NULL OR status = ?::text)
		ORDER BY created_at DESC, id
		LIMIT ?
	`, clause.Table{Name: h.table}, status, status, query.Limit()).Scan(&rows).Error
	if err != nil {
		return nil, errs.NewStorageError("list orders", err)
	}

	orders := make([]OrderResponse, 0, len(rows))
	for _, row := range rows {
		resp, rowErr := row.toResponse()
		if rowErr != nil {
			return nil, rowErr
		}
		orders = append(orders, resp)
	}

	return orders, nil
}
