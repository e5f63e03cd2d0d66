// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DefaultTableName is used when no table name is configured.
const DefaultTableName = "orders"

// OrderDTO represents the database structure for persisting order aggregates.
// Items keep their order in a text[] column; status is stored by its wire name.
type OrderDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Customer  string         `gorm:"type:text;not null"`
	Items     pq.StringArray `gorm:"type:text[];not null"`
	Table     string         `gorm:"column:dining_table;type:text;not null"`
	Status    string         `gorm:"type:varchar(16);index;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime:false;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:false;not null"`
}

// TableName specifies the default database table name for order entities.
// Repositories override it with the configured name.
func (OrderDTO) TableName() string {
	return DefaultTableName
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:        o.ID().Bytes(),
		Customer:  o.Customer(),
		Items:     pq.StringArray(o.Items()),
		Table:     o.Table(),
		Status:    o.Status().String(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

// toDomain reconstructs the aggregate using RestoreOrder, so rows written by
// other tools are validated on the way in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Customer,
		[]string(dto.Items),
		dto.Table,
		status,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
