// Package receiptrepo stores receipts in PostgreSQL, keyed like objects in
// a bucket so it can stand in for an S3-compatible artifact store.
package receiptrepo

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptDTO represents one stored receipt object.
type ReceiptDTO struct {
	Bucket      string    `gorm:"type:varchar(63);primaryKey"`
	ObjectKey   string    `gorm:"type:varchar(128);primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null"`
	ContentType string    `gorm:"type:varchar(64);not null"`
	Content     []byte    `gorm:"type:bytea;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (ReceiptDTO) TableName() string {
	return "receipts"
}
