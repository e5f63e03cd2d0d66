// Package outboxrepo persists outbox messages written alongside order changes.
package outboxrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure of an outbox message.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventName   string    `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID `gorm:"type:uuid;not null"`
	Payload     []byte    `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;not null"`
	PublishedAt *time.Time
	Attempts    int    `gorm:"not null;default:0"`
	LastError   string `gorm:"type:text;not null;default:''"`
}

func (MessageDTO) TableName() string {
	return "outbox"
}

func fromDomain(m *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          m.ID().Bytes(),
		EventName:   m.EventName(),
		AggregateID: m.AggregateID().Bytes(),
		Payload:     m.Payload(),
		CreatedAt:   m.CreatedAt(),
		PublishedAt: m.PublishedAt(),
		Attempts:    m.Attempts(),
		LastError:   m.LastError(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return nil, err
	}

	var publishedAt *time.Time
	if dto.PublishedAt != nil {
		at := dto.PublishedAt.UTC()
		publishedAt = &at
	}

	return outbox.RestoreMessage(
		id,
		dto.EventName,
		aggregateID,
		dto.Payload,
		dto.CreatedAt.UTC(),
		publishedAt,
		dto.Attempts,
		dto.LastError,
	)
}
