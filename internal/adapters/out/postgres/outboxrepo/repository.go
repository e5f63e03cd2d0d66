package outboxrepo

import (
	"context"

	"ordering/internal/core/domain/model/outbox"
	"ordering/internal/pkg/errs"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add stores new messages in one statement.
func (r *GormOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return err
		}
	}

	dtos := lo.Map(messages, func(m *outbox.Message, _ int) MessageDTO {
		return fromDomain(m)
	})
	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return errs.NewStorageError("add outbox messages", err)
	}
	return nil
}

// GetUnpublished returns the oldest pending messages. Rows are locked with
// FOR UPDATE SKIP LOCKED, so concurrent relays never pick the same message.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewStorageError("get unpublished outbox messages", err)
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// Update persists the publish bookkeeping of a message.
func (r *GormOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"published_at": dto.PublishedAt,
			"attempts":     dto.Attempts,
			"last_error":   dto.LastError,
		})
	if result.Error != nil {
		return errs.NewStorageError("update outbox message", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("messageID", message.ID().String())
	}
	return nil
}
