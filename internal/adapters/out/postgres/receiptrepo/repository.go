package receiptrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/receipt"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultBucket is the bucket receipts are stored under when none is configured.
const DefaultBucket = "comprovantes"

// GormReceiptRepository implements ReceiptStore on a PostgreSQL table.
type GormReceiptRepository struct {
	db     *gorm.DB
	bucket string
}

func NewGormReceiptRepository(db *gorm.DB, bucket string) *GormReceiptRepository {
	if bucket == "" {
		bucket = DefaultBucket
	}

	return &GormReceiptRepository{
		db:     db,
		bucket: bucket,
	}
}

// Put stores the receipt. An object already stored under the same key is
// left untouched.
func (r *GormReceiptRepository) Put(ctx context.Context, rc receipt.Receipt) error {
	if err := rc.Validate(); err != nil {
		return err
	}

	dto := ReceiptDTO{
		Bucket:      r.bucket,
		ObjectKey:   rc.Key(),
		OrderID:     rc.OrderID().Bytes(),
		ContentType: rc.ContentType(),
		Content:     rc.Content(),
		CreatedAt:   time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	if err != nil {
		return errs.NewArtifactStoreError("put receipt", err)
	}
	return nil
}

func (r *GormReceiptRepository) Get(ctx context.Context, orderID kernel.UUID) (receipt.Receipt, error) {
	if err := orderID.Validate(); err != nil {
		return receipt.Receipt{}, err
	}

	var dto ReceiptDTO
	err := r.db.WithContext(ctx).
		Where("bucket = ? AND object_key = ?", r.bucket, receipt.KeyFor(orderID)).
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return receipt.Receipt{}, errs.NewObjectNotFoundError("receipt", receipt.KeyFor(orderID))
		}
		return receipt.Receipt{}, errs.NewArtifactStoreError("get receipt", err)
	}

	return receipt.RestoreReceipt(orderID, dto.ContentType, dto.Content)
}

func (r *GormReceiptRepository) Exists(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ReceiptDTO{}).
		Where("bucket = ? AND object_key = ?", r.bucket, receipt.KeyFor(orderID)).
		Count(&count).Error
	if err != nil {
		return false, errs.NewArtifactStoreError("check receipt", err)
	}
	return count > 0, nil
}
