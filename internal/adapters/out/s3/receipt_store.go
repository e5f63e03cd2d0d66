// Package s3 stores receipts in an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/receipt"
	"ordering/internal/pkg/errs"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config describes how to reach the object store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// ReceiptStore implements ports.ReceiptStore on a bucket. Objects are keyed
// "<order id>.pdf".
type ReceiptStore struct {
	client *minio.Client
	bucket string
}

// NewReceiptStore connects to the object store and creates the bucket when
// it does not exist yet.
func NewReceiptStore(ctx context.Context, cfg Config) (*ReceiptStore, error) {
	if cfg.Endpoint == "" {
		return nil, errs.NewValueIsRequiredError("endpoint")
	}
	if cfg.Bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errs.NewArtifactStoreError("create client", err)
	}

	store := &ReceiptStore{client: client, bucket: cfg.Bucket}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Put uploads the receipt unless an object already exists under its key.
func (s *ReceiptStore) Put(ctx context.Context, rc receipt.Receipt) error {
	if err := rc.Validate(); err != nil {
		return err
	}

	exists, err := s.Exists(ctx, rc.OrderID())
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	content := rc.Content()
	opts := minio.PutObjectOptions{ContentType: rc.ContentType()}
	// If-None-Match: * keeps a concurrent upload from replacing the object on
	// stores that support conditional writes.
	opts.SetMatchETagExcept("*")

	_, err = s.client.PutObject(ctx, s.bucket, rc.Key(), bytes.NewReader(content), int64(len(content)), opts)
	if err != nil {
		if isPreconditionFailed(err) {
			return nil
		}
		return errs.NewArtifactStoreError("put receipt", err)
	}
	return nil
}

func (s *ReceiptStore) Get(ctx context.Context, orderID kernel.UUID) (receipt.Receipt, error) {
	if err := orderID.Validate(); err != nil {
		return receipt.Receipt{}, err
	}

	key := receipt.KeyFor(orderID)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return receipt.Receipt{}, s.translate("get receipt", key, err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return receipt.Receipt{}, s.translate("get receipt", key, err)
	}

	content, err := io.ReadAll(obj)
	if err != nil {
		return receipt.Receipt{}, s.translate("read receipt", key, err)
	}

	return receipt.RestoreReceipt(orderID, info.ContentType, content)
}

func (s *ReceiptStore) Exists(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	_, err := s.client.StatObject(ctx, s.bucket, receipt.KeyFor(orderID), minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, errs.NewArtifactStoreError("check receipt", err)
	}
	return true, nil
}

func (s *ReceiptStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errs.NewArtifactStoreError("check bucket", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// another instance may have created it in the meantime
		code := minio.ToErrorResponse(err).Code
		if code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists" {
			return nil
		}
		return errs.NewArtifactStoreError("create bucket", err)
	}
	return nil
}

func (s *ReceiptStore) translate(operation, key string, err error) error {
	if isNotFound(err) {
		return errs.NewObjectNotFoundErrorWithCause("receipt", key, err)
	}
	return errs.NewArtifactStoreError(operation, err)
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}

func isPreconditionFailed(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "PreconditionFailed" || resp.StatusCode == http.StatusPreconditionFailed
}
