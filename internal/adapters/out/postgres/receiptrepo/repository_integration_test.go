package receiptrepo_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/migrations"
	"ordering/internal/adapters/out/postgres/receiptrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/receipt"
	"ordering/internal/pkg/errs"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ReceiptRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *receiptrepo.GormReceiptRepository
}

func (suite *ReceiptRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(migrations.Up(ctx, sqlDB))
}

func (suite *ReceiptRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE receipts").Error)
	suite.repository = receiptrepo.NewGormReceiptRepository(suite.db, "")
}

func (suite *ReceiptRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReceiptRepositoryIntegrationTestSuite) TestPut_ThenGet_ReturnsSameBytes() {
	ctx := context.Background()
	rc := suite.newReceipt(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Put(ctx, rc))

	stored, err := suite.repository.Get(ctx, rc.OrderID())
	suite.Require().NoError(err)
	suite.Equal(rc.Content(), stored.Content())
	suite.Equal(receipt.ContentType, stored.ContentType())
	suite.Equal(rc.OrderID().String()+".pdf", stored.Key())

	var dto receiptrepo.ReceiptDTO
	suite.Require().NoError(suite.db.Take(&dto).Error)
	suite.Equal(receiptrepo.DefaultBucket, dto.Bucket)
	suite.Equal(rc.Key(), dto.ObjectKey)
}

func (suite *ReceiptRepositoryIntegrationTestSuite) TestPut_ExistingReceipt_IsNotOverwritten() {
	ctx := context.Background()
	id := kernel.NewUUID()
	original := suite.newReceipt(id)
	suite.Require().NoError(suite.repository.Put(ctx, original))

	replacement, err := receipt.NewReceipt(id, []byte("something else"))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Put(ctx, replacement))

	stored, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(original.Content(), stored.Content())
}

func (suite *ReceiptRepositoryIntegrationTestSuite) TestExists() {
	ctx := context.Background()
	id := kernel.NewUUID()

	exists, err := suite.repository.Exists(ctx, id)
	suite.Require().NoError(err)
	suite.False(exists)

	suite.Require().NoError(suite.repository.Put(ctx, suite.newReceipt(id)))

	exists, err = suite.repository.Exists(ctx, id)
	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *ReceiptRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReceiptRepositoryIntegrationTestSuite) TestBucketsAreIsolated() {
	ctx := context.Background()
	id := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Put(ctx, suite.newReceipt(id)))

	other := receiptrepo.NewGormReceiptRepository(suite.db, "archive")
	exists, err := other.Exists(ctx, id)
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *ReceiptRepositoryIntegrationTestSuite) newReceipt(id kernel.UUID) receipt.Receipt {
	rc, err := receipt.NewReceipt(id, []byte("Order: "+id.String()+"\nCustomer: "+gofakeit.Name()))
	suite.Require().NoError(err)
	return rc
}

func TestReceiptRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	suite.Run(t, new(ReceiptRepositoryIntegrationTestSuite))
}
