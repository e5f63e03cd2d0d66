package outboxrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/migrations"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/outbox"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
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

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE outbox").Error)
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.db)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_AndGetUnpublished_OldestFirst() {
	ctx := context.Background()
	first := suite.newMessage()
	time.Sleep(2 * time.Millisecond)
	second := suite.newMessage()

	suite.Require().NoError(suite.repository.Add(ctx, second, first))

	pending, err := suite.repository.GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.True(pending[0].ID().IsEqual(first.ID()))
	suite.True(pending[1].ID().IsEqual(second.ID()))
	suite.Equal(order.PlacedEventName, pending[0].EventName())
	suite.JSONEq(string(first.Payload()), string(pending[0].Payload()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_NoMessages_IsNoop() {
	suite.Require().NoError(suite.repository.Add(context.Background()))
	suite.assertMessageCount(0)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetUnpublished_RespectsLimit() {
	ctx := context.Background()
	for range 5 {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newMessage()))
	}

	pending, err := suite.repository.GetUnpublished(ctx, 3)
	suite.Require().NoError(err)
	suite.Len(pending, 3)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetUnpublished_InvalidLimit() {
	_, err := suite.repository.GetUnpublished(context.Background(), 0)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestUpdate_PublishedMessageIsNotReturned() {
	ctx := context.Background()
	published, failed := suite.newMessage(), suite.newMessage()
	suite.Require().NoError(suite.repository.Add(ctx, published, failed))

	published.MarkPublished(time.Now())
	failed.MarkFailed(errors.New("broker unreachable"))
	suite.Require().NoError(suite.repository.Update(ctx, published))
	suite.Require().NoError(suite.repository.Update(ctx, failed))

	pending, err := suite.repository.GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].ID().IsEqual(failed.ID()))
	suite.Equal(1, pending[0].Attempts())
	suite.Equal("broker unreachable", pending[0].LastError())
	suite.False(pending[0].IsPublished())
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestUpdate_UnknownMessage_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newMessage())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetUnpublished_SkipsRowsLockedByAnotherRelay() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newMessage(), suite.newMessage()))

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	locked, err := outboxrepo.NewGormOutboxRepository(tx).GetUnpublished(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(locked, 1)

	other := suite.db.Begin()
	suite.Require().NoError(other.Error)
	defer other.Rollback()

	rest, err := outboxrepo.NewGormOutboxRepository(other).GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(rest, 1)
	suite.False(rest[0].ID().IsEqual(locked[0].ID()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) newMessage() *outbox.Message {
	msg, err := outbox.NewMessage(order.PlacedEvent{OrderID: kernel.NewUUID()})
	suite.Require().NoError(err)
	return msg
}

func (suite *OutboxRepositoryIntegrationTestSuite) assertMessageCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&outboxrepo.MessageDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
