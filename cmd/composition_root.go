package cmd

import (
	"context"
	"fmt"

	httpin "ordering/internal/adapters/in/http"
	inrabbit "ordering/internal/adapters/in/rabbitmq"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/receiptrepo"
	outrabbit "ordering/internal/adapters/out/rabbitmq"
	"ordering/internal/adapters/out/s3"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	receipts   ports.ReceiptStore
	broker     *outrabbit.Client
	logger     *zap.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	receipts ports.ReceiptStore,
	broker *outrabbit.Client,
	logger *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, cfg.OrdersTable),
		receipts:   receipts,
		broker:     broker,
		logger:     logger,
	}
}

// NewReceiptStore selects the artifact store named by cfg.ReceiptStore.
func NewReceiptStore(ctx context.Context, cfg Config, gormDB *gorm.DB) (ports.ReceiptStore, error) {
	switch cfg.ReceiptStore {
	case ReceiptStorePostgres:
		return receiptrepo.NewGormReceiptRepository(gormDB, cfg.ReceiptBucket), nil
	case ReceiptStoreS3:
		return s3.NewReceiptStore(ctx, s3.Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			Bucket:    cfg.ReceiptBucket,
		})
	default:
		return nil, fmt.Errorf("unknown receipt store %q", cfg.ReceiptStore)
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() commands.ProcessOrderCommandHandler {
	return commands.NewProcessOrderCommandHandler(c.orderUoWFactory(), c.receipts, services.NewReceiptRenderer())
}

func (c *CompositionRoot) CreateProcessOrderSignalsCommandHandler() commands.ProcessOrderSignalsCommandHandler {
	processor := c.CreateProcessOrderCommandHandler()
	return commands.NewProcessOrderSignalsCommandHandler(&processor)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, outrabbit.NewPublisher(c.broker))
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.cfg.OrdersTable)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB, c.cfg.OrdersTable)
}

func (c *CompositionRoot) CreateGetReceiptQueryHandler() queries.GetReceiptQueryHandler {
	return queries.NewGetReceiptQueryHandler(c.receipts)
}

// CreateRouter wires the HTTP API onto a new echo instance.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	createOrder := c.CreateCreateOrderCommandHandler()
	processSignals := c.CreateProcessOrderSignalsCommandHandler()

	server := httpin.NewServer(
		&createOrder,
		&processSignals,
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetReceiptQueryHandler(),
		c.logger,
	)
	return httpin.NewRouter(server, c.logger)
}

// CreateSignalConsumer wires the queue consumer feeding the order processor.
func (c *CompositionRoot) CreateSignalConsumer() *inrabbit.Consumer {
	processSignals := c.CreateProcessOrderSignalsCommandHandler()

	open := func(prefetch int) (inrabbit.Channel, error) {
		ch, err := c.broker.NewConsumerChannel(prefetch)
		if err != nil {
			return nil, err
		}
		return ch, nil
	}

	return inrabbit.NewConsumer(
		open,
		c.broker.Topology().SignalQueue,
		c.cfg.SignalBatchSize,
		c.cfg.SignalBatchWindow,
		&processSignals,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := c.CreateRelayOutboxCommandHandler()
	return jobs.NewJobManager(&relay, c.cfg.OutboxBatchSize, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
