package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"ordering/cmd"
	"ordering/internal/adapters/out/postgres/migrations"
	outrabbit "ordering/internal/adapters/out/rabbitmq"

	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ordering:", err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := cmd.NewLogger(configs.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	if err = migrations.Up(ctx, sqlDB); err != nil {
		return err
	}

	receipts, err := cmd.NewReceiptStore(ctx, configs, gormDB)
	if err != nil {
		return fmt.Errorf("open receipt store: %w", err)
	}

	broker, err := outrabbit.Connect(ctx, configs.RabbitMQURL, outrabbit.DefaultTopology(configs.SignalQueue), logger)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	defer broker.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, receipts, broker, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	var wg sync.WaitGroup
	consumer := app.CreateSignalConsumer()
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.Run(ctx)
	}()

	e, err := app.CreateRouter()
	if err != nil {
		stop()
		wg.Wait()
		return fmt.Errorf("build router: %w", err)
	}
	e.Logger.SetLevel(log.INFO)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", configs.HTTPAddr()))
		if err := e.Start(configs.HTTPAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-serverErr:
		logger.Error("http server failed", zap.Error(err))
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()
	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("http server shutdown failed", zap.Error(shutdownErr))
	}

	wg.Wait()
	return err
}
