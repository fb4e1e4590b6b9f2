package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"petcare-wallet/internal/cache"
	"petcare-wallet/internal/config"
	"petcare-wallet/internal/database"
	"petcare-wallet/internal/repositories/postgresrepo"
	"petcare-wallet/internal/repositories/redisrepo"
	"petcare-wallet/internal/services"
	"petcare-wallet/internal/worker"

	"go.uber.org/zap"
)

type Worker struct {
	cfg              *config.Config
	logger           *zap.Logger
	partitionManager *worker.PartitionManager
}

func NewWorker() (*Worker, error) {
	a := new(Worker)

	a.cfg = config.New()

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	a.logger = logger

	db, err := database.NewPostgres(a.cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	redis, err := cache.NewRedis(a.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("cache connection error: %w", err)
	}

	postgresRepo := postgresrepo.NewWalletRepository(db)
	redisRepo := redisrepo.NewWalletRepository(redis)

	operationService := services.NewOperationService(postgresRepo, redisRepo, logger)

	a.partitionManager = worker.NewPartitionManager(a.cfg, operationService, logger)

	return a, nil
}

func (a *Worker) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		a.logger.Info("received shutdown signal")
		cancel()
	}()

	return a.partitionManager.Start(ctx)
}
