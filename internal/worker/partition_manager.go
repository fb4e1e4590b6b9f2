package worker

import (
	"context"
	"fmt"
	"sync"

	"petcare-wallet/internal/config"
	"petcare-wallet/internal/services"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// PartitionManager runs one worker goroutine per Kafka partition. Because
// the producer keys messages by wallet id, a wallet's operations always
// arrive on the same partition and stay ordered.
type PartitionManager struct {
	cfg              *config.Config
	operationService *services.OperationService
	logger           *zap.Logger
	wg               sync.WaitGroup
}

func NewPartitionManager(cfg *config.Config, operationService *services.OperationService, logger *zap.Logger) *PartitionManager {
	return &PartitionManager{
		cfg:              cfg,
		operationService: operationService,
		logger:           logger,
	}
}

func (m *PartitionManager) Start(ctx context.Context) error {
	m.logger.Info("starting partition workers",
		zap.Int("partitions", m.cfg.Kafka.Partitions))

	consumer, err := sarama.NewConsumer(m.cfg.Kafka.Brokers, m.cfg.Kafka.GetSaramaConfig())
	if err != nil {
		return fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	defer consumer.Close()

	for partition := 0; partition < m.cfg.Kafka.Partitions; partition++ {
		m.wg.Add(1)
		go m.startWorkerForPartition(ctx, consumer, partition)
	}

	// Wait for all workers to complete to prevent program termination
	m.wg.Wait()
	m.logger.Info("all partition workers stopped")
	return nil
}

func (m *PartitionManager) startWorkerForPartition(ctx context.Context, consumer sarama.Consumer, partition int) {
	defer m.wg.Done()

	log := m.logger.With(zap.Int("partition", partition))
	log.Info("starting worker")

	partitionConsumer, err := consumer.ConsumePartition(
		m.cfg.Kafka.Topic,
		int32(partition),
		sarama.OffsetNewest,
	)
	if err != nil {
		log.Error("failed to create partition consumer", zap.Error(err))
		return
	}
	defer partitionConsumer.Close()

	batchProcessor := NewBatchProcessor(partition, m.operationService, log)

	m.runWorker(ctx, partitionConsumer, batchProcessor, log)
}
