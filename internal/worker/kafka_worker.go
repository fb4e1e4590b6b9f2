package worker

import (
	"context"
	"encoding/json"
	"time"

	"petcare-wallet/internal/models"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

func (m *PartitionManager) runWorker(ctx context.Context, partitionConsumer sarama.PartitionConsumer, batchProcessor *BatchProcessor, log *zap.Logger) {
	ticker := time.NewTicker(m.cfg.Worker.ProcessingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Drain whatever accumulated before shutting down
			log.Info("shutdown signal received")
			batchProcessor.ProcessRemaining()
			return

		case msg := <-partitionConsumer.Messages():
			var kafkaMsg models.KafkaMessage
			if err := json.Unmarshal(msg.Value, &kafkaMsg); err != nil {
				log.Warn("failed to unmarshal message", zap.Error(err))
				continue
			}
			batchProcessor.AddMessage(kafkaMsg)

		case err := <-partitionConsumer.Errors():
			log.Error("kafka error", zap.Error(err))

		case <-ticker.C:
			batchProcessor.ProcessBatch()
		}
	}
}
