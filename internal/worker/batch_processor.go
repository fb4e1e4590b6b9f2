package worker

import (
	"sync"
	"time"

	"petcare-wallet/internal/models"
	"petcare-wallet/internal/services"

	"go.uber.org/zap"
)

// BatchProcessor accumulates operation messages from one partition and
// flushes them on the processing ticker, grouped by wallet.
type BatchProcessor struct {
	partitionID      int
	operationService *services.OperationService
	logger           *zap.Logger
	messages         []models.KafkaMessage
	mutex            sync.Mutex
	lastProcessed    time.Time
}

func NewBatchProcessor(partitionID int, operationService *services.OperationService, logger *zap.Logger) *BatchProcessor {
	return &BatchProcessor{
		partitionID:      partitionID,
		operationService: operationService,
		logger:           logger,
		messages:         make([]models.KafkaMessage, 0),
		lastProcessed:    time.Now(),
	}
}

func (bp *BatchProcessor) AddMessage(msg models.KafkaMessage) {
	bp.mutex.Lock()
	defer bp.mutex.Unlock()

	bp.messages = append(bp.messages, msg)
}

func (bp *BatchProcessor) ProcessBatch() {
	bp.mutex.Lock()
	defer bp.mutex.Unlock()

	bp.flushLocked()
}

// ProcessRemaining drains the batch on shutdown.
func (bp *BatchProcessor) ProcessRemaining() {
	bp.mutex.Lock()
	defer bp.mutex.Unlock()

	if len(bp.messages) > 0 {
		bp.logger.Info("processing remaining messages before shutdown",
			zap.Int("count", len(bp.messages)))
		bp.flushLocked()
	}
}

func (bp *BatchProcessor) flushLocked() {
	if len(bp.messages) == 0 {
		return
	}

	bp.logger.Info("processing batch", zap.Int("count", len(bp.messages)))

	walletOperations := bp.groupByWallet()

	for walletID, operations := range walletOperations {
		if err := bp.operationService.ProcessWalletOperations(walletID, operations); err != nil {
			bp.logger.Error("failed to process operations for wallet",
				zap.String("walletId", walletID), zap.Error(err))
			// Continue processing other wallets
			continue
		}
	}

	bp.messages = bp.messages[:0]
	bp.lastProcessed = time.Now()
}

func (bp *BatchProcessor) groupByWallet() map[string][]models.KafkaMessage {
	walletOperations := make(map[string][]models.KafkaMessage)

	for _, msg := range bp.messages {
		walletOperations[msg.WalletID] = append(walletOperations[msg.WalletID], msg)
	}

	return walletOperations
}
