package services

import (
	"context"
	"fmt"
	"time"

	"petcare-wallet/internal/models"
	"petcare-wallet/internal/repositories/postgresrepo"
	"petcare-wallet/internal/repositories/redisrepo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OperationService applies queued wallet operations on the worker side.
type OperationService struct {
	walletRepo *postgresrepo.WalletRepository
	cacheRepo  *redisrepo.WalletRepository
	logger     *zap.Logger
}

func NewOperationService(
	walletRepo *postgresrepo.WalletRepository,
	cacheRepo *redisrepo.WalletRepository,
	logger *zap.Logger,
) *OperationService {
	return &OperationService{
		walletRepo: walletRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
	}
}

// ProcessWalletOperations applies a batch of operations for one wallet in a
// single database transaction: balance update, one ledger row per processed
// operation, bulk status update. After commit the balance cache is refreshed
// and a walletUpdated invalidation is published.
func (s *OperationService) ProcessWalletOperations(walletID string, operations []models.KafkaMessage) error {
	ctx := context.Background()

	txRepo, err := s.walletRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	processedBalance, operationsToUpdate, ledgerRows, err := s.processOperationsInTx(ctx, txRepo, walletID, operations)
	if err != nil {
		if rollbackErr := txRepo.Rollback(); rollbackErr != nil {
			return fmt.Errorf("process error: %w, rollback error: %v", err, rollbackErr)
		}
		return fmt.Errorf("failed to process operations: %w", err)
	}

	for _, row := range ledgerRows {
		if err := txRepo.InsertTransaction(ctx, row); err != nil {
			if rollbackErr := txRepo.Rollback(); rollbackErr != nil {
				return fmt.Errorf("insert transaction error: %w, rollback error: %v", err, rollbackErr)
			}
			return fmt.Errorf("failed to insert ledger transaction: %w", err)
		}
	}

	if len(operationsToUpdate) > 0 {
		if err := txRepo.BulkUpdateOperations(ctx, operationsToUpdate); err != nil {
			if rollbackErr := txRepo.Rollback(); rollbackErr != nil {
				return fmt.Errorf("bulk update error: %w, rollback error: %v", err, rollbackErr)
			}
			return fmt.Errorf("failed to bulk update operations: %w", err)
		}
	}

	if err := txRepo.UpdateBalance(ctx, walletID, processedBalance); err != nil {
		if rollbackErr := txRepo.Rollback(); rollbackErr != nil {
			return fmt.Errorf("update balance error: %w, rollback error: %v", err, rollbackErr)
		}
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}

	if err := txRepo.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Cache refresh and invalidation push happen outside the transaction.
	if err := s.cacheRepo.SetBalance(ctx, walletID, processedBalance); err != nil {
		s.logger.Warn("failed to update cache",
			zap.String("walletId", walletID), zap.Error(err))
	}

	if err := s.cacheRepo.PublishWalletUpdated(ctx, walletID); err != nil {
		s.logger.Warn("failed to publish wallet update",
			zap.String("walletId", walletID), zap.Error(err))
	}

	return nil
}

// processOperationsInTx walks the batch in arrival order and returns the
// resulting balance, the operations to mark processed/failed and the ledger
// rows to insert.
func (s *OperationService) processOperationsInTx(
	ctx context.Context,
	txRepo *postgresrepo.TxWalletRepo,
	walletID string,
	operations []models.KafkaMessage,
) (decimal.Decimal, []models.WalletOperation, []models.WalletTransaction, error) {

	wallet, err := txRepo.LockWalletForUpdate(ctx, walletID)
	if err != nil {
		return decimal.Zero, nil, nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	currentBalance := wallet.Balance
	now := time.Now()
	operationsToUpdate := make([]models.WalletOperation, 0)
	ledgerRows := make([]models.WalletTransaction, 0)

	operationIDs := make([]string, len(operations))
	for i, op := range operations {
		operationIDs[i] = op.OperationID
	}

	existingOperations, err := txRepo.GetOperationsByIDs(ctx, walletID, operationIDs)
	if err != nil {
		return decimal.Zero, nil, nil, fmt.Errorf("failed to get operations: %w", err)
	}

	existingOpsMap := make(map[string]models.WalletOperation)
	for _, op := range existingOperations {
		existingOpsMap[op.ID] = op
	}

	for _, operation := range operations {
		existingOp, exists := existingOpsMap[operation.OperationID]
		if !exists {
			s.logger.Warn("operation not found in database",
				zap.String("operationId", operation.OperationID))
			continue
		}

		// Only PENDING operations are applied, replays are skipped.
		if existingOp.Status != models.OperationStatusPending {
			continue
		}

		newBalance, updatedOperation, err := s.processSingleOperation(existingOp, currentBalance, now)
		if err != nil {
			return decimal.Zero, nil, nil, fmt.Errorf("failed to process operation %s: %w", operation.OperationID, err)
		}

		operationsToUpdate = append(operationsToUpdate, updatedOperation)

		if updatedOperation.Status == models.OperationStatusProcessed {
			currentBalance = newBalance
			ledgerRows = append(ledgerRows, buildLedgerRow(existingOp, wallet.Currency))
		}
	}

	return currentBalance, operationsToUpdate, ledgerRows, nil
}

// processSingleOperation applies one operation against the running balance.
// The amount stored with the operation is authoritative, not the broker
// payload.
func (s *OperationService) processSingleOperation(
	existingOperation models.WalletOperation,
	currentBalance decimal.Decimal,
	now time.Time,
) (decimal.Decimal, models.WalletOperation, error) {

	updatedOperation := existingOperation

	var newBalance decimal.Decimal
	var status string
	var errorMsg *string

	switch existingOperation.OperationType {
	case models.OperationTypeDeposit:
		newBalance = currentBalance.Add(existingOperation.Amount)
		status = models.OperationStatusProcessed
		processedAt := now
		updatedOperation.ProcessedAt = &processedAt

	case models.OperationTypeWithdraw:
		if currentBalance.GreaterThanOrEqual(existingOperation.Amount) {
			newBalance = currentBalance.Sub(existingOperation.Amount)
			status = models.OperationStatusProcessed
			processedAt := now
			updatedOperation.ProcessedAt = &processedAt
		} else {
			status = models.OperationStatusFailed
			msg := "insufficient funds"
			errorMsg = &msg
			newBalance = currentBalance
		}

	default:
		status = models.OperationStatusFailed
		msg := fmt.Sprintf("unknown operation type: %s", existingOperation.OperationType)
		errorMsg = &msg
		newBalance = currentBalance
	}

	updatedOperation.Status = status
	updatedOperation.Error = errorMsg

	return newBalance, updatedOperation, nil
}

// buildLedgerRow maps a processed operation to its immutable ledger entry.
// DEPOSIT becomes a credit, WITHDRAW a debit; the operation id goes into
// the reference column.
func buildLedgerRow(op models.WalletOperation, currency string) models.WalletTransaction {
	txType := models.TransactionTypeCredit
	description := op.Description
	if op.OperationType == models.OperationTypeWithdraw {
		txType = models.TransactionTypeDebit
		if description == "" {
			description = "Wallet withdrawal"
		}
	} else if description == "" {
		description = "Wallet deposit"
	}

	return models.WalletTransaction{
		ID:          uuid.New().String(),
		WalletID:    op.WalletID,
		Type:        txType,
		Amount:      op.Amount,
		Currency:    currency,
		Description: description,
		ReferenceID: op.ID,
	}
}
