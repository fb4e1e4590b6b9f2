package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petcare-wallet/internal/ledger"
	"petcare-wallet/internal/models"
	"petcare-wallet/internal/repositories/kafkarepo"
	"petcare-wallet/internal/repositories/postgresrepo"
	"petcare-wallet/internal/repositories/redisrepo"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrNotAdminWallet    = errors.New("commission reports are available for admin wallets only")
)

// WalletStore is the storage surface the API service needs. Satisfied by
// postgresrepo.WalletRepository.
type WalletStore interface {
	GetWallet(ctx context.Context, walletID string) (*models.Wallet, error)
	GetWalletByOwner(ctx context.Context, ownerID string, ownerType models.OwnerType) (*models.Wallet, error)
	CreateWallet(ctx context.Context, ownerID string, ownerType models.OwnerType, currency string) (*models.Wallet, error)
	ListTransactions(ctx context.Context, walletID string) ([]models.WalletTransaction, error)
	ListAllTransactions(ctx context.Context) ([]models.WalletTransaction, error)
	CommissionReport(ctx context.Context, walletID string) ([]models.CommissionReportRow, error)
	WalletExists(ctx context.Context, walletID string) (bool, error)
	CreateOperation(ctx context.Context, walletID, operationType string, amount decimal.Decimal, description string) (string, error)
	GetOperation(ctx context.Context, walletID, operationID string) (*models.WalletOperation, error)
	UpdateOperationStatus(ctx context.Context, operationID, status, errorMsg string) error
}

// BalanceCache is the cache surface. Satisfied by redisrepo.WalletRepository.
type BalanceCache interface {
	GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error)
	SetBalance(ctx context.Context, walletID string, balance decimal.Decimal) error
}

// OperationQueue is the broker surface. Satisfied by kafkarepo.OperationRepository.
type OperationQueue interface {
	SendOperation(ctx context.Context, msg models.KafkaMessage) error
}

var (
	_ WalletStore    = (*postgresrepo.WalletRepository)(nil)
	_ BalanceCache   = (*redisrepo.WalletRepository)(nil)
	_ OperationQueue = (*kafkarepo.OperationRepository)(nil)
)

type WalletService struct {
	store  WalletStore
	cache  BalanceCache
	queue  OperationQueue
	logger *zap.Logger
}

func NewWalletService(store WalletStore, cache BalanceCache, queue OperationQueue, logger *zap.Logger) *WalletService {
	return &WalletService{
		store:  store,
		cache:  cache,
		queue:  queue,
		logger: logger,
	}
}

// GetWalletForOwner returns the wallet of an (owner id, owner type) pair
// with its full transaction list. Owners whose role allows it get a wallet
// created transparently on first access; shop owners get ErrWalletNotFound
// back so the client can offer an explicit create action.
func (s *WalletService) GetWalletForOwner(ctx context.Context, ownerID string, ownerType models.OwnerType) (*models.WalletResponse, error) {
	wallet, err := s.store.GetWalletByOwner(ctx, ownerID, ownerType)
	if err != nil {
		if !errors.Is(err, postgresrepo.ErrWalletNotFound) || !ownerType.AutoCreate() {
			return nil, err
		}

		s.logger.Info("wallet missing for owner, creating",
			zap.String("ownerId", ownerID),
			zap.String("ownerType", string(ownerType)))

		wallet, err = s.store.CreateWallet(ctx, ownerID, ownerType, models.DefaultCurrency)
		if err != nil {
			// Lost a race against a concurrent first access, the wallet is
			// there now.
			if errors.Is(err, postgresrepo.ErrWalletExists) {
				wallet, err = s.store.GetWalletByOwner(ctx, ownerID, ownerType)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to create wallet for owner: %w", err)
			}
		}
	}

	return s.buildWalletResponse(ctx, wallet)
}

// CreateWallet is the explicit create call. Creating a wallet that already
// exists is not an error, the existing wallet comes back with created=false.
func (s *WalletService) CreateWallet(ctx context.Context, req models.WalletCreateRequest) (*models.WalletResponse, bool, error) {
	currency := req.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	ownerType := models.OwnerType(req.OwnerType)
	wallet, err := s.store.CreateWallet(ctx, req.OwnerID, ownerType, currency)
	if err != nil {
		if errors.Is(err, postgresrepo.ErrWalletExists) {
			existing, getErr := s.store.GetWalletByOwner(ctx, req.OwnerID, ownerType)
			if getErr != nil {
				return nil, false, getErr
			}
			resp, buildErr := s.buildWalletResponse(ctx, existing)
			return resp, false, buildErr
		}
		return nil, false, err
	}

	s.logger.Info("wallet created",
		zap.String("walletId", wallet.ID),
		zap.String("ownerType", string(ownerType)))

	resp, err := s.buildWalletResponse(ctx, wallet)
	return resp, true, err
}

// GetWalletBalance serves the balance card. Redis first, Postgres as the
// source of truth, cache refreshed in the background on a miss.
func (s *WalletService) GetWalletBalance(ctx context.Context, walletID string) (decimal.Decimal, string, error) {
	wallet, err := s.store.GetWallet(ctx, walletID)
	if err != nil {
		return decimal.Zero, "", err
	}

	balance, cacheErr := s.cache.GetBalance(ctx, walletID)
	if cacheErr == nil {
		return balance, wallet.Currency, nil
	}
	if !errors.Is(cacheErr, redisrepo.ErrBalanceNotFound) {
		s.logger.Warn("redis cache error (non-critical)", zap.Error(cacheErr))
	}

	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.cache.SetBalance(cacheCtx, walletID, wallet.Balance); err != nil {
			s.logger.Warn("failed to update redis cache",
				zap.String("walletId", walletID), zap.Error(err))
		}
	}()

	return wallet.Balance, wallet.Currency, nil
}

// GetTransactionsPage applies the ledger view (search, type filter, newest
// first, pagination with page clamping) over the wallet's transactions.
func (s *WalletService) GetTransactionsPage(ctx context.Context, walletID string, q ledger.Query) (*models.TransactionPageResponse, error) {
	exists, err := s.store.WalletExists(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to check wallet existence: %w", err)
	}
	if !exists {
		return nil, postgresrepo.ErrWalletNotFound
	}

	transactions, err := s.store.ListTransactions(ctx, walletID)
	if err != nil {
		return nil, err
	}

	page := ledger.View(transactions, q)

	return &models.TransactionPageResponse{
		Transactions: page.Transactions,
		Page:         page.Page,
		PerPage:      page.PerPage,
		TotalItems:   page.TotalItems,
		TotalPages:   page.TotalPages,
		Filtered:     page.Filtered,
	}, nil
}

// Statement renders the wallet's full ledger as a CSV download.
func (s *WalletService) Statement(ctx context.Context, walletID string) ([]byte, string, error) {
	exists, err := s.store.WalletExists(ctx, walletID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check wallet existence: %w", err)
	}
	if !exists {
		return nil, "", postgresrepo.ErrWalletNotFound
	}

	transactions, err := s.store.ListTransactions(ctx, walletID)
	if err != nil {
		return nil, "", err
	}

	csvBytes, err := ledger.Statement(transactions)
	if err != nil {
		return nil, "", err
	}

	return csvBytes, ledger.StatementFilename(time.Now()), nil
}

// AllStatements is the admin export spanning every wallet.
func (s *WalletService) AllStatements(ctx context.Context) ([]byte, string, error) {
	transactions, err := s.store.ListAllTransactions(ctx)
	if err != nil {
		return nil, "", err
	}

	csvBytes, err := ledger.Statement(transactions)
	if err != nil {
		return nil, "", err
	}

	return csvBytes, ledger.StatementFilename(time.Now()), nil
}

// CommissionReport aggregates the admin wallet's commission credits by
// month. Non-admin wallets are rejected.
func (s *WalletService) CommissionReport(ctx context.Context, walletID string) ([]models.CommissionReportRow, error) {
	wallet, err := s.store.GetWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.OwnerType != models.OwnerTypeAdmin {
		return nil, ErrNotAdminWallet
	}

	return s.store.CommissionReport(ctx, walletID)
}

// CreateOperation validates and queues a deposit or withdrawal. The worker
// applies it asynchronously; callers poll the operation or wait for the
// walletUpdated push.
func (s *WalletService) CreateOperation(ctx context.Context, walletID string, req models.WalletOperationRequest) (string, error) {
	if !req.Amount.IsPositive() {
		return "", ErrNonPositiveAmount
	}

	exists, err := s.store.WalletExists(ctx, walletID)
	if err != nil {
		return "", fmt.Errorf("failed to check wallet existence: %w", err)
	}
	if !exists {
		return "", postgresrepo.ErrWalletNotFound
	}

	operationID, err := s.store.CreateOperation(ctx, walletID, req.OperationType, req.Amount, req.Description)
	if err != nil {
		return "", fmt.Errorf("failed to create operation: %w", err)
	}

	kafkaMsg := models.KafkaMessage{
		OperationID:   operationID,
		WalletID:      walletID,
		OperationType: req.OperationType,
		Amount:        req.Amount.String(),
		Description:   req.Description,
	}

	if err := s.queue.SendOperation(ctx, kafkaMsg); err != nil {
		// In case of Kafka error, mark operation as FAILED
		updateErr := s.store.UpdateOperationStatus(ctx, operationID,
			models.OperationStatusFailed, fmt.Sprintf("Kafka error: %v", err))
		if updateErr != nil {
			s.logger.Error("failed to update operation status after kafka error",
				zap.String("operationId", operationID), zap.Error(updateErr))
		}
		return "", fmt.Errorf("failed to send operation to queue: %w", err)
	}

	return operationID, nil
}

// GetOperation returns the status of one queued operation.
func (s *WalletService) GetOperation(ctx context.Context, walletID, operationID string) (*models.OperationStatusResponse, error) {
	walletExists, err := s.store.WalletExists(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to check wallet existence: %w", err)
	}
	if !walletExists {
		return nil, postgresrepo.ErrWalletNotFound
	}

	operation, err := s.store.GetOperation(ctx, walletID, operationID)
	if err != nil {
		return nil, err
	}

	return &models.OperationStatusResponse{
		OperationID:   operation.ID,
		WalletID:      operation.WalletID,
		OperationType: operation.OperationType,
		Amount:        operation.Amount,
		Status:        operation.Status,
		ProcessedAt:   operation.ProcessedAt,
		Error:         operation.Error,
	}, nil
}

func (s *WalletService) buildWalletResponse(ctx context.Context, wallet *models.Wallet) (*models.WalletResponse, error) {
	transactions, err := s.store.ListTransactions(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}

	return &models.WalletResponse{
		ID:           wallet.ID,
		OwnerID:      wallet.OwnerID,
		OwnerType:    wallet.OwnerType,
		Balance:      wallet.Balance,
		Currency:     wallet.Currency,
		Transactions: transactions,
	}, nil
}
