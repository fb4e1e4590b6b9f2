package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"petcare-wallet/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrWalletExists      = errors.New("wallet already exists for owner")
	ErrOperationNotFound = errors.New("operation not found")
)

type WalletRepository struct {
	db *sqlx.DB
}

func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetWallet get a wallet by ID
func (r *WalletRepository) GetWallet(ctx context.Context, walletID string) (*models.Wallet, error) {
	var wallet models.Wallet

	query := `
		SELECT id, owner_id, owner_type, balance, currency, created_at, updated_at
		FROM wallets WHERE id = $1
	`

	err := r.db.GetContext(ctx, &wallet, query, walletID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet from postgres: %w", err)
	}

	return &wallet, nil
}

// GetWalletByOwner get the wallet belonging to an (owner id, owner type) pair
func (r *WalletRepository) GetWalletByOwner(ctx context.Context, ownerID string, ownerType models.OwnerType) (*models.Wallet, error) {
	var wallet models.Wallet

	query := `
		SELECT id, owner_id, owner_type, balance, currency, created_at, updated_at
		FROM wallets WHERE owner_id = $1 AND owner_type = $2
	`

	err := r.db.GetContext(ctx, &wallet, query, ownerID, ownerType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by owner from postgres: %w", err)
	}

	return &wallet, nil
}

// CreateWallet create a new wallet for an owner with a zero balance
func (r *WalletRepository) CreateWallet(ctx context.Context, ownerID string, ownerType models.OwnerType, currency string) (*models.Wallet, error) {
	walletID := uuid.New().String()

	query := `
		INSERT INTO wallets (id, owner_id, owner_type, balance, currency)
		VALUES ($1, $2, $3, 0, $4)
	`

	_, err := r.db.ExecContext(ctx, query, walletID, ownerID, ownerType, currency)
	if err != nil {
		var pqErr *pq.Error
		// 23505 = unique_violation on (owner_id, owner_type)
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrWalletExists
		}
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return r.GetWallet(ctx, walletID)
}

// ListTransactions returns all ledger rows of a wallet, newest first.
func (r *WalletRepository) ListTransactions(ctx context.Context, walletID string) ([]models.WalletTransaction, error) {
	transactions := []models.WalletTransaction{}

	query := `
		SELECT id, wallet_id, type, amount, currency, description, reference_id, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &transactions, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions from postgres: %w", err)
	}

	return transactions, nil
}

// ListAllTransactions returns every ledger row across all wallets, newest
// first. Used by the admin full-statement export.
func (r *WalletRepository) ListAllTransactions(ctx context.Context) ([]models.WalletTransaction, error) {
	transactions := []models.WalletTransaction{}

	query := `
		SELECT id, wallet_id, type, amount, currency, description, reference_id, created_at
		FROM wallet_transactions
		ORDER BY created_at DESC
	`

	err := r.db.SelectContext(ctx, &transactions, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all transactions from postgres: %w", err)
	}

	return transactions, nil
}

// CommissionReport aggregates credit rows of the admin wallet by month.
func (r *WalletRepository) CommissionReport(ctx context.Context, walletID string) ([]models.CommissionReportRow, error) {
	rows := []models.CommissionReportRow{}

	query := `
		SELECT to_char(created_at, 'YYYY-MM') AS month,
		       COALESCE(SUM(amount), 0) AS total,
		       COUNT(*) AS count
		FROM wallet_transactions
		WHERE wallet_id = $1 AND type = $2
		GROUP BY 1
		ORDER BY 1 DESC
	`

	err := r.db.SelectContext(ctx, &rows, query, walletID, models.TransactionTypeCredit)
	if err != nil {
		return nil, fmt.Errorf("failed to build commission report: %w", err)
	}

	return rows, nil
}

// WalletExists check the existence of a wallet
func (r *WalletRepository) WalletExists(ctx context.Context, walletID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM wallets WHERE id = $1)`

	err := r.db.QueryRowContext(ctx, query, walletID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check wallet existence: %w", err)
	}

	return exists, nil
}

// CreateOperation create a new operation with the status PENDING
func (r *WalletRepository) CreateOperation(ctx context.Context, walletID, operationType string, amount decimal.Decimal, description string) (string, error) {
	operationID := uuid.New().String()

	query := `
		INSERT INTO wallet_operations
		(id, wallet_id, operation_type, amount, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, 'PENDING', NOW())
	`

	_, err := r.db.ExecContext(ctx, query, operationID, walletID, operationType, amount, description)
	if err != nil {
		return "", fmt.Errorf("failed to create operation: %w", err)
	}

	return operationID, nil
}

// GetOperation get the operation by wallet ID and operation ID
func (r *WalletRepository) GetOperation(ctx context.Context, walletID, operationID string) (*models.WalletOperation, error) {
	var operation models.WalletOperation

	query := `
		SELECT id, wallet_id, operation_type, amount, description, status,
		       created_at, processed_at, error
		FROM wallet_operations
		WHERE wallet_id = $1 AND id = $2
	`

	err := r.db.GetContext(ctx, &operation, query, walletID, operationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to get operation from postgres: %w", err)
	}

	return &operation, nil
}

// UpdateOperationStatus update the operation status
func (r *WalletRepository) UpdateOperationStatus(ctx context.Context, operationID, status, errorMsg string) error {
	query := `
		UPDATE wallet_operations
		SET status = $1, processed_at = NOW(), error = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, errorMsg, operationID)
	if err != nil {
		return fmt.Errorf("failed to update operation status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOperationNotFound
	}

	return nil
}
