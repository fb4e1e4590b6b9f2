package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerType identifies which side of the marketplace holds a wallet.
type OwnerType string

const (
	OwnerTypeUser  OwnerType = "user"
	OwnerTypeShop  OwnerType = "shop"
	OwnerTypeAdmin OwnerType = "admin"
)

// Valid reports whether the owner type is one of the known roles.
func (o OwnerType) Valid() bool {
	switch o {
	case OwnerTypeUser, OwnerTypeShop, OwnerTypeAdmin:
		return true
	}
	return false
}

// AutoCreate reports whether a missing wallet is created transparently on
// first access. Shops go through an explicit create call instead.
func (o OwnerType) AutoCreate() bool {
	return o == OwnerTypeUser || o == OwnerTypeAdmin
}

// Transaction type constants. Sign is carried by the type tag, the stored
// amount is always a non-negative magnitude.
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

// Operation type constants
const (
	OperationTypeDeposit  = "DEPOSIT"
	OperationTypeWithdraw = "WITHDRAW"
)

// Operation status constants
const (
	OperationStatusPending   = "PENDING"
	OperationStatusProcessed = "PROCESSED"
	OperationStatusFailed    = "FAILED"
	OperationStatusAccepted  = "accepted"
)

// Message constants
const (
	MessageOperationQueued = "Operation queued for processing"
	MessageWalletCreated   = "Wallet successfully created"
)

// DefaultCurrency is used when a create request carries no currency code.
const DefaultCurrency = "INR"

// Database models

type Wallet struct {
	ID        string          `db:"id" json:"id"`
	OwnerID   string          `db:"owner_id" json:"ownerId"`
	OwnerType OwnerType       `db:"owner_type" json:"ownerType"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	Currency  string          `db:"currency" json:"currency"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

type WalletTransaction struct {
	ID          string          `db:"id" json:"id"`
	WalletID    string          `db:"wallet_id" json:"walletId"`
	Type        string          `db:"type" json:"type"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Currency    string          `db:"currency" json:"currency"`
	Description string          `db:"description" json:"description"`
	ReferenceID string          `db:"reference_id" json:"referenceId,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

type WalletOperation struct {
	ID            string          `db:"id"`
	WalletID      string          `db:"wallet_id"`
	OperationType string          `db:"operation_type"`
	Amount        decimal.Decimal `db:"amount"`
	Description   string          `db:"description"`
	Status        string          `db:"status"` // PENDING, PROCESSED, FAILED
	CreatedAt     time.Time       `db:"created_at"`
	ProcessedAt   *time.Time      `db:"processed_at"`
	Error         *string         `db:"error"`
}

// Request/response models

type WalletCreateRequest struct {
	OwnerID   string `json:"ownerId" validate:"required"`
	OwnerType string `json:"ownerType" validate:"required,oneof=user shop admin"`
	Currency  string `json:"currency" validate:"omitempty,len=3"`
}

type WalletOperationRequest struct {
	OperationType string          `json:"operationType" validate:"required,oneof=DEPOSIT WITHDRAW"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Description   string          `json:"description" validate:"omitempty,max=255"`
}

type WalletResponse struct {
	ID           string              `json:"id"`
	OwnerID      string              `json:"ownerId"`
	OwnerType    OwnerType           `json:"ownerType"`
	Balance      decimal.Decimal     `json:"balance"`
	Currency     string              `json:"currency"`
	Transactions []WalletTransaction `json:"transactions"`
}

type WalletCreateResponse struct {
	WalletResponse
	Status  string `json:"status"`
	Message string `json:"message"`
}

type WalletBalanceResponse struct {
	WalletID string          `json:"walletId"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

type OperationCreateResponse struct {
	OperationID string `json:"operationId"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

type OperationStatusResponse struct {
	OperationID   string          `json:"operationId"`
	WalletID      string          `json:"walletId"`
	OperationType string          `json:"operationType"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
	Error         *string         `json:"error,omitempty"`
}

// TransactionPageResponse is the paginated ledger view returned by the
// transactions endpoint. Filtered tells the client which empty state to
// render when Transactions is empty.
type TransactionPageResponse struct {
	Transactions []WalletTransaction `json:"transactions"`
	Page         int                 `json:"page"`
	PerPage      int                 `json:"perPage"`
	TotalItems   int                 `json:"totalItems"`
	TotalPages   int                 `json:"totalPages"`
	Filtered     bool                `json:"filtered"`
}

// CommissionReportRow aggregates admin commission credits by month.
type CommissionReportRow struct {
	Month string          `json:"month"` // YYYY-MM
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// KafkaMessage is the operation envelope published to the broker. Amount
// travels as a decimal string to avoid float rounding on the wire.
type KafkaMessage struct {
	OperationID   string `json:"operation_id"`
	WalletID      string `json:"wallet_id"`
	OperationType string `json:"operation_type"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

// WalletUpdatedEvent is the invalidation push fanned out to WebSocket
// subscribers after the worker commits a batch. It carries no wallet state,
// only the id to refetch.
type WalletUpdatedEvent struct {
	Event    string `json:"event"`
	WalletID string `json:"walletId"`
}
