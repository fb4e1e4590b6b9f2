package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"petcare-wallet/internal/ledger"
	"petcare-wallet/internal/models"
	"petcare-wallet/internal/repositories/postgresrepo"
	"petcare-wallet/internal/services"

	_ "petcare-wallet/docs"

	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	httpSwagger "github.com/swaggo/http-swagger"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wallet_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})
)

type Wallet struct {
	walletService *services.WalletService
	validate      *validator.Validate
}

func NewWallet(mux *http.ServeMux, walletService *services.WalletService) *Wallet {
	h := &Wallet{
		walletService: walletService,
		validate:      validator.New(),
	}

	mux.HandleFunc("POST /api/v1/wallets", h.createWallet)
	mux.HandleFunc("GET /api/v1/wallets/statements", h.getAllStatements)
	mux.HandleFunc("GET /api/v1/wallets/{ownerType}/{ownerId}", h.getWalletForOwner)
	mux.HandleFunc("GET /api/v1/wallets/{walletId}/balance", h.getBalance)
	mux.HandleFunc("GET /api/v1/wallets/{walletId}/transactions", h.getTransactions)
	mux.HandleFunc("GET /api/v1/wallets/{walletId}/statement", h.getStatement)
	mux.HandleFunc("GET /api/v1/wallets/{walletId}/reports/commission", h.getCommissionReport)
	mux.HandleFunc("POST /api/v1/wallets/{walletId}/operations", h.createOperation)
	mux.HandleFunc("GET /api/v1/wallets/{walletId}/operations/{operationId}", h.getOperation)

	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return h
}

// @Summary Get wallet for an owner
// @Description Returns the wallet of an (ownerId, ownerType) pair with its transactions. User and admin wallets are created transparently on first access; shop owners get a 404 and create explicitly.
// @Tags wallets
// @Produce json
// @Param ownerType path string true "Owner type" Enums(user, shop, admin)
// @Param ownerId path string true "Owner ID"
// @Success 200 {object} models.WalletResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /wallets/{ownerType}/{ownerId} [get]
func (h *Wallet) getWalletForOwner(w http.ResponseWriter, r *http.Request) {
	ownerType := models.OwnerType(r.PathValue("ownerType"))
	ownerID := r.PathValue("ownerId")

	if !ownerType.Valid() {
		h.writeError(w, r, http.StatusBadRequest, "Owner type must be user, shop or admin")
		return
	}
	if ownerID == "" {
		h.writeError(w, r, http.StatusBadRequest, "Owner ID is required")
		return
	}

	wallet, err := h.walletService.GetWalletForOwner(r.Context(), ownerID, ownerType)
	if err != nil {
		if errors.Is(err, postgresrepo.ErrWalletNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Wallet not found")
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to get wallet: %v", err))
		return
	}

	h.writeJSON(w, r, http.StatusOK, wallet)
}

// @Summary Create a wallet
// @Description Creates a wallet for an owner. Creating an existing wallet is not an error, the existing wallet comes back with 200.
// @Tags wallets
// @Accept json
// @Produce json
// @Param wallet body models.WalletCreateRequest true "Create Request"
// @Success 201 {object} models.WalletCreateResponse
// @Success 200 {object} models.WalletCreateResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /wallets [post]
func (h *Wallet) createWallet(w http.ResponseWriter, r *http.Request) {
	var req models.WalletCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	wallet, created, err := h.walletService.CreateWallet(r.Context(), req)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to create wallet: %v", err))
		return
	}

	response := models.WalletCreateResponse{
		WalletResponse: *wallet,
		Status:         "created",
		Message:        models.MessageWalletCreated,
	}

	code := http.StatusCreated
	if !created {
		code = http.StatusOK
		response.Status = "exists"
		response.Message = "Wallet already exists for owner"
	}

	h.writeJSON(w, r, code, response)
}

// @Summary Get wallet balance
// @Description Retrieves the current balance of a wallet by its ID
// @Tags wallets
// @Produce json
// @Param walletId path string true "Wallet ID (UUIDv4)"
// @Success 200 {object} models.WalletBalanceResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /wallets/{walletId}/balance [get]
func (h *Wallet) getBalance(w http.ResponseWriter, r *http.Request) {
	walletID := r.PathValue("walletId")

	if err := h.validate.Var(walletID, "required,uuid4"); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid wallet ID format")
		return
	}

	balance, currency, err := h.walletService.GetWalletBalance(r.Context(), walletID)
	if err != nil {
		if errors.Is(err, postgresrepo.ErrWalletNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Wallet not found")
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to get wallet balance: %v", err))
		return
	}

	h.writeJSON(w, r, http.StatusOK, models.WalletBalanceResponse{
		WalletID: walletID,
		Balance:  balance,
		Currency: currency,
	})
}

// @Summary List wallet transactions
// @Description Paginated, filterable ledger view. Search matches description and reference case-insensitively, type filters credit/debit, ordering is always newest first. Page is clamped into the valid range.
// @Tags transactions
// @Produce json
// @Param walletId path string true "Wallet ID (UUIDv4)"
// @Param search query string false "Search term"
// @Param type query string false "Type filter" Enums(all, credit, debit)
// @Param page query int false "Page (1-based)"
// @Param perPage query int false "Page size" Enums(5, 10, 20, 50)
// @Success 200 {object} models.TransactionPageResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /wallets/{walletId}/transactions [get]
func (h *Wallet) getTransactions(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("GET", "/wallets/{walletId}/transactions"))
	defer timer.ObserveDuration()

	walletID := r.PathValue("walletId")

	if err := h.validate.Var(walletID, "required,uuid4"); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid wallet ID format")
		return
	}

	typeFilter := r.URL.Query().Get("type")
	if typeFilter != "" && typeFilter != ledger.TypeAll &&
		typeFilter != models.TransactionTypeCredit && typeFilter != models.TransactionTypeDebit {
		h.writeError(w, r, http.StatusBadRequest, "Type filter must be all, credit or debit")
		return
	}

	q := ledger.Query{
		Search:  r.URL.Query().Get("search"),
		Type:    typeFilter,
		Page:    atoiOrZero(r.URL.Query().Get("page")),
		PerPage: atoiOrZero(r.URL.Query().Get("perPage")),
	}

	page, err := h.walletService.GetTransactionsPage(r.Context(), walletID, q)
	if err != nil {
		if errors.Is(err, postgresrepo.ErrWalletNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Wallet not found")
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to list transactions: %v", err))
		return
	}

	h.writeJSON(w, r, http.StatusOK, page)
}

// @Summary Download wallet statement
// @Description CSV statement of the wallet's full ledger, newest first. Columns: Date, Type, Description, signed Amount, Reference.
// @Tags transactions
// @Produce text/csv
// @Param walletId path string true "Wallet ID (UUIDv4)"
// @Success 200 {string} string "CSV statement"
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /wallets/{walletId}/statement [get]
func (h *Wallet) getStatement(w http.ResponseWriter, r *http.Request) {
	walletID := r.PathValue("walletId")

	if err := h.validate.Var(walletID, "required,uuid4"); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid wallet ID format")
		return
	}

	csvBytes, filename, err := h.walletService.Statement(r.Context(), walletID)
	if err != nil {
		if errors.Is(err, postgresrepo.ErrWalletNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Wallet not found")
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to build statement: %v", err))
		return
	}

	h.writeCSV(w, r, filename, csvBytes)
}

// @Summary Download statements for all wallets
// @Description Admin export: one CSV spanning the ledger of every wallet.
// @Tags transactions
// @Produce text/csv
// @Success 200 {string} string "CSV statement"
// @Failure 500 {object} map[string]interface{}
// @Router /wallets/statements [get]
func (h *Wallet) getAllStatements(w http.ResponseWriter, r *http.Request) {
	csvBytes, filename, err := h.walletService.AllStatements(r.Context())
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to build statements: %v", err))
		return
	}

	h.writeCSV(w, r, filename, csvBytes)
}

// @Summary Commission report
// @Description Monthly totals of commission credits on an admin wallet.
// @Tags reports
// @Produce json
// @Param walletId path string true "Wallet ID (UUIDv4)"
// @Success 200 {array} models.CommissionReportRow
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /wallets/{walletId}/reports/commission [get]
func (h *Wallet) getCommissionReport(w http.ResponseWriter, r *http.Request) {
	walletID := r.PathValue("walletId")

	if err := h.validate.Var(walletID, "required,uuid4"); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid wallet ID format")
		return
	}

	report, err := h.walletService.CommissionReport(r.Context(), walletID)
	if err != nil {
		switch {
		case errors.Is(err, postgresrepo.ErrWalletNotFound):
			h.writeError(w, r, http.StatusNotFound, "Wallet not found")
		case errors.Is(err, services.ErrNotAdminWallet):
			h.writeError(w, r, http.StatusForbidden, "Commission reports are admin-only")
		default:
			h.writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to build report: %v", err))
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, report)
}

// @Summary Create a wallet operation (deposit/withdraw)
// @Description Queues a deposit or withdrawal for asynchronous processing. A walletUpdated push follows once the worker commits it.
// @Tags operations
// @Accept json
// @Produce json
// @Param walletId path string true "Wallet ID (UUIDv4)"
// @Param operation body models.WalletOperationRequest true "Operation Request"
// @Success 202 {object} models.OperationCreateResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /wallets/{walletId}/operations [post]
func (h *Wallet) createOperation(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpRequestDuration.WithLabelValues("POST", "/wallets/{walletId}/operations"))
	defer timer.ObserveDuration()

	walletID := r.PathValue("walletId")

	if err := h.validate.Var(walletID, "required,uuid4"); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid wallet ID format")
		return
	}

	var req models.WalletOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if !req.Amount.IsPositive() {
		h.writeError(w, r, http.StatusBadRequest, "Amount must be positive")
		return
	}

	operationID, err := h.walletService.CreateOperation(r.Context(), walletID, req)
	if err != nil {
		switch {
		case errors.Is(err, postgresrepo.ErrWalletNotFound):
			h.writeError(w, r, http.StatusNotFound, "Wallet not found")
		case errors.Is(err, services.ErrNonPositiveAmount):
			h.writeError(w, r, http.StatusBadRequest, "Amount must be positive")
		default:
			h.writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to create operation: %v", err))
		}
		return
	}

	response := models.OperationCreateResponse{
		OperationID: operationID,
		Status:      models.OperationStatusAccepted,
		Message:     models.MessageOperationQueued,
	}

	h.writeJSON(w, r, http.StatusAccepted, response)
}

// @Summary Get operation status
// @Description Retrieves the status of a specific operation for a wallet
// @Tags operations
// @Produce json
// @Param walletId path string true "Wallet ID (UUIDv4)"
// @Param operationId path string true "Operation ID (UUIDv4)"
// @Success 200 {object} models.OperationStatusResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /wallets/{walletId}/operations/{operationId} [get]
func (h *Wallet) getOperation(w http.ResponseWriter, r *http.Request) {
	walletID := r.PathValue("walletId")
	operationID := r.PathValue("operationId")

	if err := h.validate.Var(walletID, "required,uuid4"); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid wallet ID format")
		return
	}
	if err := h.validate.Var(operationID, "required,uuid4"); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "Invalid operation ID format")
		return
	}

	operationStatus, err := h.walletService.GetOperation(r.Context(), walletID, operationID)
	if err != nil {
		if errors.Is(err, postgresrepo.ErrOperationNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Operation not found")
			return
		}
		if errors.Is(err, postgresrepo.ErrWalletNotFound) {
			h.writeError(w, r, http.StatusNotFound, "Wallet not found")
			return
		}
		h.writeError(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to get operation status: %v", err))
		return
	}

	h.writeJSON(w, r, http.StatusOK, operationStatus)
}

func (h *Wallet) writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, payload interface{}) {
	httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(statusCode)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func (h *Wallet) writeCSV(w http.ResponseWriter, r *http.Request, filename string, body []byte) {
	httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(http.StatusOK)).Inc()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Wallet) writeError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	errorResponse := map[string]interface{}{
		"error":   http.StatusText(statusCode),
		"message": message,
		"code":    statusCode,
	}

	h.writeJSON(w, r, statusCode, errorResponse)
}

func atoiOrZero(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
