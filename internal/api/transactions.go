package api

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/query"
	"github.com/evanjholt/insidertrack/internal/store"
)

// TransactionsHandler handles transaction CRUD, listing and stats endpoints.
type TransactionsHandler struct {
	DB *gorm.DB
}

type createTransactionRequest struct {
	InsiderID       uint      `json:"insider_id"`
	CompanyID       uint      `json:"company_id"`
	TransactionDate time.Time `json:"transaction_date"`
	TransactionType string    `json:"transaction_type"`
	Shares          int64     `json:"shares"`
	PricePerShare   float64   `json:"price_per_share"`
	TotalValue      float64   `json:"total_value"`
	FilingDate      time.Time `json:"filing_date"`
	Notes           string    `json:"notes"`
}

func (req *createTransactionRequest) validate() []fieldError {
	var errs []fieldError
	if req.InsiderID == 0 {
		errs = append(errs, fieldError{"insider_id", "must be a positive integer"})
	}
	if req.CompanyID == 0 {
		errs = append(errs, fieldError{"company_id", "must be a positive integer"})
	}
	if req.TransactionDate.IsZero() {
		errs = append(errs, fieldError{"transaction_date", "is required"})
	}
	if !model.ValidTransactionType(req.TransactionType) {
		errs = append(errs, fieldError{"transaction_type", "must be buy or sell"})
	}
	if req.Shares <= 0 {
		errs = append(errs, fieldError{"shares", "must be > 0"})
	}
	if req.PricePerShare <= 0 {
		errs = append(errs, fieldError{"price_per_share", "must be > 0"})
	}
	if req.TotalValue <= 0 {
		errs = append(errs, fieldError{"total_value", "must be > 0"})
	}
	if req.FilingDate.IsZero() {
		errs = append(errs, fieldError{"filing_date", "is required"})
	}
	return errs
}

// List handles GET /transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, limit, err := parsePaging(q, maxLimit)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	filter := store.TransactionFilter{Type: q.Get("transaction_type")}
	if filter.Type != "" && !model.ValidTransactionType(filter.Type) {
		jsonError(w, r, http.StatusBadRequest, "transaction_type must be buy or sell")
		return
	}
	if filter.CompanyID, err = parseOptionalUint(q, "company_id"); err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.InsiderID, err = parseOptionalUint(q, "insider_id"); err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.StartDate, err = parseOptionalDate(q, "start_date"); err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.EndDate, err = parseOptionalDate(q, "end_date"); err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MinValue, err = parseOptionalFloat(q, "min_value"); err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.MaxValue, err = parseOptionalFloat(q, "max_value"); err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	transactions, total, err := store.ListTransactions(r.Context(), h.DB, filter, skip, limit)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, query.NewPage(transactions, total, skip, limit))
}

// Get handles GET /transactions/{id}.
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	transaction, err := store.GetTransaction(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, transaction)
}

// Create handles POST /transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		validationError(w, r, errs)
		return
	}

	transaction := model.Transaction{
		InsiderID:       req.InsiderID,
		CompanyID:       req.CompanyID,
		TransactionDate: req.TransactionDate,
		TransactionType: req.TransactionType,
		Shares:          req.Shares,
		PricePerShare:   req.PricePerShare,
		TotalValue:      req.TotalValue,
		FilingDate:      req.FilingDate,
		Notes:           req.Notes,
	}
	if err := store.CreateTransaction(r.Context(), h.DB, &transaction); err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusCreated, transaction)
}

// Update handles PUT /transactions/{id}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var patch model.TransactionPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var errs []fieldError
	if patch.TransactionType != nil && !model.ValidTransactionType(*patch.TransactionType) {
		errs = append(errs, fieldError{"transaction_type", "must be buy or sell"})
	}
	if patch.Shares != nil && *patch.Shares <= 0 {
		errs = append(errs, fieldError{"shares", "must be > 0"})
	}
	if patch.PricePerShare != nil && *patch.PricePerShare <= 0 {
		errs = append(errs, fieldError{"price_per_share", "must be > 0"})
	}
	if patch.TotalValue != nil && *patch.TotalValue <= 0 {
		errs = append(errs, fieldError{"total_value", "must be > 0"})
	}
	if len(errs) > 0 {
		validationError(w, r, errs)
		return
	}

	transaction, err := store.UpdateTransaction(r.Context(), h.DB, id, patch)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, transaction)
}

// Delete handles DELETE /transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.DeleteTransaction(r.Context(), h.DB, id); err != nil {
		storeError(w, r, err)
		return
	}
	deletedResponse(w, "Transaction deleted successfully", "deleted_transaction_id", id)
}

// ByInsider handles GET /transactions/insider/{id}.
func (h *TransactionsHandler) ByInsider(w http.ResponseWriter, r *http.Request) {
	h.byReference(w, r, store.ListTransactionsByInsider)
}

// ByCompany handles GET /transactions/company/{id}.
func (h *TransactionsHandler) ByCompany(w http.ResponseWriter, r *http.Request) {
	h.byReference(w, r, store.ListTransactionsByCompany)
}

func (h *TransactionsHandler) byReference(w http.ResponseWriter, r *http.Request,
	list func(ctx context.Context, gdb *gorm.DB, id uint, txType string, limit int) ([]model.Transaction, error),
) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	txType := q.Get("transaction_type")
	if txType != "" && !model.ValidTransactionType(txType) {
		jsonError(w, r, http.StatusBadRequest, "transaction_type must be buy or sell")
		return
	}
	limit, err := parseLimit(q, 50, maxLimit)
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	transactions, err := list(r.Context(), h.DB, id, txType, limit)
	if err != nil {
		storeError(w, r, err)
		return
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	jsonResponse(w, http.StatusOK, transactions)
}

// Stats handles GET /transactions/stats.
func (h *TransactionsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseOptionalDate(q, "start_date")
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	end, err := parseOptionalDate(q, "end_date")
	if err != nil {
		jsonError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := store.TransactionStatsFor(r.Context(), h.DB, start, end)
	if err != nil {
		storeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}
