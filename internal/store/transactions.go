package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/query"
)

// TransactionFilter holds the optional listing filters for transactions.
type TransactionFilter struct {
	Type      string
	CompanyID uint
	InsiderID uint
	StartDate *time.Time
	EndDate   *time.Time
	MinValue  *float64
	MaxValue  *float64
}

func (f TransactionFilter) criteria() *query.Criteria {
	c := &query.Criteria{}
	if f.Type != "" {
		c.Equal("transaction_type", f.Type)
	}
	if f.CompanyID != 0 {
		c.Equal("company_id", f.CompanyID)
	}
	if f.InsiderID != 0 {
		c.Equal("insider_id", f.InsiderID)
	}
	if f.StartDate != nil {
		c.AtLeast("transaction_date", *f.StartDate)
	}
	if f.EndDate != nil {
		c.AtMost("transaction_date", *f.EndDate)
	}
	if f.MinValue != nil {
		c.AtLeast("total_value", *f.MinValue)
	}
	if f.MaxValue != nil {
		c.AtMost("total_value", *f.MaxValue)
	}
	return c
}

// ListTransactions returns the [skip, skip+limit) window of transactions
// matching f, plus the total match count. Results are ordered by
// transaction date, most recent first, before the window is applied.
func ListTransactions(ctx context.Context, gdb *gorm.DB, f TransactionFilter, skip, limit int) ([]model.Transaction, int64, error) {
	crit := f.criteria()

	var total int64
	if err := crit.Apply(gdb.WithContext(ctx).Model(&model.Transaction{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	var transactions []model.Transaction
	err := crit.Apply(gdb.WithContext(ctx)).
		Order("transaction_date DESC").
		Offset(skip).
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing transactions: %w", err)
	}
	return transactions, total, nil
}

// GetTransaction returns a transaction by ID.
func GetTransaction(ctx context.Context, gdb *gorm.DB, id uint) (*model.Transaction, error) {
	var transaction model.Transaction
	err := gdb.WithContext(ctx).First(&transaction, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: EntityTransaction, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}
	return &transaction, nil
}

// CreateTransaction inserts a new transaction after checking that the
// referenced insider and company both exist. Nothing is written when either
// check fails.
func CreateTransaction(ctx context.Context, gdb *gorm.DB, transaction *model.Transaction) error {
	if _, err := GetInsider(ctx, gdb, transaction.InsiderID); err != nil {
		return err
	}
	if _, err := GetCompany(ctx, gdb, transaction.CompanyID); err != nil {
		return err
	}

	if err := gdb.WithContext(ctx).Create(transaction).Error; err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}
	return nil
}

// UpdateTransaction applies a partial update and returns the updated record.
func UpdateTransaction(ctx context.Context, gdb *gorm.DB, id uint, patch model.TransactionPatch) (*model.Transaction, error) {
	transaction, err := GetTransaction(ctx, gdb, id)
	if err != nil {
		return nil, err
	}

	changes := patch.Changes()
	if len(changes) == 0 {
		return transaction, nil
	}
	if err := gdb.WithContext(ctx).Model(transaction).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("updating transaction: %w", err)
	}
	return GetTransaction(ctx, gdb, id)
}

// DeleteTransaction removes a transaction.
func DeleteTransaction(ctx context.Context, gdb *gorm.DB, id uint) error {
	if _, err := GetTransaction(ctx, gdb, id); err != nil {
		return err
	}
	if err := gdb.WithContext(ctx).Delete(&model.Transaction{}, id).Error; err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return nil
}

// ListTransactionsByInsider returns an insider's transactions, most recent
// first. The insider must exist.
func ListTransactionsByInsider(ctx context.Context, gdb *gorm.DB, insiderID uint, txType string, limit int) ([]model.Transaction, error) {
	if _, err := GetInsider(ctx, gdb, insiderID); err != nil {
		return nil, err
	}
	return listRecentTransactions(ctx, gdb, TransactionFilter{InsiderID: insiderID, Type: txType}, limit)
}

// ListTransactionsByCompany returns a company's transactions, most recent
// first. The company must exist.
func ListTransactionsByCompany(ctx context.Context, gdb *gorm.DB, companyID uint, txType string, limit int) ([]model.Transaction, error) {
	if _, err := GetCompany(ctx, gdb, companyID); err != nil {
		return nil, err
	}
	return listRecentTransactions(ctx, gdb, TransactionFilter{CompanyID: companyID, Type: txType}, limit)
}

func listRecentTransactions(ctx context.Context, gdb *gorm.DB, f TransactionFilter, limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := f.criteria().Apply(gdb.WithContext(ctx)).
		Order("transaction_date DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("listing recent transactions: %w", err)
	}
	return transactions, nil
}
