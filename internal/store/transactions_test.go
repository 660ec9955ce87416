package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evanjholt/insidertrack/internal/db"
	"github.com/evanjholt/insidertrack/internal/model"
	"gorm.io/gorm"
)

func buyTransaction(insiderID, companyID uint, totalValue float64) *model.Transaction {
	return &model.Transaction{
		InsiderID:       insiderID,
		CompanyID:       companyID,
		TransactionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TransactionType: model.TransactionBuy,
		Shares:          100,
		PricePerShare:   totalValue / 100,
		TotalValue:      totalValue,
		FilingDate:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	}
}

func seedInsider(t *testing.T, database *gorm.DB, companyID uint, name string) *model.Insider {
	t.Helper()
	insider := &model.Insider{Name: name, Title: "Director", CompanyID: companyID}
	if err := CreateInsider(context.Background(), database, insider); err != nil {
		t.Fatalf("seeding insider %s: %v", name, err)
	}
	return insider
}

func TestCreateTransactionUnknownInsider(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, database, "SHOP")

	err := CreateTransaction(ctx, database, buyTransaction(999, company.ID, 100))
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Entity != EntityInsider {
		t.Errorf("expected insider not-found, got %q", nf.Entity)
	}

	// The failed create wrote nothing.
	_, total, _ := ListTransactions(ctx, database, TransactionFilter{}, 0, 10)
	if total != 0 {
		t.Errorf("expected empty store, got total %d", total)
	}
}

func TestCreateTransactionUnknownCompany(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, database, "SHOP")
	insider := seedInsider(t, database, company.ID, "John Smith")

	err := CreateTransaction(ctx, database, buyTransaction(insider.ID, 999, 100))
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Entity != EntityCompany {
		t.Errorf("expected company not-found, got %q", nf.Entity)
	}
}

func TestListTransactionsOrderAndWindow(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, database, "SHOP")
	insider := seedInsider(t, database, company.ID, "John Smith")

	for i := 0; i < 5; i++ {
		transaction := buyTransaction(insider.ID, company.ID, float64(100*(i+1)))
		transaction.TransactionDate = time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC)
		if err := CreateTransaction(ctx, database, transaction); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	transactions, total, err := ListTransactions(ctx, database, TransactionFilter{}, 0, 3)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total 5, got %d", total)
	}
	if len(transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(transactions))
	}
	// Most recent first, so the window is ordered before it is sliced.
	for i := 1; i < len(transactions); i++ {
		if transactions[i].TransactionDate.After(transactions[i-1].TransactionDate) {
			t.Errorf("transactions out of order at %d", i)
		}
	}
	if transactions[0].TransactionDate.Day() != 5 {
		t.Errorf("expected most recent first, got day %d", transactions[0].TransactionDate.Day())
	}

	// Second window continues where the first left off.
	rest, _, _ := ListTransactions(ctx, database, TransactionFilter{}, 3, 3)
	if len(rest) != 2 {
		t.Errorf("expected 2 transactions in second window, got %d", len(rest))
	}
}

func TestListTransactionsLastPage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, database, "SHOP")
	insider := seedInsider(t, database, company.ID, "John Smith")

	for i := 0; i < 25; i++ {
		transaction := buyTransaction(insider.ID, company.ID, 100)
		transaction.TransactionDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		if err := CreateTransaction(ctx, database, transaction); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	transactions, total, err := ListTransactions(ctx, database, TransactionFilter{}, 20, 10)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(transactions) != 5 {
		t.Errorf("expected 5 items on the last page, got %d", len(transactions))
	}
	if total != 25 {
		t.Errorf("expected total 25, got %d", total)
	}
}

func TestListTransactionsValueFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, database, "SHOP")
	insider := seedInsider(t, database, company.ID, "John Smith")

	for _, value := range []float64{100, 500, 1000} {
		if err := CreateTransaction(ctx, database, buyTransaction(insider.ID, company.ID, value)); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}

	min, max := 200.0, 900.0
	matched, total, err := ListTransactions(ctx, database, TransactionFilter{MinValue: &min, MaxValue: &max}, 0, 10)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(matched) != 1 || total != 1 {
		t.Fatalf("expected 1 transaction, got %d total %d", len(matched), total)
	}
	if matched[0].TotalValue != 500 {
		t.Errorf("expected value 500, got %f", matched[0].TotalValue)
	}
}

func TestUpdateTransaction(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, database, "SHOP")
	insider := seedInsider(t, database, company.ID, "John Smith")

	transaction := buyTransaction(insider.ID, company.ID, 100)
	CreateTransaction(ctx, database, transaction)

	notes := "Automatic exercise of stock options"
	updated, err := UpdateTransaction(ctx, database, transaction.ID, model.TransactionPatch{Notes: &notes})
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("expected notes to change, got %q", updated.Notes)
	}
	if updated.TotalValue != 100 {
		t.Errorf("unpatched field changed: %f", updated.TotalValue)
	}
}

func TestDeleteTransaction(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, database, "SHOP")
	insider := seedInsider(t, database, company.ID, "John Smith")

	transaction := buyTransaction(insider.ID, company.ID, 100)
	CreateTransaction(ctx, database, transaction)

	if err := DeleteTransaction(ctx, database, transaction.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if _, err := GetTransaction(ctx, database, transaction.ID); err == nil {
		t.Error("expected transaction to be gone")
	}

	err := DeleteTransaction(ctx, database, transaction.ID)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
}

func TestListTransactionsByInsiderAndCompany(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, database, "SHOP")
	other := seedCompany(t, database, "RY")
	insider := seedInsider(t, database, company.ID, "John Smith")
	otherInsider := seedInsider(t, database, other.ID, "Sarah Johnson")

	CreateTransaction(ctx, database, buyTransaction(insider.ID, company.ID, 100))
	sell := buyTransaction(insider.ID, company.ID, 200)
	sell.TransactionType = model.TransactionSell
	CreateTransaction(ctx, database, sell)
	CreateTransaction(ctx, database, buyTransaction(otherInsider.ID, other.ID, 300))

	mine, err := ListTransactionsByInsider(ctx, database, insider.ID, "", 50)
	if err != nil {
		t.Fatalf("ListTransactionsByInsider: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 transactions, got %d", len(mine))
	}

	sells, _ := ListTransactionsByInsider(ctx, database, insider.ID, model.TransactionSell, 50)
	if len(sells) != 1 || sells[0].TotalValue != 200 {
		t.Errorf("expected 1 sell worth 200, got %v", sells)
	}

	theirs, err := ListTransactionsByCompany(ctx, database, other.ID, "", 50)
	if err != nil {
		t.Fatalf("ListTransactionsByCompany: %v", err)
	}
	if len(theirs) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(theirs))
	}

	var nf *NotFoundError
	if _, err := ListTransactionsByInsider(ctx, database, 999, "", 50); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError for unknown insider, got %v", err)
	}
	if _, err := ListTransactionsByCompany(ctx, database, 999, "", 50); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError for unknown company, got %v", err)
	}
}

func TestTransactionStats(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, database, "SHOP")
	other := seedCompany(t, database, "RY")
	insider := seedInsider(t, database, company.ID, "John Smith")
	otherInsider := seedInsider(t, database, other.ID, "Sarah Johnson")

	for i := 0; i < 3; i++ {
		if err := CreateTransaction(ctx, database, buyTransaction(insider.ID, company.ID, 100)); err != nil {
			t.Fatalf("CreateTransaction: %v", err)
		}
	}
	sell := buyTransaction(otherInsider.ID, other.ID, 50)
	sell.TransactionType = model.TransactionSell
	if err := CreateTransaction(ctx, database, sell); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	stats, err := TransactionStatsFor(ctx, database, nil, nil)
	if err != nil {
		t.Fatalf("TransactionStatsFor: %v", err)
	}
	if stats.TotalTransactions != 4 {
		t.Errorf("expected 4 transactions, got %d", stats.TotalTransactions)
	}
	if stats.TotalBuyValue != 300 {
		t.Errorf("expected buy value 300, got %f", stats.TotalBuyValue)
	}
	if stats.TotalSellValue != 50 {
		t.Errorf("expected sell value 50, got %f", stats.TotalSellValue)
	}
	if stats.NetValue != 250 {
		t.Errorf("expected net value 250, got %f", stats.NetValue)
	}
	if stats.MostActiveInsider == nil || *stats.MostActiveInsider != "John Smith" {
		t.Errorf("expected most active insider 'John Smith', got %v", stats.MostActiveInsider)
	}
	if stats.MostActiveCompany == nil || *stats.MostActiveCompany != "SHOP Corp" {
		t.Errorf("expected most active company 'SHOP Corp', got %v", stats.MostActiveCompany)
	}
}

func TestTransactionStatsDateWindow(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	company := seedCompany(t, database, "SHOP")
	insider := seedInsider(t, database, company.ID, "John Smith")

	early := buyTransaction(insider.ID, company.ID, 100)
	early.TransactionDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	CreateTransaction(ctx, database, early)
	late := buyTransaction(insider.ID, company.ID, 200)
	late.TransactionDate = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	CreateTransaction(ctx, database, late)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	stats, err := TransactionStatsFor(ctx, database, &start, nil)
	if err != nil {
		t.Fatalf("TransactionStatsFor: %v", err)
	}
	if stats.TotalTransactions != 1 || stats.TotalBuyValue != 200 {
		t.Errorf("expected only the late transaction, got %d worth %f", stats.TotalTransactions, stats.TotalBuyValue)
	}
}

func TestTransactionStatsEmpty(t *testing.T) {
	database := db.NewTestDB(t)

	stats, err := TransactionStatsFor(context.Background(), database, nil, nil)
	if err != nil {
		t.Fatalf("TransactionStatsFor: %v", err)
	}
	if stats.TotalTransactions != 0 || stats.NetValue != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.MostActiveInsider != nil || stats.MostActiveCompany != nil {
		t.Error("expected nil most-active names for empty set")
	}
}
