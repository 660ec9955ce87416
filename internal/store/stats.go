package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/evanjholt/insidertrack/internal/model"
)

// TransactionStatsFor computes summary statistics over the date-filtered
// transaction set, without pagination. Most-active names are resolved via
// lookups and nil when the filtered set is empty.
func TransactionStatsFor(ctx context.Context, gdb *gorm.DB, start, end *time.Time) (*model.TransactionStats, error) {
	f := TransactionFilter{StartDate: start, EndDate: end}

	var transactions []model.Transaction
	if err := f.criteria().Apply(gdb.WithContext(ctx)).Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("loading transactions for stats: %w", err)
	}

	stats, insiderID, companyID := computeStats(transactions)

	if insiderID != 0 {
		if insider, err := GetInsider(ctx, gdb, insiderID); err == nil {
			stats.MostActiveInsider = &insider.Name
		}
	}
	if companyID != 0 {
		if company, err := GetCompany(ctx, gdb, companyID); err == nil {
			stats.MostActiveCompany = &company.Name
		}
	}
	return stats, nil
}

// computeStats aggregates the given set and returns the ids of the most
// active insider and company (0 when the set is empty). Highest transaction
// count wins; ties break toward the lowest id so that the result does not
// depend on iteration order.
func computeStats(transactions []model.Transaction) (*model.TransactionStats, uint, uint) {
	stats := &model.TransactionStats{
		TotalTransactions: len(transactions),
	}

	insiderCounts := map[uint]int{}
	companyCounts := map[uint]int{}
	for _, t := range transactions {
		switch t.TransactionType {
		case model.TransactionBuy:
			stats.TotalBuyValue += t.TotalValue
		case model.TransactionSell:
			stats.TotalSellValue += t.TotalValue
		}
		insiderCounts[t.InsiderID]++
		companyCounts[t.CompanyID]++
	}
	stats.NetValue = stats.TotalBuyValue - stats.TotalSellValue

	return stats, mostFrequent(insiderCounts), mostFrequent(companyCounts)
}

func mostFrequent(counts map[uint]int) uint {
	var best uint
	bestCount := 0
	for id, count := range counts {
		if count > bestCount || (count == bestCount && count > 0 && id < best) {
			best = id
			bestCount = count
		}
	}
	return best
}
