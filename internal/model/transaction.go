package model

import "time"

// Transaction records a single insider buy or sell filing.
type Transaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	InsiderID       uint      `gorm:"not null;index" json:"insider_id"`
	CompanyID       uint      `gorm:"not null;index" json:"company_id"`
	TransactionDate time.Time `gorm:"not null;index" json:"transaction_date"`
	TransactionType string    `gorm:"size:10;not null" json:"transaction_type"`
	Shares          int64     `gorm:"not null" json:"shares"`
	PricePerShare   float64   `gorm:"not null" json:"price_per_share"`
	TotalValue      float64   `gorm:"not null" json:"total_value"`
	FilingDate      time.Time `gorm:"not null" json:"filing_date"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Transaction types.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// ValidTransactionType reports whether s is a known transaction type.
func ValidTransactionType(s string) bool {
	return s == TransactionBuy || s == TransactionSell
}

// TransactionPatch enumerates the transaction fields a partial update may
// change. Referenced insider and company are fixed at creation time.
type TransactionPatch struct {
	TransactionDate *time.Time `json:"transaction_date"`
	TransactionType *string    `json:"transaction_type"`
	Shares          *int64     `json:"shares"`
	PricePerShare   *float64   `json:"price_per_share"`
	TotalValue      *float64   `json:"total_value"`
	FilingDate      *time.Time `json:"filing_date"`
	Notes           *string    `json:"notes"`
}

// Changes returns the set fields as a column-keyed map for the store.
func (p TransactionPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.TransactionDate != nil {
		changes["transaction_date"] = *p.TransactionDate
	}
	if p.TransactionType != nil {
		changes["transaction_type"] = *p.TransactionType
	}
	if p.Shares != nil {
		changes["shares"] = *p.Shares
	}
	if p.PricePerShare != nil {
		changes["price_per_share"] = *p.PricePerShare
	}
	if p.TotalValue != nil {
		changes["total_value"] = *p.TotalValue
	}
	if p.FilingDate != nil {
		changes["filing_date"] = *p.FilingDate
	}
	if p.Notes != nil {
		changes["notes"] = *p.Notes
	}
	return changes
}

// TransactionStats summarizes a filtered transaction set.
type TransactionStats struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalBuyValue     float64 `json:"total_buy_value"`
	TotalSellValue    float64 `json:"total_sell_value"`
	NetValue          float64 `json:"net_value"`
	MostActiveInsider *string `json:"most_active_insider"`
	MostActiveCompany *string `json:"most_active_company"`
}
