package model

import "time"

// Company represents a publicly traded Canadian company.
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;index" json:"name"`
	Symbol    string    `gorm:"size:10;uniqueIndex;not null" json:"symbol"`
	Sector    string    `gorm:"size:100" json:"sector,omitempty"`
	MarketCap float64   `json:"market_cap,omitempty"`
	Exchange  string    `gorm:"size:50;not null;default:TSX" json:"exchange"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// Canadian stock exchanges.
const (
	ExchangeTSX  = "TSX"
	ExchangeTSXV = "TSXV"
	ExchangeCSE  = "CSE"
	ExchangeNEO  = "NEO"
)

// ValidExchange reports whether s is a known exchange code.
func ValidExchange(s string) bool {
	switch s {
	case ExchangeTSX, ExchangeTSXV, ExchangeCSE, ExchangeNEO:
		return true
	}
	return false
}

// CompanyPatch enumerates the company fields a partial update may change.
// Nil fields are left untouched.
type CompanyPatch struct {
	Name      *string  `json:"name"`
	Symbol    *string  `json:"symbol"`
	Sector    *string  `json:"sector"`
	MarketCap *float64 `json:"market_cap"`
	Exchange  *string  `json:"exchange"`
}

// Changes returns the set fields as a column-keyed map for the store.
func (p CompanyPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Symbol != nil {
		changes["symbol"] = *p.Symbol
	}
	if p.Sector != nil {
		changes["sector"] = *p.Sector
	}
	if p.MarketCap != nil {
		changes["market_cap"] = *p.MarketCap
	}
	if p.Exchange != nil {
		changes["exchange"] = *p.Exchange
	}
	return changes
}
