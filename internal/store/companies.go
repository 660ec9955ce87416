package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/query"
)

// CompanyFilter holds the optional listing filters for companies. Zero
// values contribute no condition.
type CompanyFilter struct {
	Sector       string
	Exchange     string
	MinMarketCap *float64
	MaxMarketCap *float64
	ActiveOnly   bool
}

func (f CompanyFilter) criteria() *query.Criteria {
	c := &query.Criteria{}
	if f.Sector != "" {
		c.Contains("sector", f.Sector)
	}
	if f.Exchange != "" {
		c.Equal("exchange", f.Exchange)
	}
	if f.MinMarketCap != nil {
		c.AtLeast("market_cap", *f.MinMarketCap)
	}
	if f.MaxMarketCap != nil {
		c.AtMost("market_cap", *f.MaxMarketCap)
	}
	if f.ActiveOnly {
		c.IsTrue("is_active")
	}
	return c
}

// ListCompanies returns the [skip, skip+limit) window of companies matching
// f, plus the total match count.
func ListCompanies(ctx context.Context, gdb *gorm.DB, f CompanyFilter, skip, limit int) ([]model.Company, int64, error) {
	crit := f.criteria()

	var total int64
	if err := crit.Apply(gdb.WithContext(ctx).Model(&model.Company{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting companies: %w", err)
	}

	var companies []model.Company
	if err := crit.Apply(gdb.WithContext(ctx)).Offset(skip).Limit(limit).Find(&companies).Error; err != nil {
		return nil, 0, fmt.Errorf("listing companies: %w", err)
	}
	return companies, total, nil
}

// GetCompany returns a company by ID.
func GetCompany(ctx context.Context, gdb *gorm.DB, id uint) (*model.Company, error) {
	var company model.Company
	err := gdb.WithContext(ctx).First(&company, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: EntityCompany, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("getting company: %w", err)
	}
	return &company, nil
}

// CreateCompany inserts a new company after checking symbol uniqueness.
// The symbol check and the insert are not atomic; the unique index on
// symbol backstops concurrent writers.
func CreateCompany(ctx context.Context, gdb *gorm.DB, company *model.Company) error {
	if err := checkSymbolFree(ctx, gdb, company.Symbol); err != nil {
		return err
	}

	company.IsActive = true
	if err := gdb.WithContext(ctx).Create(company).Error; err != nil {
		return fmt.Errorf("creating company: %w", err)
	}
	return nil
}

// UpdateCompany applies a partial update and returns the updated record.
// A symbol change is checked for uniqueness first.
func UpdateCompany(ctx context.Context, gdb *gorm.DB, id uint, patch model.CompanyPatch) (*model.Company, error) {
	company, err := GetCompany(ctx, gdb, id)
	if err != nil {
		return nil, err
	}

	if patch.Symbol != nil && *patch.Symbol != company.Symbol {
		if err := checkSymbolFree(ctx, gdb, *patch.Symbol); err != nil {
			return nil, err
		}
	}

	changes := patch.Changes()
	if len(changes) == 0 {
		return company, nil
	}
	if err := gdb.WithContext(ctx).Model(company).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("updating company: %w", err)
	}
	return GetCompany(ctx, gdb, id)
}

// DeleteCompany removes a company and returns the deleted record. Insiders
// and transactions referencing it are left in place (no cascade).
func DeleteCompany(ctx context.Context, gdb *gorm.DB, id uint) (*model.Company, error) {
	company, err := GetCompany(ctx, gdb, id)
	if err != nil {
		return nil, err
	}
	if err := gdb.WithContext(ctx).Delete(&model.Company{}, id).Error; err != nil {
		return nil, fmt.Errorf("deleting company: %w", err)
	}
	return company, nil
}

// ToggleCompanyStatus flips is_active and returns the updated record.
func ToggleCompanyStatus(ctx context.Context, gdb *gorm.DB, id uint) (*model.Company, error) {
	company, err := GetCompany(ctx, gdb, id)
	if err != nil {
		return nil, err
	}
	if err := gdb.WithContext(ctx).Model(company).Update("is_active", !company.IsActive).Error; err != nil {
		return nil, fmt.Errorf("toggling company status: %w", err)
	}
	return GetCompany(ctx, gdb, id)
}

// ListSectors returns the distinct non-empty sectors, sorted.
func ListSectors(ctx context.Context, gdb *gorm.DB) ([]string, error) {
	var sectors []string
	err := gdb.WithContext(ctx).
		Model(&model.Company{}).
		Where("sector <> ''").
		Distinct().
		Order("sector").
		Pluck("sector", &sectors).Error
	if err != nil {
		return nil, fmt.Errorf("listing sectors: %w", err)
	}
	return sectors, nil
}

// SearchCompanies matches q against company name or symbol
// (case-insensitive contains).
func SearchCompanies(ctx context.Context, gdb *gorm.DB, q string, limit int) ([]model.Company, error) {
	crit := (&query.Criteria{}).AnyContains(q, "name", "symbol")

	var companies []model.Company
	if err := crit.Apply(gdb.WithContext(ctx)).Limit(limit).Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("searching companies: %w", err)
	}
	return companies, nil
}

func checkSymbolFree(ctx context.Context, gdb *gorm.DB, symbol string) error {
	var existing model.Company
	err := gdb.WithContext(ctx).Where("symbol = ?", symbol).First(&existing).Error
	if err == nil {
		return &DuplicateError{Entity: EntityCompany, Field: "symbol", Value: symbol}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking symbol: %w", err)
	}
	return nil
}
