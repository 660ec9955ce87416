package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/query"
)

// InsiderFilter holds the optional listing filters for insiders.
type InsiderFilter struct {
	ActiveOnly bool
}

func (f InsiderFilter) criteria() *query.Criteria {
	c := &query.Criteria{}
	if f.ActiveOnly {
		c.IsTrue("is_active")
	}
	return c
}

// ListInsiders returns the [skip, skip+limit) window of insiders matching
// f, plus the total match count.
func ListInsiders(ctx context.Context, gdb *gorm.DB, f InsiderFilter, skip, limit int) ([]model.Insider, int64, error) {
	crit := f.criteria()

	var total int64
	if err := crit.Apply(gdb.WithContext(ctx).Model(&model.Insider{})).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting insiders: %w", err)
	}

	var insiders []model.Insider
	if err := crit.Apply(gdb.WithContext(ctx)).Offset(skip).Limit(limit).Find(&insiders).Error; err != nil {
		return nil, 0, fmt.Errorf("listing insiders: %w", err)
	}
	return insiders, total, nil
}

// GetInsider returns an insider by ID.
func GetInsider(ctx context.Context, gdb *gorm.DB, id uint) (*model.Insider, error) {
	var insider model.Insider
	err := gdb.WithContext(ctx).First(&insider, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: EntityInsider, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("getting insider: %w", err)
	}
	return &insider, nil
}

// CreateInsider inserts a new insider after checking that the referenced
// company exists.
func CreateInsider(ctx context.Context, gdb *gorm.DB, insider *model.Insider) error {
	if _, err := GetCompany(ctx, gdb, insider.CompanyID); err != nil {
		return err
	}

	insider.IsActive = true
	if err := gdb.WithContext(ctx).Create(insider).Error; err != nil {
		return fmt.Errorf("creating insider: %w", err)
	}
	return nil
}

// UpdateInsider applies a partial update and returns the updated record.
// A company change is checked for existence first.
func UpdateInsider(ctx context.Context, gdb *gorm.DB, id uint, patch model.InsiderPatch) (*model.Insider, error) {
	insider, err := GetInsider(ctx, gdb, id)
	if err != nil {
		return nil, err
	}

	if patch.CompanyID != nil {
		if _, err := GetCompany(ctx, gdb, *patch.CompanyID); err != nil {
			return nil, err
		}
	}

	changes := patch.Changes()
	if len(changes) == 0 {
		return insider, nil
	}
	if err := gdb.WithContext(ctx).Model(insider).Updates(changes).Error; err != nil {
		return nil, fmt.Errorf("updating insider: %w", err)
	}
	return GetInsider(ctx, gdb, id)
}

// DeleteInsider removes an insider and returns the deleted record.
// Transactions referencing it are left in place (no cascade).
func DeleteInsider(ctx context.Context, gdb *gorm.DB, id uint) (*model.Insider, error) {
	insider, err := GetInsider(ctx, gdb, id)
	if err != nil {
		return nil, err
	}
	if err := gdb.WithContext(ctx).Delete(&model.Insider{}, id).Error; err != nil {
		return nil, fmt.Errorf("deleting insider: %w", err)
	}
	return insider, nil
}

// SearchInsiders matches q against insider names (case-insensitive contains).
func SearchInsiders(ctx context.Context, gdb *gorm.DB, q string, limit int) ([]model.Insider, error) {
	crit := (&query.Criteria{}).Contains("name", q)

	var insiders []model.Insider
	if err := crit.Apply(gdb.WithContext(ctx)).Limit(limit).Find(&insiders).Error; err != nil {
		return nil, fmt.Errorf("searching insiders: %w", err)
	}
	return insiders, nil
}

// ListInsidersByCompany returns all insiders of a company. The company must
// exist.
func ListInsidersByCompany(ctx context.Context, gdb *gorm.DB, companyID uint, activeOnly bool) ([]model.Insider, error) {
	if _, err := GetCompany(ctx, gdb, companyID); err != nil {
		return nil, err
	}

	crit := (&query.Criteria{}).Equal("company_id", companyID)
	if activeOnly {
		crit.IsTrue("is_active")
	}

	var insiders []model.Insider
	if err := crit.Apply(gdb.WithContext(ctx)).Find(&insiders).Error; err != nil {
		return nil, fmt.Errorf("listing insiders by company: %w", err)
	}
	return insiders, nil
}
