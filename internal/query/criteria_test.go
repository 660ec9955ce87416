package query

import (
	"testing"

	"github.com/evanjholt/insidertrack/internal/db"
	"github.com/evanjholt/insidertrack/internal/model"
)

func TestCriteriaConjunction(t *testing.T) {
	database := db.NewTestDB(t)

	companies := []model.Company{
		{Name: "Shopify Inc.", Symbol: "SHOP", Sector: "Technology", MarketCap: 85_000_000_000, Exchange: "TSX", IsActive: true},
		{Name: "Royal Bank of Canada", Symbol: "RY", Sector: "Financial Services", MarketCap: 180_000_000_000, Exchange: "TSX", IsActive: true},
		{Name: "Lightspeed Commerce Inc.", Symbol: "LSPD", Sector: "Technology", MarketCap: 3_500_000_000, Exchange: "TSX", IsActive: false},
	}
	if err := database.Create(&companies).Error; err != nil {
		t.Fatalf("seeding companies: %v", err)
	}

	crit := (&Criteria{}).Contains("sector", "tech").AtLeast("market_cap", 10_000_000_000.0)
	var matched []model.Company
	if err := crit.Apply(database).Find(&matched).Error; err != nil {
		t.Fatalf("applying criteria: %v", err)
	}
	if len(matched) != 1 || matched[0].Symbol != "SHOP" {
		t.Errorf("expected only SHOP, got %v", matched)
	}

	// Same conditions in the opposite order select the same set.
	reversed := (&Criteria{}).AtLeast("market_cap", 10_000_000_000.0).Contains("sector", "tech")
	var matched2 []model.Company
	if err := reversed.Apply(database).Find(&matched2).Error; err != nil {
		t.Fatalf("applying reversed criteria: %v", err)
	}
	if len(matched2) != 1 || matched2[0].Symbol != "SHOP" {
		t.Errorf("expected only SHOP with reversed order, got %v", matched2)
	}
}

func TestCriteriaEmptySelectsEverything(t *testing.T) {
	database := db.NewTestDB(t)

	companies := []model.Company{
		{Name: "A Corp", Symbol: "A", Exchange: "TSX"},
		{Name: "B Corp", Symbol: "B", Exchange: "TSX"},
	}
	if err := database.Create(&companies).Error; err != nil {
		t.Fatalf("seeding companies: %v", err)
	}

	crit := &Criteria{}
	if !crit.Empty() {
		t.Error("expected fresh criteria to be empty")
	}

	var all []model.Company
	if err := crit.Apply(database).Find(&all).Error; err != nil {
		t.Fatalf("applying empty criteria: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 companies, got %d", len(all))
	}
}

func TestCriteriaBounds(t *testing.T) {
	database := db.NewTestDB(t)

	companies := []model.Company{
		{Name: "Low", Symbol: "LOW", MarketCap: 10, Exchange: "TSX"},
		{Name: "Mid", Symbol: "MID", MarketCap: 20, Exchange: "TSX"},
		{Name: "High", Symbol: "HIGH", MarketCap: 30, Exchange: "TSX"},
	}
	if err := database.Create(&companies).Error; err != nil {
		t.Fatalf("seeding companies: %v", err)
	}

	// Bounds are inclusive on both ends.
	crit := (&Criteria{}).AtLeast("market_cap", 20.0).AtMost("market_cap", 30.0)
	var matched []model.Company
	if err := crit.Apply(database).Find(&matched).Error; err != nil {
		t.Fatalf("applying criteria: %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("expected 2 companies, got %d", len(matched))
	}
}

func TestCriteriaAnyContains(t *testing.T) {
	database := db.NewTestDB(t)

	companies := []model.Company{
		{Name: "Shopify Inc.", Symbol: "SHOP", Exchange: "TSX"},
		{Name: "Shaw Communications", Symbol: "SJR", Exchange: "TSX"},
		{Name: "Royal Bank of Canada", Symbol: "RY", Exchange: "TSX"},
	}
	if err := database.Create(&companies).Error; err != nil {
		t.Fatalf("seeding companies: %v", err)
	}

	// Matches name on two records and symbol on one of them.
	crit := (&Criteria{}).AnyContains("sh", "name", "symbol")
	var matched []model.Company
	if err := crit.Apply(database).Find(&matched).Error; err != nil {
		t.Fatalf("applying criteria: %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("expected 2 companies, got %d", len(matched))
	}
}

func TestCriteriaIsTrue(t *testing.T) {
	database := db.NewTestDB(t)

	companies := []model.Company{
		{Name: "Active", Symbol: "ACT", Exchange: "TSX", IsActive: true},
		{Name: "Inactive", Symbol: "INACT", Exchange: "TSX", IsActive: false},
	}
	if err := database.Create(&companies).Error; err != nil {
		t.Fatalf("seeding companies: %v", err)
	}

	var matched []model.Company
	if err := (&Criteria{}).IsTrue("is_active").Apply(database).Find(&matched).Error; err != nil {
		t.Fatalf("applying criteria: %v", err)
	}
	if len(matched) != 1 || matched[0].Symbol != "ACT" {
		t.Errorf("expected only ACT, got %v", matched)
	}
}
