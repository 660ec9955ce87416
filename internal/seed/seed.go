// Package seed populates the stores with a sample Canadian insider-trading
// dataset for demonstration.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/evanjholt/insidertrack/internal/model"
	"github.com/evanjholt/insidertrack/internal/store"
)

var companies = []model.Company{
	{Name: "Shopify Inc.", Symbol: "SHOP", Sector: "Technology", MarketCap: 85_000_000_000, Exchange: model.ExchangeTSX},
	{Name: "Royal Bank of Canada", Symbol: "RY", Sector: "Financial Services", MarketCap: 180_000_000_000, Exchange: model.ExchangeTSX},
	{Name: "Canadian National Railway Company", Symbol: "CNR", Sector: "Transportation", MarketCap: 95_000_000_000, Exchange: model.ExchangeTSX},
	{Name: "Brookfield Asset Management Inc.", Symbol: "BAM", Sector: "Financial Services", MarketCap: 55_000_000_000, Exchange: model.ExchangeTSX},
	{Name: "Canadian Pacific Railway Limited", Symbol: "CP", Sector: "Transportation", MarketCap: 75_000_000_000, Exchange: model.ExchangeTSX},
	{Name: "Constellation Software Inc.", Symbol: "CSU", Sector: "Technology", MarketCap: 45_000_000_000, Exchange: model.ExchangeTSX},
	{Name: "Alimentation Couche-Tard Inc.", Symbol: "ATD", Sector: "Consumer Discretionary", MarketCap: 65_000_000_000, Exchange: model.ExchangeTSX},
	{Name: "Bank of Nova Scotia", Symbol: "BNS", Sector: "Financial Services", MarketCap: 80_000_000_000, Exchange: model.ExchangeTSX},
	{Name: "Nutrien Ltd.", Symbol: "NTR", Sector: "Materials", MarketCap: 35_000_000_000, Exchange: model.ExchangeTSX},
	{Name: "Wesdome Gold Mines Ltd.", Symbol: "WDO", Sector: "Materials", MarketCap: 1_500_000_000, Exchange: model.ExchangeTSX},
	{Name: "Lightspeed Commerce Inc.", Symbol: "LSPD", Sector: "Technology", MarketCap: 3_500_000_000, Exchange: model.ExchangeTSX},
	{Name: "Nuvei Corporation", Symbol: "NVEI", Sector: "Technology", MarketCap: 2_800_000_000, Exchange: model.ExchangeTSX},
	{Name: "Tilray Brands Inc.", Symbol: "TLRY", Sector: "Healthcare", MarketCap: 1_200_000_000, Exchange: model.ExchangeTSX},
	{Name: "Blackberry Limited", Symbol: "BB", Sector: "Technology", MarketCap: 2_500_000_000, Exchange: model.ExchangeTSX},
	{Name: "Canopy Growth Corporation", Symbol: "WEED", Sector: "Healthcare", MarketCap: 800_000_000, Exchange: model.ExchangeTSX},
}

var insiderNames = []string{
	"John Smith", "Sarah Johnson", "Michael Brown", "Emily Davis", "David Wilson",
	"Jennifer Miller", "Robert Garcia", "Lisa Rodriguez", "Christopher Martinez", "Amanda Taylor",
	"Matthew Anderson", "Jessica Thomas", "Daniel Jackson", "Ashley White", "James Harris",
	"Michelle Martin", "Ryan Thompson", "Stephanie Garcia", "Kevin Martinez", "Nicole Robinson",
	"Brandon Clark", "Samantha Lewis", "Justin Lee", "Rachel Walker", "Andrew Hall",
	"Megan Allen", "Tyler Young", "Lauren King", "Jonathan Wright", "Kayla Lopez",
}

var insiderTitles = []string{
	"Chief Executive Officer", "Chief Financial Officer", "Chief Operating Officer",
	"Chief Technology Officer", "President", "Vice President", "Director",
	"Senior Vice President", "Executive Vice President", "Chief Marketing Officer",
	"Chief Legal Officer", "Chief Human Resources Officer", "Chief Strategy Officer",
	"General Manager", "Managing Director", "Board Member", "Independent Director",
}

var noteOptions = []string{
	"Automatic exercise of stock options",
	"Disposition pursuant to 10b5-1 plan",
	"Gift to family member",
	"Estate planning transaction",
	"Tax withholding",
	"Exercise of warrants",
}

// Database inserts the sample companies, insiders and randomized
// transactions. It is idempotent: when companies already exist nothing is
// written.
func Database(ctx context.Context, gdb *gorm.DB) error {
	var count int64
	if err := gdb.WithContext(ctx).Model(&model.Company{}).Count(&count).Error; err != nil {
		return fmt.Errorf("checking existing data: %w", err)
	}
	if count > 0 {
		log.Infoln("sample data already present, skipping seed")
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	created := make([]model.Company, 0, len(companies))
	for _, c := range companies {
		company := c
		if err := store.CreateCompany(ctx, gdb, &company); err != nil {
			return fmt.Errorf("seeding company %s: %w", company.Symbol, err)
		}
		created = append(created, company)
	}
	log.WithField("count", len(created)).Infoln("seeded companies")

	nameIdx := rng.Perm(len(insiderNames))
	next := 0
	var insiders []model.Insider
	for _, company := range created {
		n := 2 + rng.Intn(3)
		for i := 0; i < n && next < len(nameIdx); i++ {
			insider := model.Insider{
				Name:      insiderNames[nameIdx[next]],
				Title:     insiderTitles[rng.Intn(len(insiderTitles))],
				CompanyID: company.ID,
			}
			next++
			if err := store.CreateInsider(ctx, gdb, &insider); err != nil {
				return fmt.Errorf("seeding insider %s: %w", insider.Name, err)
			}
			insiders = append(insiders, insider)
		}
	}
	log.WithField("count", len(insiders)).Infoln("seeded insiders")

	byID := make(map[uint]model.Company, len(created))
	for _, c := range created {
		byID[c.ID] = c
	}

	start := time.Now().AddDate(-2, 0, 0)
	days := int(time.Since(start).Hours() / 24)
	total := 0
	for _, insider := range insiders {
		n := 5 + rng.Intn(11)
		for i := 0; i < n; i++ {
			transactionDate := start.AddDate(0, 0, rng.Intn(days))
			transaction := model.Transaction{
				InsiderID:       insider.ID,
				CompanyID:       insider.CompanyID,
				TransactionDate: transactionDate,
				TransactionType: pickType(rng),
				Shares:          int64(100 + rng.Intn(49901)),
				PricePerShare:   pickPrice(rng, byID[insider.CompanyID].MarketCap),
				FilingDate:      transactionDate.AddDate(0, 0, 1+rng.Intn(10)),
			}
			transaction.TotalValue = float64(transaction.Shares) * transaction.PricePerShare
			if rng.Float64() < 0.3 {
				transaction.Notes = noteOptions[rng.Intn(len(noteOptions))]
			}
			if err := store.CreateTransaction(ctx, gdb, &transaction); err != nil {
				return fmt.Errorf("seeding transaction: %w", err)
			}
			total++
		}
	}
	log.WithField("count", total).Infoln("seeded transactions")

	return nil
}

// Buys outnumber sells roughly 70/30, matching real insider patterns.
func pickType(rng *rand.Rand) string {
	if rng.Float64() < 0.7 {
		return model.TransactionBuy
	}
	return model.TransactionSell
}

func pickPrice(rng *rand.Rand, marketCap float64) float64 {
	var price float64
	switch {
	case marketCap > 50_000_000_000:
		price = 50 + rng.Float64()*250
	case marketCap > 10_000_000_000:
		price = 20 + rng.Float64()*80
	default:
		price = 2 + rng.Float64()*48
	}
	return float64(int(price*100)) / 100
}

// Users returns the sample users for the in-memory store.
func Users() []model.User {
	now := time.Now()
	return []model.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 30, CreatedAt: now, IsActive: true},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Age: 25, CreatedAt: now, IsActive: true},
		{ID: 3, Name: "Bob Johnson", Email: "bob@example.com", Age: 35, CreatedAt: now, IsActive: false},
	}
}

// Items returns the sample items for the in-memory store.
func Items() []model.Item {
	now := time.Now()
	return []model.Item{
		{ID: 1, Title: "Laptop Computer", Description: "High-performance laptop for programming", Price: 999.99, Category: "Electronics", OwnerID: 1, CreatedAt: now, IsAvailable: true},
		{ID: 2, Title: "Office Chair", Description: "Ergonomic office chair with lumbar support", Price: 299.50, Category: "Furniture", OwnerID: 1, CreatedAt: now, IsAvailable: true},
		{ID: 3, Title: "Coffee Maker", Description: "Automatic coffee maker with timer", Price: 89.99, Category: "Appliances", OwnerID: 2, CreatedAt: now, IsAvailable: false},
		{ID: 4, Title: "Python Programming Book", Description: "Complete guide to Python programming", Price: 45.00, Category: "Books", OwnerID: 3, CreatedAt: now, IsAvailable: true},
	}
}
