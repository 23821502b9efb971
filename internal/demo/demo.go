// Package demo generates a sample household with a year of monthly balances,
// for trying the tracker without entering data.
package demo

import (
	"math"
	"math/rand"
	"time"

	"fjacquet/asset-tracker/internal/ids"
	"fjacquet/asset-tracker/internal/ledger"
	"fjacquet/asset-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Months is the number of monthly snapshots generated, ending with the
// current month.
const Months = 12

// LatestNote marks the records of the current month.
const LatestNote = "Latest automated update"

type profile struct {
	name          string
	owner         string
	currency      models.Currency
	category      string
	baseAmount    float64
	monthlyChange float64
	volatility    float64
}

var profiles = []profile{
	{name: "Chase Checking", owner: "John", currency: models.USD, category: models.CategoryCash, baseAmount: 8000, monthlyChange: 400, volatility: 0.05},
	{name: "Vanguard ETF", owner: "John", currency: models.USD, category: models.CategoryStock, baseAmount: 25000, monthlyChange: 500, volatility: 0.08},
	{name: "Bitcoin Wallet", owner: "Mary", currency: models.CAD, category: models.CategoryCrypto, baseAmount: 5000, volatility: 0.25},
	{name: "Tokyo Condo", owner: "Joint", currency: models.JPY, category: models.CategoryRealEstate, baseAmount: 48000000, volatility: 0.005},
	{name: "Car Loan", owner: "Joint", currency: models.USD, category: models.CategoryLiability, baseAmount: 18000, monthlyChange: -350},
	{name: "Visa Credit Card", owner: "John", currency: models.USD, category: models.CategoryLiability, baseAmount: 2000, volatility: 0.4},
	{name: "Emergency Fund", owner: "Joint", currency: models.EUR, category: models.CategoryCash, baseAmount: 10000, monthlyChange: 100, volatility: 0.01},
}

// Generate builds the demo household as of now. Balances follow a linear
// trend per account, scaled by a random factor in [1-volatility, 1+volatility]
// drawn from rng, rounded to whole units and never negative. Every record is
// dated the 15th of its month.
func Generate(now time.Time, gen ids.Generator, rng *rand.Rand) (*models.Dataset, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	l := ledger.New(nil, gen, func() time.Time { return now })
	l.EnsureDefaultCategories()

	accounts := make([]models.Account, len(profiles))
	for i, p := range profiles {
		owner, ok := l.FindOwnerByName(p.owner)
		if !ok {
			var err error
			if owner, err = l.AddOwner(models.Owner{Name: p.owner}); err != nil {
				return nil, err
			}
		}
		category, _ := l.FindCategoryByName(p.category)
		account, err := l.AddAccount(models.Account{
			Name:       p.name,
			Currency:   p.currency,
			CategoryID: category.ID,
			OwnerID:    owner.ID,
		})
		if err != nil {
			return nil, err
		}
		accounts[i] = account
	}

	ds := l.Dataset()
	current := models.DateOf(now).CalendarMonth()
	for ago := Months - 1; ago >= 0; ago-- {
		passed := float64(Months - 1 - ago)
		m := current.AddMonths(-ago)
		day := time.Date(m.Year(), m.Month(), 15, now.Hour(), now.Minute(), now.Second(), 0, now.Location())

		for i, p := range profiles {
			amount := p.baseAmount + p.monthlyChange*passed
			if p.volatility > 0 {
				amount *= 1 + (rng.Float64()*2-1)*p.volatility
			}
			if amount < 0 {
				amount = 0
			}

			rec := models.Record{
				ID:        gen.NewID(),
				Date:      models.DateOf(day),
				AccountID: accounts[i].ID,
				Amount:    decimal.NewFromFloat(math.Round(amount)),
				Timestamp: day.UnixMilli(),
			}
			if ago == 0 {
				rec.Note = LatestNote
			}
			ds.Records = append(ds.Records, rec)
		}
	}
	return ds, nil
}
