// Package networth exposes the valuation engine to programs embedding the
// tracker as a library. It values a dataset with the built-in exchange rates
// unless a rate table is supplied.
package networth

import (
	"fjacquet/asset-tracker/internal/currencyutils"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/valuation"
)

type (
	Dataset   = models.Dataset
	Currency  = models.Currency
	Month     = models.Month
	GroupBy   = valuation.GroupBy
	Series    = valuation.Series
	Aggregate = valuation.Aggregate
	Bucket    = valuation.Bucket
	RateTable = currencyutils.RateTable
)

const (
	ByCategory = valuation.GroupByCategory
	ByAccount  = valuation.GroupByAccount
	ByOwner    = valuation.GroupByOwner
)

// DefaultRates returns a copy of the built-in rate table, quoted as the USD
// value of one unit of each currency.
func DefaultRates() RateTable {
	return currencyutils.DefaultRates()
}

// BuildSeries values every month holding an observation, in chronological
// order, using the built-in rates.
func BuildSeries(ds *Dataset, currency Currency, groupBy GroupBy) (*Series, error) {
	return BuildSeriesWithRates(ds, currency, groupBy, currencyutils.DefaultRates())
}

// BuildSeriesWithRates is BuildSeries with a caller supplied rate table.
func BuildSeriesWithRates(ds *Dataset, currency Currency, groupBy GroupBy, rates RateTable) (*Series, error) {
	return valuation.NewEngine(rates, nil).BuildSeries(ds, currency, groupBy)
}

// Current values the latest known observation of every account.
func Current(ds *Dataset, currency Currency, groupBy GroupBy) (Aggregate, error) {
	return valuation.NewEngine(currencyutils.DefaultRates(), nil).Current(ds, currency, groupBy)
}

// Convert converts amount between two currencies with the built-in rates.
func Convert(amount models.Money, to Currency) (models.Money, error) {
	v, err := currencyutils.Convert(amount.Amount, amount.Currency, to, currencyutils.DefaultRates())
	if err != nil {
		return models.Money{}, err
	}
	return models.NewMoney(v, to), nil
}
