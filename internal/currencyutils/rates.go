// Package currencyutils converts and formats monetary amounts across the
// supported currencies using a static USD-pivot rate table.
package currencyutils

import (
	"fmt"
	"sort"

	"fjacquet/asset-tracker/internal/apperrors"
	"fjacquet/asset-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// RateTable maps each currency to the USD value of one unit of it.
type RateTable map[models.Currency]decimal.Decimal

// DefaultRates returns a fresh copy of the built-in rate table.
func DefaultRates() RateTable {
	return RateTable{
		models.USD: decimal.NewFromInt(1),
		models.EUR: decimal.RequireFromString("1.09"),
		models.JPY: decimal.RequireFromString("0.0067"),
		models.GBP: decimal.RequireFromString("1.27"),
		models.CNY: decimal.RequireFromString("0.14"),
		models.AUD: decimal.RequireFromString("0.66"),
		models.CAD: decimal.RequireFromString("0.74"),
		models.CHF: decimal.RequireFromString("1.13"),
		models.HKD: decimal.RequireFromString("0.13"),
		models.SGD: decimal.RequireFromString("0.74"),
		models.SEK: decimal.RequireFromString("0.097"),
		models.KRW: decimal.RequireFromString("0.00075"),
		models.NOK: decimal.RequireFromString("0.094"),
		models.NZD: decimal.RequireFromString("0.61"),
		models.INR: decimal.RequireFromString("0.012"),
		models.MXN: decimal.RequireFromString("0.059"),
		models.TWD: decimal.RequireFromString("0.031"),
		models.ZAR: decimal.RequireFromString("0.053"),
		models.BRL: decimal.RequireFromString("0.20"),
		models.DKK: decimal.RequireFromString("0.15"),
		models.PLN: decimal.RequireFromString("0.25"),
		models.THB: decimal.RequireFromString("0.028"),
		models.IDR: decimal.RequireFromString("0.000064"),
		models.MYR: decimal.RequireFromString("0.21"),
		models.VND: decimal.RequireFromString("0.00004"),
	}
}

// Clone returns an independent copy of the table.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// WithOverrides returns a copy of the table where the given rates, keyed by
// currency code, replace the built-in ones. Keys are case-insensitive.
func (t RateTable) WithOverrides(overrides map[string]string) (RateTable, error) {
	out := t.Clone()
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cur, err := models.ParseCurrency(k)
		if err != nil {
			return nil, &apperrors.ConfigurationError{Currency: k, Reason: "unsupported currency in rate override"}
		}
		rate, err := decimal.NewFromString(overrides[k])
		if err != nil {
			return nil, &apperrors.ConfigurationError{Currency: k, Reason: fmt.Sprintf("invalid rate %q", overrides[k])}
		}
		out[cur] = rate
	}
	return out, nil
}

// Validate checks that the pivot currency has rate 1, that every rate is
// strictly positive and that each of the required currencies is present.
func (t RateTable) Validate(required ...models.Currency) error {
	pivot, ok := t[models.PivotCurrency]
	if !ok || !pivot.Equal(decimal.NewFromInt(1)) {
		return &apperrors.ConfigurationError{Currency: string(models.PivotCurrency), Reason: "pivot rate must be exactly 1"}
	}

	currencies := make([]string, 0, len(t))
	for c := range t {
		currencies = append(currencies, string(c))
	}
	sort.Strings(currencies)
	for _, c := range currencies {
		if !t[models.Currency(c)].IsPositive() {
			return &apperrors.ConfigurationError{Currency: c, Reason: "rate must be positive"}
		}
	}

	for _, c := range required {
		if _, ok := t[c]; !ok {
			return &apperrors.ConfigurationError{Currency: string(c), Reason: "missing from rate table"}
		}
	}
	return nil
}

// Convert converts amount from one currency to another through the USD pivot:
// amount * rate(from) / rate(to). Converting a currency to itself returns the
// amount unchanged, even when the currency is absent from the table.
func Convert(amount decimal.Decimal, from, to models.Currency, table RateTable) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	fromRate, ok := table[from]
	if !ok {
		return decimal.Zero, &apperrors.ConfigurationError{Currency: string(from), Reason: "missing from rate table"}
	}
	toRate, ok := table[to]
	if !ok {
		return decimal.Zero, &apperrors.ConfigurationError{Currency: string(to), Reason: "missing from rate table"}
	}
	if toRate.IsZero() {
		return decimal.Zero, &apperrors.ConfigurationError{Currency: string(to), Reason: "rate must be positive"}
	}
	return amount.Mul(fromRate).Div(toRate), nil
}

// MustConvert is like Convert but panics on a configuration error. It is meant
// for callers that validated the table beforehand.
func MustConvert(amount decimal.Decimal, from, to models.Currency, table RateTable) decimal.Decimal {
	v, err := Convert(amount, from, to, table)
	if err != nil {
		panic(err)
	}
	return v
}
