package models

import "github.com/shopspring/decimal"

// Money is an amount tagged with its currency. Conversion between
// currencies belongs to the rate table, never to Money itself.
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency Currency        `json:"currency" yaml:"currency"`
}

func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// Balance is the value stated by r in the account's own currency.
func (a Account) Balance(r Record) Money { return NewMoney(r.Amount, a.Currency) }
