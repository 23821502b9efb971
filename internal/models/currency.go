package models

import (
	"fmt"
	"strings"
)

// Currency is an ISO-like currency code from the fixed supported set.
type Currency string

// Supported currencies.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	GBP Currency = "GBP"
	CNY Currency = "CNY"
	AUD Currency = "AUD"
	CAD Currency = "CAD"
	CHF Currency = "CHF"
	HKD Currency = "HKD"
	SGD Currency = "SGD"
	SEK Currency = "SEK"
	KRW Currency = "KRW"
	NOK Currency = "NOK"
	NZD Currency = "NZD"
	INR Currency = "INR"
	MXN Currency = "MXN"
	TWD Currency = "TWD"
	ZAR Currency = "ZAR"
	BRL Currency = "BRL"
	DKK Currency = "DKK"
	PLN Currency = "PLN"
	THB Currency = "THB"
	IDR Currency = "IDR"
	MYR Currency = "MYR"
	VND Currency = "VND"
)

// PivotCurrency is the currency every rate is expressed in.
const PivotCurrency = USD

var supportedCurrencies = []Currency{
	USD, EUR, JPY, GBP, CNY, AUD, CAD, CHF, HKD, SGD, SEK, KRW, NOK,
	NZD, INR, MXN, TWD, ZAR, BRL, DKK, PLN, THB, IDR, MYR, VND,
}

// SupportedCurrencies returns the supported currency codes in display order.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// IsSupported reports whether c belongs to the supported set.
func (c Currency) IsSupported() bool {
	for _, s := range supportedCurrencies {
		if s == c {
			return true
		}
	}
	return false
}

func (c Currency) String() string { return string(c) }

// ParseCurrency parses a currency code, ignoring case and surrounding spaces.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsSupported() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}
