package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/asset-tracker/internal/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	currencyCodeRe = regexp.MustCompile(`(?i)\b[a-z]{3}\b`)
	symbolRe       = regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪\s]`)
)

// ParseAmount parses an amount typed in any common locale into a decimal value.
// It handles formats like "1'234.56", "1.234,56", "1234.56", "1234,56".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount strips currency symbols, codes and grouping separators so
// the result can be parsed by decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyCodeRe.ReplaceAllString(amountStr, "")
	amountStr = symbolRe.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		parts := strings.Split(amountStr, ",")
		if len(parts) > 1 && len(parts[len(parts)-1]) <= 2 {
			// Comma used as decimal separator (1234,56)
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	// Swiss grouping (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	return amountStr
}

// FormatAmount renders amount in the conventional notation of the currency,
// e.g. "$1,234.56" or "¥1,235", using the currency metadata of go-money. The
// amount is rounded to the number of minor units of the currency.
func FormatAmount(amount decimal.Decimal, currency models.Currency) string {
	cur := money.New(0, string(currency)).Currency()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// FormatSigned is FormatAmount with an explicit "+" on positive amounts.
func FormatSigned(amount decimal.Decimal, currency models.Currency) string {
	if amount.IsPositive() {
		return "+" + FormatAmount(amount, currency)
	}
	return FormatAmount(amount, currency)
}
