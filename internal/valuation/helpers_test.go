package valuation

import (
	"testing"

	"fjacquet/asset-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rec(id, accountID, date, amount string, ts int64) models.Record {
	return models.Record{
		ID:        id,
		AccountID: accountID,
		Date:      models.MustParseDate(date),
		Amount:    decimal.RequireFromString(amount),
		Timestamp: ts,
	}
}

func month(s string) models.Month {
	m, err := models.ParseMonth(s)
	if err != nil {
		panic(err)
	}
	return m
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		append([]interface{}{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

// household is the two-account scenario: a USD checking account and a USD
// car loan.
func household() *models.Dataset {
	return &models.Dataset{
		Owners: []models.Owner{{ID: "o-john", Name: "John"}, {ID: "o-joint", Name: "Joint"}},
		Categories: []models.Category{
			{ID: "c-cash", Name: models.CategoryCash, Type: models.Asset},
			{ID: "c-loan", Name: models.CategoryLiability, Type: models.Liability},
		},
		Accounts: []models.Account{
			{ID: "a-chase", Name: "Chase Checking", Currency: models.USD, CategoryID: "c-cash", OwnerID: "o-john"},
			{ID: "a-car", Name: "Car Loan", Currency: models.USD, CategoryID: "c-loan", OwnerID: "o-joint"},
		},
		Records: []models.Record{
			rec("r1", "a-chase", "2024-01-15", "8000", 1),
			rec("r2", "a-chase", "2024-03-15", "8400", 2),
			rec("r3", "a-car", "2024-01-15", "18000", 3),
		},
	}
}
