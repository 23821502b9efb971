package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_Balance(t *testing.T) {
	acc := Account{ID: "a1", Currency: JPY}
	rec := Record{AccountID: "a1", Amount: decimal.NewFromInt(48000000)}

	b := acc.Balance(rec)
	assert.Equal(t, JPY, b.Currency)
	assert.True(t, b.Amount.Equal(decimal.NewFromInt(48000000)))
}

func TestMoney_JSON(t *testing.T) {
	out, err := json.Marshal(NewMoney(decimal.RequireFromString("1234.50"), EUR))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1234.5","currency":"EUR"}`, string(out))
}
