package currencyutils

import (
	"errors"
	"testing"

	"fjacquet/asset-tracker/internal/apperrors"
	"fjacquet/asset-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRates_CoversSupportedCurrencies(t *testing.T) {
	rates := DefaultRates()
	require.NoError(t, rates.Validate(models.SupportedCurrencies()...))
	assert.Len(t, rates, len(models.SupportedCurrencies()))
}

func TestDefaultRates_ReturnsCopy(t *testing.T) {
	a := DefaultRates()
	a[models.EUR] = decimal.NewFromInt(5)
	assert.Equal(t, "1.09", DefaultRates()[models.EUR].String())
}

func TestConvert(t *testing.T) {
	rates := DefaultRates()

	tests := []struct {
		name     string
		amount   string
		from, to models.Currency
		expected string
	}{
		{"EUR to USD", "100", models.EUR, models.USD, "109"},
		{"USD to EUR", "109", models.USD, models.EUR, "100"},
		{"JPY to USD", "48000000", models.JPY, models.USD, "321600"},
		{"CAD to EUR", "109", models.CAD, models.EUR, "74"},
		{"Identity keeps amount", "123.456", models.CHF, models.CHF, "123.456"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Convert(decimal.RequireFromString(tc.amount), tc.from, tc.to, rates)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), "got %s", got)
		})
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	rates := DefaultRates()
	x := decimal.RequireFromString("2500.40")

	for _, c := range models.SupportedCurrencies() {
		to, err := Convert(x, models.USD, c, rates)
		require.NoError(t, err)
		back, err := Convert(to, c, models.USD, rates)
		require.NoError(t, err)
		assert.True(t, x.Sub(back).Abs().LessThan(decimal.RequireFromString("0.000001")), "%s: %s", c, back)
	}
}

func TestConvert_MissingCurrency(t *testing.T) {
	rates := RateTable{models.USD: decimal.NewFromInt(1)}

	_, err := Convert(decimal.NewFromInt(1), models.EUR, models.USD, rates)
	var cfgErr *apperrors.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "EUR", cfgErr.Currency)

	_, err = Convert(decimal.NewFromInt(1), models.USD, models.GBP, rates)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "GBP", cfgErr.Currency)

	// identity never consults the table
	got, err := Convert(decimal.NewFromInt(7), models.EUR, models.EUR, rates)
	require.NoError(t, err)
	assert.Equal(t, "7", got.String())

	assert.Panics(t, func() {
		MustConvert(decimal.NewFromInt(1), models.EUR, models.USD, rates)
	})
}

func TestRateTable_Validate(t *testing.T) {
	t.Run("pivot must be one", func(t *testing.T) {
		rates := DefaultRates()
		rates[models.USD] = decimal.RequireFromString("1.01")
		assert.Error(t, rates.Validate())
	})

	t.Run("rates must be positive", func(t *testing.T) {
		rates := DefaultRates()
		rates[models.SEK] = decimal.Zero
		err := rates.Validate()
		var cfgErr *apperrors.ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "SEK", cfgErr.Currency)
	})

	t.Run("required currency missing", func(t *testing.T) {
		rates := DefaultRates()
		delete(rates, models.VND)
		assert.Error(t, rates.Validate(models.USD, models.VND))
		assert.NoError(t, rates.Validate(models.USD))
	})
}

func TestRateTable_WithOverrides(t *testing.T) {
	rates, err := DefaultRates().WithOverrides(map[string]string{"eur": "1.10"})
	require.NoError(t, err)
	assert.Equal(t, "1.1", rates[models.EUR].String())
	assert.Equal(t, "1.09", DefaultRates()[models.EUR].String())

	_, err = DefaultRates().WithOverrides(map[string]string{"XYZ": "1"})
	assert.Error(t, err)

	_, err = DefaultRates().WithOverrides(map[string]string{"EUR": "abc"})
	assert.Error(t, err)
}
