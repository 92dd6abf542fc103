package currency

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/mthiha/goaltrack/internal/models"
)

func snapshot(rate string) *models.ExchangeRate {
	return &models.ExchangeRate{
		Rate:        decimal.RequireFromString(rate),
		LastUpdated: time.Now(),
		From:        models.USD,
		To:          models.INR,
	}
}

func TestConvert(t *testing.T) {
	t.Run("identity for same currency", func(t *testing.T) {
		amount := decimal.RequireFromString("123.45")
		require.True(t, amount.Equal(Convert(amount, models.INR, models.INR, snapshot("83.5"))))
		require.True(t, amount.Equal(Convert(amount, models.USD, models.USD, snapshot("83.5"))))
	})

	t.Run("identity holds without a snapshot", func(t *testing.T) {
		amount := decimal.NewFromInt(10)
		require.True(t, amount.Equal(Convert(amount, models.USD, models.USD, nil)))
	})

	t.Run("base to quote multiplies", func(t *testing.T) {
		got := Convert(decimal.NewFromInt(10), models.USD, models.INR, snapshot("83.5"))
		require.True(t, decimal.RequireFromString("835").Equal(got))
	})

	t.Run("quote to base divides", func(t *testing.T) {
		got := Convert(decimal.NewFromInt(835), models.INR, models.USD, snapshot("83.5"))
		require.True(t, decimal.NewFromInt(10).Equal(got))
	})

	t.Run("round trip returns original within tolerance", func(t *testing.T) {
		snap := snapshot("83.17")
		original := decimal.RequireFromString("1234.56")

		there := Convert(original, models.USD, models.INR, snap)
		back := Convert(there, models.INR, models.USD, snap)

		require.True(t, back.Sub(original).Abs().LessThan(decimal.RequireFromString("0.000001")),
			"round trip drifted: %s -> %s", original, back)
	})

	t.Run("absent snapshot degrades to zero", func(t *testing.T) {
		got := Convert(decimal.NewFromInt(10), models.USD, models.INR, nil)
		require.True(t, got.IsZero())
	})

	t.Run("non-positive rate degrades to zero", func(t *testing.T) {
		got := Convert(decimal.NewFromInt(10), models.USD, models.INR, snapshot("0"))
		require.True(t, got.IsZero())
	})

	t.Run("unsupported pair degrades to zero", func(t *testing.T) {
		got := Convert(decimal.NewFromInt(10), models.Currency("EUR"), models.INR, snapshot("83.5"))
		require.True(t, got.IsZero())
	})
}
