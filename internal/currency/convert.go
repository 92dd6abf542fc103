// Package currency converts amounts between the two supported currencies
// using a rate snapshot. Only the USD->INR direction is stored; the inverse
// is derived by division.
package currency

import (
	"github.com/shopspring/decimal"

	"gitlab.com/mthiha/goaltrack/internal/models"
)

// Convert converts amount from one currency to another using the given rate
// snapshot. Identity when from == to. When the snapshot is absent, its rate
// is non-positive, or the pair is otherwise unsupported, the result is zero:
// the caller treats zero-from-conversion as "unknown" rather than a failure.
// No rounding is applied here; rounding is a display concern.
func Convert(amount decimal.Decimal, from, to models.Currency, rate *models.ExchangeRate) decimal.Decimal {
	if from == to {
		return amount
	}
	if rate == nil || !rate.Rate.IsPositive() {
		return decimal.Zero
	}

	if from == models.BaseCurrency && to == models.QuoteCurrency {
		return amount.Mul(rate.Rate)
	}
	if from == models.QuoteCurrency && to == models.BaseCurrency {
		return amount.Div(rate.Rate)
	}

	return decimal.Zero
}
