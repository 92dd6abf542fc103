// Package models defines the domain entities for the savings-goal tracker.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a supported currency code.
type Currency string

// The two supported currencies. The exchange rate is stored for the
// USD->INR direction only; the inverse is computed arithmetically.
const (
	INR Currency = "INR"
	USD Currency = "USD"
)

// BaseCurrency is the currency the stored exchange rate converts from.
const BaseCurrency = USD

// QuoteCurrency is the currency the stored exchange rate converts to.
const QuoteCurrency = INR

// DefaultDisplayCurrency is the currency dashboard totals are shown in
// unless the caller asks otherwise.
const DefaultDisplayCurrency = INR

// CurrencySymbols maps currency codes to display symbols.
var CurrencySymbols = map[Currency]string{
	INR: "₹",
	USD: "$",
}

// CurrencyNames maps currency codes to human-readable names.
var CurrencyNames = map[Currency]string{
	INR: "Indian Rupee",
	USD: "US Dollar",
}

// Valid reports whether c is one of the supported currency codes.
func (c Currency) Valid() bool {
	return c == INR || c == USD
}

// Opposite returns the other supported currency.
func (c Currency) Opposite() Currency {
	if c == INR {
		return USD
	}
	return INR
}

// Name length bounds for goal names and contribution titles.
const (
	MinNameLength = 1
	MaxNameLength = 100
)

// Amount bounds. Zero and negative amounts are rejected, so MinAmount is a
// small positive epsilon rather than zero.
var (
	MinAmount = decimal.RequireFromString("0.01")
	MaxAmount = decimal.NewFromInt(999999999)
)

// FallbackRate is the USD->INR rate used when no API credential is
// configured. A deliberate offline default, not an error condition.
var FallbackRate = decimal.RequireFromString("83.5")

// RateCacheDuration is how long a fetched exchange rate stays fresh.
const RateCacheDuration = time.Hour

// Contribution is one deposit event applied to a goal's running total.
// It is exclusively owned by a single goal and inherits that goal's
// currency at creation time.
type Contribution struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Currency Currency        `json:"currency"`
}

// Goal is a named savings target. CurrentAmount is derived state: after any
// ledger operation it equals max(0, sum of contribution amounts).
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	Currency      Currency        `json:"currency"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Contributions []Contribution  `json:"contributions"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ExchangeRate is the latest known conversion rate for the fixed
// BaseCurrency -> QuoteCurrency pair.
type ExchangeRate struct {
	Rate        decimal.Decimal `json:"rate"`
	LastUpdated time.Time       `json:"lastUpdated"`
	From        Currency        `json:"from"`
	To          Currency        `json:"to"`
}

// DashboardStats are derived aggregate figures, recomputed on demand and
// never persisted. Monetary fields are expressed in the display currency;
// OverallProgress is a 0-100 integer percentage.
type DashboardStats struct {
	TotalTarget     decimal.Decimal `json:"totalTarget"`
	TotalSaved      decimal.Decimal `json:"totalSaved"`
	OverallProgress int             `json:"overallProgress"`
	TotalGoals      int             `json:"totalGoals"`
	ExtraSavings    decimal.Decimal `json:"extraSavings"`
}
