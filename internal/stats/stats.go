// Package stats computes dashboard-level aggregates across all goals.
package stats

import (
	"github.com/shopspring/decimal"

	"gitlab.com/mthiha/goaltrack/internal/currency"
	"gitlab.com/mthiha/goaltrack/internal/models"
)

// Compute derives dashboard statistics for the given goal collection in the
// display currency. Goals already in the display currency are summed
// directly; goals in the other currency have CurrentAmount and TargetAmount
// converted individually before summing.
//
// OverallProgress is intentionally computed over the unconverted native
// totals of all goals combined, while TotalSaved, TotalTarget, and
// ExtraSavings use the converted totals. The mismatch matches the reference
// behavior and must not be reconciled here.
func Compute(goals []models.Goal, rate *models.ExchangeRate, display models.Currency) models.DashboardStats {
	if !display.Valid() {
		display = models.DefaultDisplayCurrency
	}

	totalSaved := decimal.Zero
	totalTarget := decimal.Zero
	nativeSaved := decimal.Zero
	nativeTarget := decimal.Zero
	other := display.Opposite()

	for _, g := range goals {
		nativeSaved = nativeSaved.Add(g.CurrentAmount)
		nativeTarget = nativeTarget.Add(g.TargetAmount)

		if g.Currency == display {
			totalSaved = totalSaved.Add(g.CurrentAmount)
			totalTarget = totalTarget.Add(g.TargetAmount)
			continue
		}

		totalSaved = totalSaved.Add(currency.Convert(g.CurrentAmount, other, display, rate))
		totalTarget = totalTarget.Add(currency.Convert(g.TargetAmount, other, display, rate))
	}

	return models.DashboardStats{
		TotalTarget:     totalTarget,
		TotalSaved:      totalSaved,
		OverallProgress: progress(nativeSaved, nativeTarget),
		TotalGoals:      len(goals),
		ExtraSavings:    extraSavings(totalSaved, totalTarget),
	}
}

// progress returns the rounded percentage of saved over target, capped at
// 100. A zero target yields zero.
func progress(saved, target decimal.Decimal) int {
	if target.IsZero() {
		return 0
	}
	pct := saved.Div(target).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

func extraSavings(saved, target decimal.Decimal) decimal.Decimal {
	extra := saved.Sub(target)
	if extra.IsNegative() {
		return decimal.Zero
	}
	return extra
}
