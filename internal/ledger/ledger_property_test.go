package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"gitlab.com/mthiha/goaltrack/internal/models"
	"gitlab.com/mthiha/goaltrack/internal/storage"
)

// After any sequence of contribution operations the goal's running total
// must equal max(0, sum of the remaining contributions' amounts).
func TestCurrentAmountMatchesContributionHistory(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		l := New(storage.NewMemStore())
		goal, err := l.CreateGoal("Property goal", decimal.NewFromInt(10000), models.INR)
		require.NoError(rt, err)

		date := time.Now().Add(-time.Hour)
		amountGen := rapid.Int64Range(1, 100000)

		checkInvariant := func() {
			current, err := l.Goal(goal.ID)
			require.NoError(rt, err)

			sum := decimal.Zero
			for _, c := range current.Contributions {
				sum = sum.Add(c.Amount)
			}
			if sum.IsNegative() {
				sum = decimal.Zero
			}
			require.True(rt, sum.Equal(current.CurrentAmount),
				"currentAmount %s does not reconcile with contribution sum %s",
				current.CurrentAmount, sum)
		}

		pickContribution := func(rt *rapid.T) (string, bool) {
			current, err := l.Goal(goal.ID)
			require.NoError(rt, err)
			if len(current.Contributions) == 0 {
				return "", false
			}
			idx := rapid.IntRange(0, len(current.Contributions)-1).Draw(rt, "contribution index")
			return current.Contributions[idx].ID, true
		}

		rt.Repeat(map[string]func(*rapid.T){
			"add": func(rt *rapid.T) {
				amount := decimal.NewFromInt(amountGen.Draw(rt, "amount")).Div(decimal.NewFromInt(100))
				_, err := l.AddContribution(goal.ID, "deposit", amount, date)
				require.NoError(rt, err)
				checkInvariant()
			},
			"update": func(rt *rapid.T) {
				id, ok := pickContribution(rt)
				if !ok {
					return
				}
				amount := decimal.NewFromInt(amountGen.Draw(rt, "new amount")).Div(decimal.NewFromInt(100))
				_, err := l.UpdateContribution(goal.ID, id, "updated", amount, date)
				require.NoError(rt, err)
				checkInvariant()
			},
			"delete": func(rt *rapid.T) {
				id, ok := pickContribution(rt)
				if !ok {
					return
				}
				_, err := l.DeleteContribution(goal.ID, id)
				require.NoError(rt, err)
				checkInvariant()
			},
			"": func(rt *rapid.T) {
				checkInvariant()
			},
		})
	})
}
