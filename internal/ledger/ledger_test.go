package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gitlab.com/mthiha/goaltrack/internal/models"
	"gitlab.com/mthiha/goaltrack/internal/storage"
)

func newTestLedger(t *testing.T) (*Ledger, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	return New(store), store
}

func yesterday() time.Time {
	return time.Now().Add(-24 * time.Hour)
}

func TestCreateGoal(t *testing.T) {
	l, store := newTestLedger(t)

	goal, err := l.CreateGoal("  Emergency Fund  ", decimal.NewFromInt(5000), models.USD)
	require.NoError(t, err)
	require.NotEmpty(t, goal.ID)
	require.Equal(t, "Emergency Fund", goal.Name)
	require.Equal(t, models.USD, goal.Currency)
	require.True(t, goal.CurrentAmount.IsZero())
	require.Empty(t, goal.Contributions)
	require.Equal(t, goal.CreatedAt, goal.UpdatedAt)

	// The goal is durable, not just in the returned value.
	var persisted []models.Goal
	ok, err := store.Get(storage.KeyGoals, &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, persisted, 1)
	require.Equal(t, goal.ID, persisted[0].ID)
}

func TestCreateGoalAssignsUniqueIDs(t *testing.T) {
	l, _ := newTestLedger(t)

	first, err := l.CreateGoal("One", decimal.NewFromInt(100), models.INR)
	require.NoError(t, err)
	second, err := l.CreateGoal("Two", decimal.NewFromInt(200), models.INR)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	goals, err := l.Goals()
	require.NoError(t, err)
	require.Len(t, goals, 2)
}

func TestDeleteGoal(t *testing.T) {
	t.Run("removes goal and its contributions", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
		require.NoError(t, err)
		_, err = l.AddContribution(goal.ID, "Bonus", decimal.NewFromInt(300), yesterday())
		require.NoError(t, err)

		deleted, err := l.DeleteGoal(goal.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		goals, err := l.Goals()
		require.NoError(t, err)
		require.Empty(t, goals)
	})

	t.Run("unknown id returns false and leaves the collection unchanged", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
		require.NoError(t, err)

		deleted, err := l.DeleteGoal("no-such-goal")
		require.NoError(t, err)
		require.False(t, deleted)

		goals, err := l.Goals()
		require.NoError(t, err)
		require.Len(t, goals, 1)
		require.Equal(t, goal.ID, goals[0].ID)
	})
}

func TestUpdateGoalDetails(t *testing.T) {
	t.Run("replaces mutable fields and stamps updatedAt", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
		require.NoError(t, err)

		updated, err := l.UpdateGoalDetails(goal.ID, "Japan Trip", decimal.NewFromInt(2000), models.INR)
		require.NoError(t, err)
		require.Equal(t, "Japan Trip", updated.Name)
		require.True(t, decimal.NewFromInt(2000).Equal(updated.TargetAmount))
		require.False(t, updated.UpdatedAt.Before(goal.UpdatedAt))
	})

	t.Run("changing currency relabels without converting amounts", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
		require.NoError(t, err)
		_, err = l.AddContribution(goal.ID, "Savings", decimal.NewFromInt(400), yesterday())
		require.NoError(t, err)

		updated, err := l.UpdateGoalDetails(goal.ID, "Trip", decimal.NewFromInt(1000), models.USD)
		require.NoError(t, err)
		require.Equal(t, models.USD, updated.Currency)
		require.True(t, decimal.NewFromInt(400).Equal(updated.CurrentAmount))
		// Historical contributions keep both their amount and currency label.
		require.Equal(t, models.INR, updated.Contributions[0].Currency)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		l, _ := newTestLedger(t)
		_, err := l.UpdateGoalDetails("missing", "X", decimal.NewFromInt(1), models.INR)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAddContribution(t *testing.T) {
	t.Run("appends and increments the running total", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.USD)
		require.NoError(t, err)

		updated, err := l.AddContribution(goal.ID, "Paycheck", decimal.RequireFromString("250.50"), yesterday())
		require.NoError(t, err)
		require.Len(t, updated.Contributions, 1)
		require.True(t, decimal.RequireFromString("250.50").Equal(updated.CurrentAmount))

		// Contributions inherit the owning goal's currency.
		require.Equal(t, models.USD, updated.Contributions[0].Currency)
		require.NotEmpty(t, updated.Contributions[0].ID)
	})

	t.Run("accumulates across contributions", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
		require.NoError(t, err)

		_, err = l.AddContribution(goal.ID, "One", decimal.NewFromInt(100), yesterday())
		require.NoError(t, err)
		updated, err := l.AddContribution(goal.ID, "Two", decimal.NewFromInt(150), yesterday())
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(250).Equal(updated.CurrentAmount))
	})

	t.Run("unknown goal is not found", func(t *testing.T) {
		l, _ := newTestLedger(t)
		_, err := l.AddContribution("missing", "X", decimal.NewFromInt(1), yesterday())
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateContribution(t *testing.T) {
	t.Run("adjusts the total by the amount delta", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
		require.NoError(t, err)
		withContribution, err := l.AddContribution(goal.ID, "Deposit", decimal.NewFromInt(100), yesterday())
		require.NoError(t, err)
		contributionID := withContribution.Contributions[0].ID

		updated, err := l.UpdateContribution(goal.ID, contributionID, "Deposit", decimal.NewFromInt(30), yesterday())
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(30).Equal(updated.CurrentAmount))

		// Deleting the only contribution afterwards lands exactly on zero.
		final, err := l.DeleteContribution(goal.ID, contributionID)
		require.NoError(t, err)
		require.True(t, final.CurrentAmount.IsZero())
	})

	t.Run("replaces title and date in place", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
		require.NoError(t, err)
		withContribution, err := l.AddContribution(goal.ID, "Old title", decimal.NewFromInt(100), yesterday())
		require.NoError(t, err)
		contributionID := withContribution.Contributions[0].ID

		newDate := time.Now().Add(-48 * time.Hour)
		updated, err := l.UpdateContribution(goal.ID, contributionID, "New title", decimal.NewFromInt(100), newDate)
		require.NoError(t, err)
		require.Len(t, updated.Contributions, 1)
		require.Equal(t, "New title", updated.Contributions[0].Title)
		require.True(t, updated.Contributions[0].Date.Equal(newDate))
	})

	t.Run("unknown contribution is not found", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
		require.NoError(t, err)

		_, err = l.UpdateContribution(goal.ID, "missing", "X", decimal.NewFromInt(1), yesterday())
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteContribution(t *testing.T) {
	t.Run("decrements the total and clamps at zero", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
		require.NoError(t, err)
		withContribution, err := l.AddContribution(goal.ID, "Deposit", decimal.NewFromInt(100), yesterday())
		require.NoError(t, err)
		contributionID := withContribution.Contributions[0].ID

		updated, err := l.DeleteContribution(goal.ID, contributionID)
		require.NoError(t, err)
		require.Empty(t, updated.Contributions)
		require.True(t, updated.CurrentAmount.IsZero())
	})

	t.Run("unknown contribution is not found", func(t *testing.T) {
		l, _ := newTestLedger(t)
		goal, err := l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
		require.NoError(t, err)

		_, err = l.DeleteContribution(goal.ID, "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLedgerWithUnavailableStore(t *testing.T) {
	store := storage.NewMemStore()
	store.Unavailable = true
	l := New(store)

	// Reads degrade to an empty collection.
	goals, err := l.Goals()
	require.NoError(t, err)
	require.Empty(t, goals)

	// Writes surface the persistence failure.
	_, err = l.CreateGoal("Trip", decimal.NewFromInt(1000), models.INR)
	require.ErrorIs(t, err, storage.ErrStoreUnavailable)
}
