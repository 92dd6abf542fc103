// Package ledger owns all goal and contribution mutations. Every operation
// is a read-modify-write of the full goal collection against the injected
// store, persisted before the result is returned so in-memory state never
// gets ahead of durable state.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gitlab.com/mthiha/goaltrack/internal/models"
	"gitlab.com/mthiha/goaltrack/internal/storage"
)

// ErrNotFound indicates the referenced goal or contribution does not exist.
// Callers treat it as a stale-view condition, not a fault.
var ErrNotFound = errors.New("not found")

// Ledger performs goal and contribution CRUD against a store handle.
type Ledger struct {
	store storage.Store

	// Serializes read-modify-write cycles so two callers cannot
	// interleave on the single goals record.
	mu sync.Mutex
}

// New creates a Ledger backed by the given store.
func New(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

// Goals returns the full goal collection. An empty store yields an empty
// collection, not an error.
func (l *Ledger) Goals() ([]models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Goal returns a single goal by id.
func (l *Ledger) Goal(id string) (*models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	goals, err := l.load()
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].ID == id {
			return &goals[i], nil
		}
	}
	return nil, ErrNotFound
}

// CreateGoal appends a new goal with a fresh identifier, a zero running
// total, and an empty contribution collection.
func (l *Ledger) CreateGoal(name string, targetAmount decimal.Decimal, currency models.Currency) (*models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	goals, err := l.load()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	goal := models.Goal{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(name),
		TargetAmount:  targetAmount,
		Currency:      currency,
		CurrentAmount: decimal.Zero,
		Contributions: []models.Contribution{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	goals = append(goals, goal)
	if err := l.persist(goals); err != nil {
		return nil, err
	}
	return &goal, nil
}

// DeleteGoal removes a goal and, transitively, all its contributions.
// Returns false on an unknown id, leaving the stored collection untouched.
func (l *Ledger) DeleteGoal(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	goals, err := l.load()
	if err != nil {
		return false, err
	}

	kept := goals[:0:0]
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(goals) {
		return false, nil
	}

	if err := l.persist(kept); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateGoalDetails replaces a goal's name, target amount, and currency.
// Changing the currency relabels the goal only: historical contribution
// amounts and the running total keep their numeric values.
func (l *Ledger) UpdateGoalDetails(id, name string, targetAmount decimal.Decimal, currency models.Currency) (*models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	goals, err := l.load()
	if err != nil {
		return nil, err
	}

	goal := findGoal(goals, id)
	if goal == nil {
		return nil, ErrNotFound
	}

	goal.Name = strings.TrimSpace(name)
	goal.TargetAmount = targetAmount
	goal.Currency = currency
	goal.UpdatedAt = time.Now()

	if err := l.persist(goals); err != nil {
		return nil, err
	}
	return goal, nil
}

// AddContribution appends a contribution to the goal, inheriting the goal's
// currency, and increments the running total by its amount.
func (l *Ledger) AddContribution(goalID, title string, amount decimal.Decimal, date time.Time) (*models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	goals, err := l.load()
	if err != nil {
		return nil, err
	}

	goal := findGoal(goals, goalID)
	if goal == nil {
		return nil, ErrNotFound
	}

	contribution := models.Contribution{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(title),
		Amount:   amount,
		Date:     date,
		Currency: goal.Currency,
	}

	goal.Contributions = append(goal.Contributions, contribution)
	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	goal.UpdatedAt = time.Now()

	if err := l.persist(goals); err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateContribution replaces a contribution's title, amount, and date in
// place, adjusting the running total by the amount delta. The total is
// clamped so it never drops below zero.
func (l *Ledger) UpdateContribution(goalID, contributionID, title string, amount decimal.Decimal, date time.Time) (*models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	goals, err := l.load()
	if err != nil {
		return nil, err
	}

	goal := findGoal(goals, goalID)
	if goal == nil {
		return nil, ErrNotFound
	}

	idx := findContribution(goal, contributionID)
	if idx < 0 {
		return nil, ErrNotFound
	}

	old := &goal.Contributions[idx]
	delta := amount.Sub(old.Amount)

	old.Title = strings.TrimSpace(title)
	old.Amount = amount
	old.Date = date

	goal.CurrentAmount = clampZero(goal.CurrentAmount.Add(delta))
	goal.UpdatedAt = time.Now()

	if err := l.persist(goals); err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteContribution removes a contribution and decrements the running
// total by its amount, clamped at zero.
func (l *Ledger) DeleteContribution(goalID, contributionID string) (*models.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	goals, err := l.load()
	if err != nil {
		return nil, err
	}

	goal := findGoal(goals, goalID)
	if goal == nil {
		return nil, ErrNotFound
	}

	idx := findContribution(goal, contributionID)
	if idx < 0 {
		return nil, ErrNotFound
	}

	removed := goal.Contributions[idx]
	goal.Contributions = append(goal.Contributions[:idx], goal.Contributions[idx+1:]...)
	goal.CurrentAmount = clampZero(goal.CurrentAmount.Sub(removed.Amount))
	goal.UpdatedAt = time.Now()

	if err := l.persist(goals); err != nil {
		return nil, err
	}
	return goal, nil
}

func (l *Ledger) load() ([]models.Goal, error) {
	var goals []models.Goal
	ok, err := l.store.Get(storage.KeyGoals, &goals)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	if !ok {
		return []models.Goal{}, nil
	}
	return goals, nil
}

func (l *Ledger) persist(goals []models.Goal) error {
	if !l.store.Set(storage.KeyGoals, goals) {
		return fmt.Errorf("failed to persist goals: %w", storage.ErrStoreUnavailable)
	}
	return nil
}

func findGoal(goals []models.Goal, id string) *models.Goal {
	for i := range goals {
		if goals[i].ID == id {
			return &goals[i]
		}
	}
	return nil
}

func findContribution(goal *models.Goal, id string) int {
	for i := range goal.Contributions {
		if goal.Contributions[i].ID == id {
			return i
		}
	}
	return -1
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
