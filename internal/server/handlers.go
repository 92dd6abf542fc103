package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"gitlab.com/mthiha/goaltrack/internal/logger"
	"gitlab.com/mthiha/goaltrack/internal/models"
	"gitlab.com/mthiha/goaltrack/internal/stats"
	"gitlab.com/mthiha/goaltrack/internal/validation"
)

type goalRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Currency     models.Currency `json:"currency"`
}

type contributionRequest struct {
	Title  string          `json:"title"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

// parseDate accepts a calendar date or a full timestamp. Unparseable input
// yields the zero time, which the date validator reports as invalid.
func parseDate(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

func validateCurrency(c models.Currency) []validation.FieldError {
	if c.Valid() {
		return nil
	}
	return []validation.FieldError{{
		Field:   "currency",
		Code:    validation.CodeOutOfRange,
		Message: "Currency must be INR or USD",
	}}
}

// ListGoals returns the full goal collection. Contributions are stored in
// insertion order; listings present them newest first.
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.ledger.Goals()
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	for i := range goals {
		sort.SliceStable(goals[i].Contributions, func(a, b int) bool {
			return goals[i].Contributions[a].Date.After(goals[i].Contributions[b].Date)
		})
	}
	respondJSON(w, http.StatusOK, goals)
}

// CreateGoal validates and creates a new goal.
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	errs := validation.GoalForm(req.Name, req.TargetAmount)
	errs = append(errs, validateCurrency(req.Currency)...)
	if len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	goal, err := h.ledger.CreateGoal(req.Name, req.TargetAmount, req.Currency)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

// UpdateGoal validates and replaces a goal's mutable details.
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	errs := validation.GoalForm(req.Name, req.TargetAmount)
	errs = append(errs, validateCurrency(req.Currency)...)
	if len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	goal, err := h.ledger.UpdateGoalDetails(chi.URLParam(r, "id"), req.Name, req.TargetAmount, req.Currency)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// DeleteGoal removes a goal and its contributions.
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.ledger.DeleteGoal(chi.URLParam(r, "id"))
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// AddContribution validates and appends a contribution to a goal.
func (h *Handler) AddContribution(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date := parseDate(req.Date)
	if errs := validation.ContributionForm(req.Title, req.Amount, date); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	goal, err := h.ledger.AddContribution(chi.URLParam(r, "id"), req.Title, req.Amount, date)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

// UpdateContribution validates and replaces a contribution in place.
func (h *Handler) UpdateContribution(w http.ResponseWriter, r *http.Request) {
	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date := parseDate(req.Date)
	if errs := validation.ContributionForm(req.Title, req.Amount, date); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	goal, err := h.ledger.UpdateContribution(
		chi.URLParam(r, "id"),
		chi.URLParam(r, "contributionID"),
		req.Title, req.Amount, date,
	)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// DeleteContribution removes a contribution from a goal.
func (h *Handler) DeleteContribution(w http.ResponseWriter, r *http.Request) {
	goal, err := h.ledger.DeleteContribution(
		chi.URLParam(r, "id"),
		chi.URLParam(r, "contributionID"),
	)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// GetStats computes dashboard statistics in the requested display currency.
// A failing rate refresh falls back to the last stored snapshot; foreign
// goals then convert to zero only when no rate was ever fetched.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	goals, err := h.ledger.Goals()
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	display := models.Currency(r.URL.Query().Get("currency"))
	if display == "" {
		display = models.DefaultDisplayCurrency
	}
	if !display.Valid() {
		respondError(w, http.StatusBadRequest, "currency must be INR or USD")
		return
	}

	var snapshot *models.ExchangeRate
	if rate, err := h.rates.GetRate(r.Context(), false); err == nil {
		snapshot = &rate
	} else {
		logger.Log.Warn().Err(err).Msg("Rate refresh failed, using stored snapshot")
		snapshot = h.rates.Cached()
	}

	respondJSON(w, http.StatusOK, stats.Compute(goals, snapshot, display))
}

type currencyInfo struct {
	Code   models.Currency `json:"code"`
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
}

// ListCurrencies serves the supported currency metadata the goal and
// contribution forms render their selects from.
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies := []currencyInfo{
		{Code: models.INR, Symbol: models.CurrencySymbols[models.INR], Name: models.CurrencyNames[models.INR]},
		{Code: models.USD, Symbol: models.CurrencySymbols[models.USD], Name: models.CurrencyNames[models.USD]},
	}
	respondJSON(w, http.StatusOK, currencies)
}

// GetRate serves the exchange rate, refreshing when stale or when
// ?refresh=true forces a fetch.
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "true"

	rate, err := h.rates.GetRate(r.Context(), force)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to fetch exchange rate")
		return
	}
	respondJSON(w, http.StatusOK, rate)
}
