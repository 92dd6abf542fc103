// Package server exposes the tracker core to the presentation layer over a
// localhost HTTP API. Handlers run form validation before any ledger
// mutation and return field-tagged errors verbatim.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"gitlab.com/mthiha/goaltrack/internal/config"
	"gitlab.com/mthiha/goaltrack/internal/exchange"
	"gitlab.com/mthiha/goaltrack/internal/ledger"
)

// Handler serves the collaborator contract: the six ledger operations, the
// rate cache, dashboard stats, and health.
type Handler struct {
	ledger *ledger.Ledger
	rates  *exchange.RateCache
	cfg    *config.Config
}

// New creates a Handler over the core components.
func New(l *ledger.Ledger, rates *exchange.RateCache, cfg *config.Config) *Handler {
	return &Handler{ledger: l, rates: rates, cfg: cfg}
}

// Routes assembles the HTTP router.
func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/goals", func(r chi.Router) {
		r.Get("/", h.ListGoals)
		r.Post("/", h.CreateGoal)
		r.Put("/{id}", h.UpdateGoal)
		r.Delete("/{id}", h.DeleteGoal)
		r.Post("/{id}/contributions", h.AddContribution)
		r.Put("/{id}/contributions/{contributionID}", h.UpdateContribution)
		r.Delete("/{id}/contributions/{contributionID}", h.DeleteContribution)
	})
	router.Get("/stats", h.GetStats)
	router.Get("/rate", h.GetRate)
	router.Get("/currencies", h.ListCurrencies)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
