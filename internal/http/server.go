// Package http exposes the finance store as a JSON API for an external
// UI. The UI performs no business logic of its own: every operation here
// is a thin shim over the store.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"soldi/internal/cache"
	"soldi/internal/store"
)

// Server wires the store to the API routes.
type Server struct {
	store     *store.Store
	summaries *cache.LRU[Summary]
}

// New creates a Server. Summary responses are cached for ttl and dropped
// whenever a mutation goes through.
func New(st *store.Store, ttl time.Duration) *Server {
	return &Server{
		store:     st,
		summaries: cache.New[Summary](8, ttl),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(Trace)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", s.handleListAccounts)
			r.Post("/", s.handleCreateAccount)
			r.Patch("/{id}", s.handleUpdateAccount)
			r.Delete("/{id}", s.handleDeleteAccount)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.Post("/", s.handleCreateTransaction)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", s.handleListDebts)
			r.Post("/", s.handleCreateDebt)
			r.Post("/{id}/pay", s.handlePayDebt)
			r.Post("/{id}/receive", s.handleReceiveDebt)
		})

		r.Route("/savings", func(r chi.Router) {
			r.Get("/", s.handleListSavings)
			r.Post("/", s.handleCreateSavingsGoal)
			r.Patch("/{id}", s.handleUpdateSavingsGoal)
			r.Post("/{id}/contribute", s.handleContribute)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleCreateCategory)
		})

		r.Route("/people", func(r chi.Router) {
			r.Get("/", s.handleListPeople)
			r.Post("/", s.handleCreatePerson)
		})

		r.Get("/summary", s.handleSummary)
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Post("/reset", s.handleReset)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// invalidateSummaries drops cached aggregates after any mutation.
func (s *Server) invalidateSummaries() {
	s.summaries.Purge()
}
