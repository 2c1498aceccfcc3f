package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"soldi/internal/core"
	"soldi/internal/store"
)

type createDebtRequest struct {
	Type          string    `json:"type"`
	Person        string    `json:"person"`
	Amount        core.Money `json:"amount"`
	Description   string    `json:"description"`
	Date          dateField `json:"date"`
	DueDate       dateField `json:"dueDate"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	Account       string    `json:"account"`
	AffectBalance bool      `json:"affectBalance"`
}

type settleDebtRequest struct {
	Amount  core.Money `json:"amount"`
	Account string `json:"account"`
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.store.GetDebts(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"debts": debts})
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	debt, err := s.store.AddDebt(r.Context(), store.AddDebtParams{
		Type:          core.DebtType(req.Type),
		Person:        req.Person,
		Amount:        req.Amount,
		Description:   req.Description,
		Date:          req.Date.Time(),
		DueDate:       req.DueDate.Time(),
		Status:        core.DebtStatus(req.Status),
		Notes:         req.Notes,
		Account:       req.Account,
		AffectBalance: req.AffectBalance,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, map[string]any{"debt": debt})
}

func (s *Server) handlePayDebt(w http.ResponseWriter, r *http.Request) {
	s.settleDebt(w, r, s.store.PayDebt)
}

func (s *Server) handleReceiveDebt(w http.ResponseWriter, r *http.Request) {
	s.settleDebt(w, r, s.store.ReceiveDebt)
}

func (s *Server) settleDebt(w http.ResponseWriter, r *http.Request, settle func(ctx context.Context, id string, amount core.Money, account string) (*core.Debt, error)) {
	var req settleDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	debt, err := settle(r.Context(), chi.URLParam(r, "id"), req.Amount, req.Account)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusOK, map[string]any{"debt": debt})
}
