package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"soldi/internal/core"
	"soldi/internal/store"
)

type createAccountRequest struct {
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	InitialBalance core.Money `json:"initialBalance"`
	Balance        *core.Money `json:"balance"`
	CreatedAt      dateField `json:"createdAt"`
}

type updateAccountRequest struct {
	Name    *string `json:"name"`
	Type    *string `json:"type"`
	Balance *core.Money `json:"balance"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.GetAccounts(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	account, err := s.store.AddAccount(r.Context(), store.AddAccountParams{
		Name:           req.Name,
		Type:           core.AccountType(req.Type),
		InitialBalance: req.InitialBalance,
		Balance:        req.Balance,
		CreatedAt:      req.CreatedAt.Time(),
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, map[string]any{"account": account})
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	params := store.UpdateAccountParams{Name: req.Name, Balance: req.Balance}
	if req.Type != nil {
		accountType := core.AccountType(*req.Type)
		params.Type = &accountType
	}

	if err := s.store.UpdateAccount(r.Context(), id, params); err != nil {
		writeStoreError(w, r, err)
		return
	}

	account, err := s.store.GetAccount(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusOK, map[string]any{"account": account})
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.invalidateSummaries()
	w.WriteHeader(http.StatusNoContent)
}
