package http

import (
	"net/http"

	"soldi/internal/core"
	"soldi/internal/store"
)

type createTransactionRequest struct {
	Type        string    `json:"type"`
	Amount      core.Money `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Account     string    `json:"account"`
	Date        dateField `json:"date"`
	Notes       string    `json:"notes"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	period, err := core.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
		return
	}

	var transactions []core.Transaction
	if period == core.PeriodAll && r.URL.Query().Get("period") == "" {
		// Bare listing: ascending by date.
		transactions, err = s.store.GetTransactions(r.Context())
	} else {
		transactions, err = s.store.GetTransactionsByPeriod(r.Context(), period)
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	txn, err := s.store.AddTransaction(r.Context(), store.AddTransactionParams{
		Type:        core.TransactionType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Account:     req.Account,
		Date:        req.Date.Time(),
		Notes:       req.Notes,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusCreated, map[string]any{"transaction": txn})
}
