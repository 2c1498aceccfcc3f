package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"soldi/internal/core"
	"soldi/internal/store"
)

type createSavingsGoalRequest struct {
	Name          string    `json:"name"`
	TargetAmount  core.Money `json:"targetAmount"`
	CurrentAmount core.Money `json:"currentAmount"`
	TargetDate    dateField `json:"targetDate"`
	Description   string    `json:"description"`
}

type updateSavingsGoalRequest struct {
	Name          *string    `json:"name"`
	TargetAmount  *core.Money `json:"targetAmount"`
	CurrentAmount *core.Money `json:"currentAmount"`
	TargetDate    *dateField `json:"targetDate"`
}

type contributeRequest struct {
	Amount  core.Money `json:"amount"`
	Account string `json:"account"`
}

func (s *Server) handleListSavings(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.GetSavingsGoals(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

func (s *Server) handleCreateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	var req createSavingsGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	goal, err := s.store.AddSavingsGoal(r.Context(), store.AddSavingsGoalParams{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    req.TargetDate.Time(),
		Description:   req.Description,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"goal": goal})
}

func (s *Server) handleUpdateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateSavingsGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	params := store.UpdateSavingsGoalParams{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
	}
	if req.TargetDate != nil {
		date := req.TargetDate.Time()
		params.TargetDate = &date
	}

	if err := s.store.UpdateSavingsGoal(r.Context(), id, params); err != nil {
		writeStoreError(w, r, err)
		return
	}

	goals, err := s.store.GetSavingsGoals(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	for _, goal := range goals {
		if goal.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{"goal": goal})
			return
		}
	}
	writeJSONError(w, http.StatusNotFound, "not_found", "savings goal not found")
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	var req contributeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	goal, err := s.store.ContributeToSavings(r.Context(), chi.URLParam(r, "id"), req.Amount, req.Account)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateSummaries()
	writeJSON(w, http.StatusOK, map[string]any{"goal": goal})
}
