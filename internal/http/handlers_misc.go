package http

import (
	"fmt"
	"net/http"
	"time"

	"soldi/internal/core"
	"soldi/internal/store"
)

type createCategoryRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type createPersonRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// Summary is the aggregate view of the current month.
type Summary struct {
	TotalBalance    core.Money `json:"totalBalance"`
	MonthlyIncome   core.Money `json:"monthlyIncome"`
	MonthlyExpenses core.Money `json:"monthlyExpenses"`
	Month           string     `json:"month"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.GetCategories(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	category, err := s.store.AddCategory(r.Context(), store.AddCategoryParams{
		Name:  req.Name,
		Type:  core.TransactionType(req.Type),
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": category})
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.store.GetPeople(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"people": people})
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req createPersonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	person, err := s.store.AddPerson(r.Context(), store.AddPersonParams{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"person": person})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	key := now.Format("2006-01")

	if summary, ok := s.summaries.Get(key); ok {
		writeJSON(w, http.StatusOK, summary)
		return
	}

	summary, err := s.buildSummary(r, now)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.summaries.Set(key, summary)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) buildSummary(r *http.Request, now time.Time) (Summary, error) {
	ctx := r.Context()

	total, err := s.store.TotalBalance(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("summary balance: %w", err)
	}
	income, err := s.store.MonthlyIncome(ctx, now)
	if err != nil {
		return Summary{}, fmt.Errorf("summary income: %w", err)
	}
	expenses, err := s.store.MonthlyExpenses(ctx, now)
	if err != nil {
		return Summary{}, fmt.Errorf("summary expenses: %w", err)
	}

	return Summary{
		TotalBalance:    total,
		MonthlyIncome:   income,
		MonthlyExpenses: expenses,
		Month:           now.Format("2006-01"),
	}, nil
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	export, err := s.store.ExportData(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename()))
	writeJSON(w, http.StatusOK, export)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var export store.Export
	if err := decodeJSON(r, &export); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := s.store.RestoreData(r.Context(), &export); err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateSummaries()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearAllData(); err != nil {
		writeStoreError(w, r, err)
		return
	}

	s.invalidateSummaries()
	w.WriteHeader(http.StatusNoContent)
}
