package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"soldi/internal/core"
	applog "soldi/internal/log"
	"soldi/internal/store"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeStoreError maps a store failure onto the HTTP taxonomy: missing
// records are 404, conflicts 409, validation failures 422, everything
// else a logged 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrAccountInUse):
		writeJSONError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, store.ErrUnsupportedExport):
		writeJSONError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	case core.IsValidation(err):
		writeJSONError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	default:
		slog.ErrorContext(r.Context(), "Store operation failed",
			applog.FieldRequestID, GetRequestID(r.Context()),
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

// decodeJSON parses a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

// dateField accepts RFC 3339 timestamps or plain calendar days
// (2006-01-02). The zero value means "not provided".
type dateField struct {
	t time.Time
}

func (d *dateField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.t = t
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.t = t
	return nil
}

func (d dateField) Time() time.Time {
	return d.t
}
