package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

// envelope is the uniform response contract: {success:false, message, error?}
// on failure and {success:true, data|message} on success.
type envelope struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message,omitempty"`
	Data       any                    `json:"data,omitempty"`
	Pagination *interfaces.Pagination `json:"pagination,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, envelope{Success: true, Data: data})
}

func respondPage(w http.ResponseWriter, data any, pagination interfaces.Pagination) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: &pagination})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Success: status < 400, Message: message})
}

// respondError maps the error taxonomy onto HTTP statuses: validation → 400,
// scope miss → 404, everything else → 500 with the underlying message kept
// for operator diagnostics.
func respondError(w http.ResponseWriter, lgr logger.Logger, action string, err error) {
	switch {
	case domain.IsValidation(err):
		respondJSON(w, http.StatusBadRequest, envelope{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, envelope{Success: false, Message: "not found"})
	default:
		lgr.Error(action, "Unexpected error", nil, err)
		respondJSON(w, http.StatusInternalServerError, envelope{
			Success: false,
			Message: "internal server error",
			Error:   err.Error(),
		})
	}
}
