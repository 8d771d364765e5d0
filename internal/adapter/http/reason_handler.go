package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

type ReasonHandler struct {
	service      interfaces.ReasonService
	logger       logger.Logger
	defaultLimit int
}

func NewReasonHandler(service interfaces.ReasonService, defaultLimit int, lgr logger.Logger) *ReasonHandler {
	return &ReasonHandler{
		service:      service,
		logger:       lgr,
		defaultLimit: defaultLimit,
	}
}

type createReasonRequest struct {
	ReasonType string `json:"reasonType"`
	ReasonText string `json:"reasonText"`
}

type updateReasonRequest struct {
	ReasonText *string `json:"reasonText"`
	IsActive   *bool   `json:"isActive"`
}

type reasonResponse struct {
	ID         string    `json:"id"`
	ReasonType string    `json:"reasonType"`
	ReasonText string    `json:"reasonText"`
	IsActive   bool      `json:"isActive"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toReasonResponse(r *domain.Reason) reasonResponse {
	return reasonResponse{
		ID:         r.ID.String(),
		ReasonType: string(r.Type),
		ReasonText: r.Text,
		IsActive:   r.IsActive,
		CreatedBy:  string(r.CreatedBy),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toReasonResponses(reasons []*domain.Reason) []reasonResponse {
	out := make([]reasonResponse, len(reasons))
	for i, r := range reasons {
		out[i] = toReasonResponse(r)
	}
	return out
}

// HandleReasons serves GET (list) and POST (create) on /action-reasons.
func (h *ReasonHandler) HandleReasons(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ReasonHandler) list(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := RestaurantIDFromContext(r.Context())
	q := r.URL.Query()

	// active=true serves the selection-list path: active reasons only, no
	// pagination, cache-backed.
	if q.Get("active") == "true" {
		reasons, err := h.service.List(r.Context(), restaurantID, q.Get("reasonType"), true)
		if err != nil {
			respondError(w, h.logger, "reason_list_failed", err)
			return
		}
		respondData(w, http.StatusOK, toReasonResponses(reasons))
		return
	}

	page, err := positiveIntParam(q.Get("page"), 1, "page")
	if err != nil {
		respondError(w, h.logger, "reason_list_failed", err)
		return
	}
	limit, err := positiveIntParam(q.Get("limit"), h.defaultLimit, "limit")
	if err != nil {
		respondError(w, h.logger, "reason_list_failed", err)
		return
	}

	result, err := h.service.ListPaginated(r.Context(), restaurantID, q.Get("reasonType"), page, limit)
	if err != nil {
		respondError(w, h.logger, "reason_list_failed", err)
		return
	}
	respondPage(w, toReasonResponses(result.Reasons), result.Pagination)
}

func (h *ReasonHandler) create(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := RestaurantIDFromContext(r.Context())

	var req createReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reason, err := h.service.Create(r.Context(), restaurantID, interfaces.CreateReasonCommand{
		ReasonType: req.ReasonType,
		ReasonText: req.ReasonText,
		CreatedBy:  ActorFromContext(r.Context()),
	})
	if err != nil {
		respondError(w, h.logger, "reason_create_failed", err)
		return
	}
	respondData(w, http.StatusCreated, toReasonResponse(reason))
}

// HandleReasonByID serves PATCH on /action-reasons/{id}.
func (h *ReasonHandler) HandleReasonByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	restaurantID, _ := RestaurantIDFromContext(r.Context())

	idStr := strings.TrimPrefix(r.URL.Path, "/action-reasons/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid reason id")
		return
	}

	var req updateReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reason, err := h.service.Update(r.Context(), id, restaurantID, interfaces.UpdateReasonCommand{
		ReasonText: req.ReasonText,
		IsActive:   req.IsActive,
	})
	if err != nil {
		respondError(w, h.logger, "reason_update_failed", err)
		return
	}
	respondData(w, http.StatusOK, toReasonResponse(reason))
}

// positiveIntParam parses an optional positive integer query parameter.
func positiveIntParam(value string, fallback int, field string) (int, error) {
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, domain.NewValidationError(field, "must be a positive integer")
	}
	return n, nil
}
