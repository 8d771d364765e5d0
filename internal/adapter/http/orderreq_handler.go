package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

type OrderRequestHandler struct {
	service      interfaces.OrderRequestService
	logger       logger.Logger
	defaultLimit int
}

func NewOrderRequestHandler(service interfaces.OrderRequestService, defaultLimit int, lgr logger.Logger) *OrderRequestHandler {
	return &OrderRequestHandler{service: service, logger: lgr, defaultLimit: defaultLimit}
}

type createOrderRequestRequest struct {
	CustomerName string     `json:"customerName"`
	OrderType    string     `json:"orderType"`
	ItemCount    int        `json:"itemCount"`
	TotalAmount  float64    `json:"totalAmount"`
	GuestCount   *int       `json:"guestCount,omitempty"`
	RequestedFor *time.Time `json:"requestedFor,omitempty"`
}

type confirmRequest struct {
	OrderReqID string `json:"orderReqId"`
}

type rejectRequest struct {
	OrderReqID       string `json:"orderReqId"`
	OrderReqReasonID string `json:"orderReqReasonId"`
}

type waitingRequest struct {
	OrderReqID       string `json:"orderReqId"`
	OrderReqReasonID string `json:"orderReqReasonId"`
	WaitingTime      *int   `json:"waitingTime"`
}

type orderRequestResponse struct {
	ID               string     `json:"id"`
	Number           string     `json:"orderReqNumber"`
	CustomerName     string     `json:"customerName"`
	OrderType        string     `json:"orderType"`
	ItemCount        int        `json:"itemCount"`
	GuestCount       *int       `json:"guestCount,omitempty"`
	TotalAmount      float64    `json:"totalAmount"`
	RequestedFor     *time.Time `json:"requestedFor,omitempty"`
	Status           string     `json:"status"`
	StatusUpdatedBy  string     `json:"statusUpdatedBy"`
	OrderReqReasonID *string    `json:"orderReqReasonId,omitempty"`
	WaitingTime      *int       `json:"waitingTime,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func toOrderRequestResponse(req *domain.OrderRequest) orderRequestResponse {
	resp := orderRequestResponse{
		ID:              req.ID.String(),
		Number:          req.Number,
		CustomerName:    req.CustomerName,
		OrderType:       string(req.OrderType),
		ItemCount:       req.ItemCount,
		GuestCount:      req.GuestCount,
		TotalAmount:     req.TotalAmount,
		RequestedFor:    req.RequestedFor,
		Status:          string(req.Status),
		StatusUpdatedBy: string(req.StatusUpdatedBy),
		WaitingTime:     req.WaitingTime,
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}
	if req.ReasonID != nil {
		id := req.ReasonID.String()
		resp.OrderReqReasonID = &id
	}
	return resp
}

// HandleOrderRequests serves GET (list) and POST (ingest) on /order-requests.
func (h *OrderRequestHandler) HandleOrderRequests(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *OrderRequestHandler) list(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := RestaurantIDFromContext(r.Context())
	q := r.URL.Query()

	limit, err := positiveIntParam(q.Get("limit"), h.defaultLimit, "limit")
	if err != nil {
		respondError(w, h.logger, "order_request_list_failed", err)
		return
	}

	reqs, err := h.service.List(r.Context(), restaurantID, q.Get("status"), limit)
	if err != nil {
		respondError(w, h.logger, "order_request_list_failed", err)
		return
	}

	out := make([]orderRequestResponse, len(reqs))
	for i, req := range reqs {
		out[i] = toOrderRequestResponse(req)
	}
	respondData(w, http.StatusOK, out)
}

func (h *OrderRequestHandler) create(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := RestaurantIDFromContext(r.Context())

	var req createOrderRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), restaurantID, interfaces.CreateOrderRequestCommand{
		CustomerName: req.CustomerName,
		OrderType:    req.OrderType,
		ItemCount:    req.ItemCount,
		TotalAmount:  req.TotalAmount,
		GuestCount:   req.GuestCount,
		RequestedFor: req.RequestedFor,
	})
	if err != nil {
		respondError(w, h.logger, "order_request_create_failed", err)
		return
	}
	respondData(w, http.StatusCreated, toOrderRequestResponse(created))
}

// HandleConfirm serves PATCH /order-requests/confirm.
func (h *OrderRequestHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	restaurantID, _ := RestaurantIDFromContext(r.Context())

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := parseRequiredID(req.OrderReqID, "orderReqId")
	if err != nil {
		respondError(w, h.logger, "order_request_confirm_failed", err)
		return
	}

	updated, err := h.service.Confirm(r.Context(), id, restaurantID, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, "order_request_confirm_failed", err)
		return
	}
	respondData(w, http.StatusOK, toOrderRequestResponse(updated))
}

// HandleReject serves PATCH /order-requests/reject.
func (h *OrderRequestHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	restaurantID, _ := RestaurantIDFromContext(r.Context())

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := parseRequiredID(req.OrderReqID, "orderReqId")
	if err != nil {
		respondError(w, h.logger, "order_request_reject_failed", err)
		return
	}
	reasonID, err := parseRequiredID(req.OrderReqReasonID, "orderReqReasonId")
	if err != nil {
		respondError(w, h.logger, "order_request_reject_failed", err)
		return
	}

	updated, err := h.service.Reject(r.Context(), id, restaurantID, reasonID, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, "order_request_reject_failed", err)
		return
	}
	respondData(w, http.StatusOK, toOrderRequestResponse(updated))
}

// HandleWaiting serves PATCH /order-requests/waiting.
func (h *OrderRequestHandler) HandleWaiting(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		respondMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	restaurantID, _ := RestaurantIDFromContext(r.Context())

	var req waitingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := parseRequiredID(req.OrderReqID, "orderReqId")
	if err != nil {
		respondError(w, h.logger, "order_request_waiting_failed", err)
		return
	}
	reasonID, err := parseRequiredID(req.OrderReqReasonID, "orderReqReasonId")
	if err != nil {
		respondError(w, h.logger, "order_request_waiting_failed", err)
		return
	}
	if req.WaitingTime == nil {
		respondError(w, h.logger, "order_request_waiting_failed",
			domain.NewValidationError("waitingTime", "waiting time is required"))
		return
	}

	updated, err := h.service.SetWaiting(r.Context(), id, restaurantID, reasonID, *req.WaitingTime, ActorFromContext(r.Context()))
	if err != nil {
		respondError(w, h.logger, "order_request_waiting_failed", err)
		return
	}
	respondData(w, http.StatusOK, toOrderRequestResponse(updated))
}

func parseRequiredID(value, field string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, domain.NewValidationError(field, "is required")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "must be a valid id")
	}
	return id, nil
}
