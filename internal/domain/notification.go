package domain

import "time"

// EventKind names the push events delivered to dashboard clients.
type EventKind string

const (
	EventNewOrder           EventKind = "new-order"
	EventNewOrderRequest    EventKind = "new-order-req"
	EventOrderStatusUpdated EventKind = "order-status-updated"
)

// NotificationEvent is the ephemeral push payload. It is never persisted:
// the dispatcher owns it at emission time and each client's tray owns its
// own copy after delivery.
type NotificationEvent struct {
	ID              string     `json:"id"`
	Number          string     `json:"number"`
	IsOrderRequest  bool       `json:"is_order_request"`
	CustomerName    string     `json:"customer_name"`
	OrderType       OrderType  `json:"order_type"`
	Status          Status     `json:"status"`
	StatusUpdatedBy Actor      `json:"status_updated_by"`
	TotalAmount     float64    `json:"total_amount"`
	ItemCount       int        `json:"item_count"`
	GuestCount      *int       `json:"guest_count,omitempty"`
	RequestedFor    *time.Time `json:"requested_for,omitempty"`
	WaitingTime     *int       `json:"waiting_time,omitempty"`
	EmittedAt       time.Time  `json:"emitted_at"`
}

// NewOrderRequestEvent builds the push payload for an order request.
func NewOrderRequestEvent(req *OrderRequest) NotificationEvent {
	return NotificationEvent{
		ID:              req.ID.String(),
		Number:          req.Number,
		IsOrderRequest:  true,
		CustomerName:    req.CustomerName,
		OrderType:       req.OrderType,
		Status:          req.Status,
		StatusUpdatedBy: req.StatusUpdatedBy,
		TotalAmount:     req.TotalAmount,
		ItemCount:       req.ItemCount,
		GuestCount:      req.GuestCount,
		RequestedFor:    req.RequestedFor,
		WaitingTime:     req.WaitingTime,
		EmittedAt:       time.Now(),
	}
}
