package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeout  OrderType = "takeout"
	OrderTypeDelivery OrderType = "delivery"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeout || t == OrderTypeDelivery
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusWaiting   Status = "waiting"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusWaiting:
		return true
	}
	return false
}

// OrderRequest is a customer-initiated ask awaiting restaurant acceptance,
// distinct from a confirmed order. Requests are never deleted; terminal
// states are retained for history.
type OrderRequest struct {
	ID              uuid.UUID
	RestaurantID    uuid.UUID
	Number          string
	CustomerName    string
	OrderType       OrderType
	ItemCount       int
	GuestCount      *int
	TotalAmount     float64
	RequestedFor    *time.Time
	Status          Status
	StatusUpdatedBy Actor
	ReasonID        *uuid.UUID
	WaitingTime     *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// validTransitions is the request sub-machine: pending is the only state an
// operator may act on. waiting re-evaluation happens outside this machine.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusWaiting},
	StatusConfirmed: {},
	StatusRejected:  {},
	StatusWaiting:   {},
}

func (o *OrderRequest) CanTransitionTo(next Status) bool {
	for _, s := range validTransitions[o.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// NewOrderRequest creates a pending request with business validation applied.
func NewOrderRequest(restaurantID uuid.UUID, customerName string, orderType OrderType,
	itemCount int, totalAmount float64, guestCount *int, requestedFor *time.Time) (*OrderRequest, error) {

	customerName = strings.TrimSpace(customerName)
	if len(customerName) < 1 || len(customerName) > 100 {
		return nil, NewValidationError("customerName", "customer name must be 1-100 characters")
	}
	if !orderType.Valid() {
		return nil, NewValidationError("orderType", "order type must be one of: dine_in, takeout, delivery")
	}
	if itemCount < 1 {
		return nil, NewValidationError("itemCount", "order request must contain at least 1 item")
	}
	if totalAmount < 0 {
		return nil, NewValidationError("totalAmount", "total amount must not be negative")
	}
	if guestCount != nil && *guestCount < 1 {
		return nil, NewValidationError("guestCount", "guest count must be at least 1")
	}

	now := time.Now()
	return &OrderRequest{
		ID:              uuid.New(),
		RestaurantID:    restaurantID,
		CustomerName:    customerName,
		OrderType:       orderType,
		ItemCount:       itemCount,
		GuestCount:      guestCount,
		TotalAmount:     totalAmount,
		RequestedFor:    requestedFor,
		Status:          StatusPending,
		StatusUpdatedBy: ActorSystem,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ValidateWaitingTime checks the estimate attached to a waiting transition.
func ValidateWaitingTime(minutes int) error {
	if minutes <= 0 {
		return NewValidationError("waitingTime", "waiting time must be a positive number of minutes")
	}
	return nil
}

// ReasonTypeFor returns the reason category a target status requires, and
// whether that status requires one at all.
func ReasonTypeFor(status Status) (ReasonType, bool) {
	switch status {
	case StatusRejected:
		return ReasonTypeRejected, true
	case StatusWaiting:
		return ReasonTypeWaiting, true
	}
	return "", false
}
