package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func intPtr(n int) *int { return &n }

func TestNewOrderRequest(t *testing.T) {
	restaurantID := uuid.New()

	tests := []struct {
		name         string
		customerName string
		orderType    OrderType
		itemCount    int
		totalAmount  float64
		guestCount   *int
		wantErr      bool
	}{
		{"valid dine in", "Alice", OrderTypeDineIn, 2, 45.50, intPtr(4), false},
		{"valid takeout without guests", "Bob", OrderTypeTakeout, 1, 12.00, nil, false},
		{"zero total is allowed", "Carol", OrderTypeDelivery, 1, 0, nil, false},
		{"name at max length", strings.Repeat("n", 100), OrderTypeTakeout, 1, 5, nil, false},
		{"name over max length", strings.Repeat("n", 101), OrderTypeTakeout, 1, 5, nil, true},
		{"empty name", "", OrderTypeDineIn, 1, 5, nil, true},
		{"whitespace name", "   ", OrderTypeDineIn, 1, 5, nil, true},
		{"invalid order type", "Alice", OrderType("drive_thru"), 1, 5, nil, true},
		{"zero items", "Alice", OrderTypeDineIn, 0, 5, nil, true},
		{"negative total", "Alice", OrderTypeDineIn, 1, -0.01, nil, true},
		{"zero guests", "Alice", OrderTypeDineIn, 1, 5, intPtr(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewOrderRequest(restaurantID, tt.customerName, tt.orderType,
				tt.itemCount, tt.totalAmount, tt.guestCount, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !IsValidation(err) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.Status != StatusPending {
				t.Errorf("status = %s, want pending", req.Status)
			}
			if req.StatusUpdatedBy != ActorSystem {
				t.Errorf("statusUpdatedBy = %s, want system", req.StatusUpdatedBy)
			}
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	statuses := []Status{StatusPending, StatusConfirmed, StatusRejected, StatusWaiting}

	for _, from := range statuses {
		for _, to := range statuses {
			req := &OrderRequest{Status: from}
			want := from == StatusPending && to != StatusPending
			if got := req.CanTransitionTo(to); got != want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestValidateWaitingTime(t *testing.T) {
	if err := ValidateWaitingTime(15); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateWaitingTime(0); err == nil {
		t.Error("expected error for zero minutes")
	}
	if err := ValidateWaitingTime(-5); err == nil {
		t.Error("expected error for negative minutes")
	}
}

func TestReasonTypeFor(t *testing.T) {
	if rt, ok := ReasonTypeFor(StatusRejected); !ok || rt != ReasonTypeRejected {
		t.Errorf("ReasonTypeFor(rejected) = %s, %v", rt, ok)
	}
	if rt, ok := ReasonTypeFor(StatusWaiting); !ok || rt != ReasonTypeWaiting {
		t.Errorf("ReasonTypeFor(waiting) = %s, %v", rt, ok)
	}
	if _, ok := ReasonTypeFor(StatusConfirmed); ok {
		t.Error("confirmed must not require a reason")
	}
	if _, ok := ReasonTypeFor(StatusPending); ok {
		t.Error("pending must not require a reason")
	}
}
