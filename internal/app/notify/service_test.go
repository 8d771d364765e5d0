package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

type fakeBroadcaster struct {
	emitted []interfaces.NotificationMessage
}

func (f *fakeBroadcaster) Emit(_ uuid.UUID, msg interfaces.NotificationMessage) {
	f.emitted = append(f.emitted, msg)
}

func TestHandleNotification(t *testing.T) {
	hub := &fakeBroadcaster{}
	svc := NewService(hub, logger.NewNop())

	restaurantID := uuid.New()
	body, _ := json.Marshal(interfaces.NotificationMessage{
		Event:        domain.EventOrderStatusUpdated,
		RestaurantID: restaurantID,
		Payload: domain.NotificationEvent{
			ID:     uuid.NewString(),
			Number: "REQ_20260827_003",
			Status: domain.StatusConfirmed,
		},
	})

	if err := svc.HandleNotification(context.Background(), body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hub.emitted) != 1 {
		t.Fatalf("emitted %d messages, want 1", len(hub.emitted))
	}
	if hub.emitted[0].RestaurantID != restaurantID {
		t.Error("message routed to wrong restaurant")
	}
	if hub.emitted[0].Event != domain.EventOrderStatusUpdated {
		t.Errorf("event = %s, want %s", hub.emitted[0].Event, domain.EventOrderStatusUpdated)
	}
}

func TestHandleNotificationMalformedBody(t *testing.T) {
	hub := &fakeBroadcaster{}
	svc := NewService(hub, logger.NewNop())

	if err := svc.HandleNotification(context.Background(), []byte("{not json")); err == nil {
		t.Fatal("expected error for malformed body")
	}
	if len(hub.emitted) != 0 {
		t.Error("malformed body must not reach the hub")
	}
}
