package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/domain"
)

// NotificationMessage is the wire format on the notification bus. Routing is
// per-restaurant: only clients joined to RestaurantID's channel receive it.
type NotificationMessage struct {
	Event        domain.EventKind         `json:"event"`
	RestaurantID uuid.UUID                `json:"restaurant_id"`
	Payload      domain.NotificationEvent `json:"payload"`
}

// EventPublisher delivers a state change onto the bus. Delivery is
// best-effort: persisted state is authoritative and a publish failure is
// never propagated to the operator who triggered the transition.
type EventPublisher interface {
	PublishNotification(ctx context.Context, msg NotificationMessage) error
}

type NotificationHandler func(ctx context.Context, body []byte) error

type EventConsumer interface {
	ConsumeNotifications(ctx context.Context, handler NotificationHandler) error
}

// Broadcaster fans a message out to every connection joined to the
// restaurant's room. No subscribers is a no-op, not an error.
type Broadcaster interface {
	Emit(restaurantID uuid.UUID, msg NotificationMessage)
}
