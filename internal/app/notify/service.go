package notify

import (
	"context"
	"encoding/json"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/interfaces"
)

// Service is the gateway side of the dispatcher: it turns bus messages into
// room broadcasts.
type Service struct {
	hub    interfaces.Broadcaster
	logger logger.Logger
}

func NewService(hub interfaces.Broadcaster, lgr logger.Logger) *Service {
	return &Service{hub: hub, logger: lgr}
}

func (s *Service) HandleNotification(ctx context.Context, body []byte) error {
	var msg interfaces.NotificationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.logger.Error("message_parse_failed", "Failed to parse notification message", nil, err)
		return err
	}

	s.logger.Debug("notification_received", "Dispatching notification", map[string]interface{}{
		"event":         msg.Event,
		"restaurant_id": msg.RestaurantID,
		"id":            msg.Payload.ID,
	})

	s.hub.Emit(msg.RestaurantID, msg)
	return nil
}
