package orderreq

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

// Service owns the order-request lifecycle: ingestion and the three operator
// transitions. Every lookup and update is scoped {id, restaurant_id} at the
// repository layer, so a record outside the caller's restaurant can never be
// mutated.
type Service struct {
	repo      interfaces.OrderRequestRepository
	reasons   interfaces.ReasonRepository
	publisher interfaces.EventPublisher
	logger    logger.Logger
}

func NewService(repo interfaces.OrderRequestRepository, reasons interfaces.ReasonRepository,
	publisher interfaces.EventPublisher, lgr logger.Logger) *Service {
	return &Service{
		repo:      repo,
		reasons:   reasons,
		publisher: publisher,
		logger:    lgr,
	}
}

// Create ingests a new pending order request and announces it to the
// restaurant's dashboards.
func (s *Service) Create(ctx context.Context, restaurantID uuid.UUID, cmd interfaces.CreateOrderRequestCommand) (*domain.OrderRequest, error) {
	req, err := domain.NewOrderRequest(restaurantID, cmd.CustomerName, domain.OrderType(cmd.OrderType),
		cmd.ItemCount, cmd.TotalAmount, cmd.GuestCount, cmd.RequestedFor)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, req); err != nil {
		s.logger.Error("order_request_create_failed", "Failed to create order request", nil, err)
		return nil, err
	}

	s.emit(ctx, domain.EventNewOrderRequest, req)
	return req, nil
}

func (s *Service) List(ctx context.Context, restaurantID uuid.UUID, status string, limit int) ([]*domain.OrderRequest, error) {
	var st *domain.Status
	if status != "" {
		v := domain.Status(status)
		if !v.Valid() {
			return nil, domain.NewValidationError("status", "status must be one of: pending, confirmed, rejected, waiting")
		}
		st = &v
	}
	return s.repo.List(ctx, restaurantID, st, limit)
}

// Confirm moves a pending request to confirmed.
func (s *Service) Confirm(ctx context.Context, id, restaurantID uuid.UUID, actor domain.Actor) (*domain.OrderRequest, error) {
	req, err := s.repo.UpdateStatus(ctx, interfaces.StatusUpdate{
		ID:           id,
		RestaurantID: restaurantID,
		From:         domain.StatusPending,
		To:           domain.StatusConfirmed,
		Actor:        actor,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventOrderStatusUpdated, req)
	return req, nil
}

// Reject moves a pending request to rejected. The reason must resolve within
// the same restaurant, be active, and be of the rejected category; the
// categories are re-validated here rather than trusting the client-supplied
// id.
func (s *Service) Reject(ctx context.Context, id, restaurantID, reasonID uuid.UUID, actor domain.Actor) (*domain.OrderRequest, error) {
	if err := s.resolveReason(ctx, reasonID, restaurantID, domain.ReasonTypeRejected); err != nil {
		return nil, err
	}

	req, err := s.repo.UpdateStatus(ctx, interfaces.StatusUpdate{
		ID:           id,
		RestaurantID: restaurantID,
		From:         domain.StatusPending,
		To:           domain.StatusRejected,
		Actor:        actor,
		ReasonID:     &reasonID,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventOrderStatusUpdated, req)
	return req, nil
}

// SetWaiting moves a pending request to waiting with a reason and a positive
// waiting-time estimate in minutes.
func (s *Service) SetWaiting(ctx context.Context, id, restaurantID, reasonID uuid.UUID, waitingTime int, actor domain.Actor) (*domain.OrderRequest, error) {
	if err := domain.ValidateWaitingTime(waitingTime); err != nil {
		return nil, err
	}
	if err := s.resolveReason(ctx, reasonID, restaurantID, domain.ReasonTypeWaiting); err != nil {
		return nil, err
	}

	req, err := s.repo.UpdateStatus(ctx, interfaces.StatusUpdate{
		ID:           id,
		RestaurantID: restaurantID,
		From:         domain.StatusPending,
		To:           domain.StatusWaiting,
		Actor:        actor,
		ReasonID:     &reasonID,
		WaitingTime:  &waitingTime,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventOrderStatusUpdated, req)
	return req, nil
}

// resolveReason is the precondition check before the state write. It is not
// a transaction with the transition: reasons are never hard-deleted, so a
// resolved reason stays referenceable.
func (s *Service) resolveReason(ctx context.Context, reasonID, restaurantID uuid.UUID, want domain.ReasonType) error {
	reason, err := s.reasons.FindByID(ctx, reasonID, restaurantID)
	if err != nil {
		return err
	}
	if reason.Type != want {
		return domain.NewValidationError("orderReqReasonId",
			fmt.Sprintf("reason type must be %s", want))
	}
	if !reason.IsActive {
		return domain.NewValidationError("orderReqReasonId", "reason is no longer active")
	}
	return nil
}

// emit publishes exactly one event per committed transition. The write is
// already durable here; a publish failure is logged and swallowed so the
// operator's request still succeeds.
func (s *Service) emit(ctx context.Context, kind domain.EventKind, req *domain.OrderRequest) {
	msg := interfaces.NotificationMessage{
		Event:        kind,
		RestaurantID: req.RestaurantID,
		Payload:      domain.NewOrderRequestEvent(req),
	}

	if err := s.publisher.PublishNotification(ctx, msg); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to publish notification", map[string]interface{}{
			"event":            kind,
			"order_request_id": req.ID,
		}, err)
		return
	}

	s.logger.Debug("notification_published", "Notification published", map[string]interface{}{
		"event":            kind,
		"order_request_id": req.ID,
		"status":           req.Status,
	})
}
