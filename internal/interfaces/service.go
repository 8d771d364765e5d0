package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/domain"
)

type CreateReasonCommand struct {
	ReasonType string
	ReasonText string
	CreatedBy  domain.Actor
}

type UpdateReasonCommand struct {
	ReasonText *string
	IsActive   *bool
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

type ReasonPage struct {
	Reasons    []*domain.Reason
	Pagination Pagination
}

type ReasonService interface {
	Create(ctx context.Context, restaurantID uuid.UUID, cmd CreateReasonCommand) (*domain.Reason, error)
	List(ctx context.Context, restaurantID uuid.UUID, reasonType string, activeOnly bool) ([]*domain.Reason, error)
	ListPaginated(ctx context.Context, restaurantID uuid.UUID, reasonType string, page, limit int) (*ReasonPage, error)
	Update(ctx context.Context, id, restaurantID uuid.UUID, cmd UpdateReasonCommand) (*domain.Reason, error)
}

type CreateOrderRequestCommand struct {
	CustomerName string
	OrderType    string
	ItemCount    int
	TotalAmount  float64
	GuestCount   *int
	RequestedFor *time.Time
}

type OrderRequestService interface {
	Create(ctx context.Context, restaurantID uuid.UUID, cmd CreateOrderRequestCommand) (*domain.OrderRequest, error)
	List(ctx context.Context, restaurantID uuid.UUID, status string, limit int) ([]*domain.OrderRequest, error)
	Confirm(ctx context.Context, id, restaurantID uuid.UUID, actor domain.Actor) (*domain.OrderRequest, error)
	Reject(ctx context.Context, id, restaurantID, reasonID uuid.UUID, actor domain.Actor) (*domain.OrderRequest, error)
	SetWaiting(ctx context.Context, id, restaurantID, reasonID uuid.UUID, waitingTime int, actor domain.Actor) (*domain.OrderRequest, error)
}

// ReasonCache is a best-effort read-through cache for active reason lists.
// Implementations swallow transport errors; a miss is always safe.
type ReasonCache interface {
	GetActive(ctx context.Context, restaurantID uuid.UUID, reasonType domain.ReasonType) ([]*domain.Reason, bool)
	SetActive(ctx context.Context, restaurantID uuid.UUID, reasonType domain.ReasonType, reasons []*domain.Reason)
	Invalidate(ctx context.Context, restaurantID uuid.UUID)
}
