package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/domain"
)

// ReasonFilter narrows reason listings. A nil Type means both categories.
type ReasonFilter struct {
	Type       *domain.ReasonType
	ActiveOnly bool
}

// ReasonPatch carries the fields of a partial update. Nil fields are left
// untouched.
type ReasonPatch struct {
	Text     *string
	IsActive *bool
}

type ReasonRepository interface {
	Create(ctx context.Context, reason *domain.Reason) error
	FindByID(ctx context.Context, id, restaurantID uuid.UUID) (*domain.Reason, error)
	List(ctx context.Context, restaurantID uuid.UUID, filter ReasonFilter) ([]*domain.Reason, error)
	ListPage(ctx context.Context, restaurantID uuid.UUID, filter ReasonFilter, offset, limit int) ([]*domain.Reason, int, error)
	Update(ctx context.Context, id, restaurantID uuid.UUID, patch ReasonPatch) (*domain.Reason, error)
}

// StatusUpdate is a guarded single-row transition: the row must match id,
// restaurant and the From status or the update affects nothing and the
// repository reports domain.ErrNotFound.
type StatusUpdate struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	From         domain.Status
	To           domain.Status
	Actor        domain.Actor
	ReasonID     *uuid.UUID
	WaitingTime  *int
}

// OrderRequestRepository persists order requests. Create assigns the
// request's display number atomically with the insert, so two concurrent
// ingests never mint the same number.
type OrderRequestRepository interface {
	Create(ctx context.Context, req *domain.OrderRequest) error
	FindByID(ctx context.Context, id, restaurantID uuid.UUID) (*domain.OrderRequest, error)
	List(ctx context.Context, restaurantID uuid.UUID, status *domain.Status, limit int) ([]*domain.OrderRequest, error)
	UpdateStatus(ctx context.Context, upd StatusUpdate) (*domain.OrderRequest, error)
}
