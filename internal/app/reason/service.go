package reason

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

// Service manages rejection/waiting reason templates, scoped per restaurant.
type Service struct {
	repo         interfaces.ReasonRepository
	cache        interfaces.ReasonCache
	logger       logger.Logger
	defaultLimit int
}

func NewService(repo interfaces.ReasonRepository, cache interfaces.ReasonCache, lgr logger.Logger, defaultLimit int) *Service {
	return &Service{
		repo:         repo,
		cache:        cache,
		logger:       lgr,
		defaultLimit: defaultLimit,
	}
}

func (s *Service) Create(ctx context.Context, restaurantID uuid.UUID, cmd interfaces.CreateReasonCommand) (*domain.Reason, error) {
	reason, err := domain.NewReason(restaurantID, domain.ReasonType(cmd.ReasonType), cmd.ReasonText, cmd.CreatedBy)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, reason); err != nil {
		s.logger.Error("reason_create_failed", "Failed to create reason", nil, err)
		return nil, err
	}
	s.cache.Invalidate(ctx, restaurantID)

	s.logger.Debug("reason_created", "Reason created", map[string]interface{}{
		"reason_id":     reason.ID,
		"restaurant_id": restaurantID,
		"reason_type":   reason.Type,
	})
	return reason, nil
}

// List returns reasons newest first. The active-only single-type path is
// served read-through from the cache; that is the hot path backing the
// operator's selection dropdowns.
func (s *Service) List(ctx context.Context, restaurantID uuid.UUID, reasonType string, activeOnly bool) ([]*domain.Reason, error) {
	rt, err := parseReasonType(reasonType)
	if err != nil {
		return nil, err
	}

	cacheable := activeOnly && rt != nil
	if cacheable {
		if reasons, ok := s.cache.GetActive(ctx, restaurantID, *rt); ok {
			return reasons, nil
		}
	}

	reasons, err := s.repo.List(ctx, restaurantID, interfaces.ReasonFilter{Type: rt, ActiveOnly: activeOnly})
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.cache.SetActive(ctx, restaurantID, *rt, reasons)
	}
	return reasons, nil
}

func (s *Service) ListPaginated(ctx context.Context, restaurantID uuid.UUID, reasonType string, page, limit int) (*interfaces.ReasonPage, error) {
	if limit < 1 {
		limit = s.defaultLimit
	}
	if page < 1 {
		return nil, domain.NewValidationError("page", "must be a positive integer")
	}

	rt, err := parseReasonType(reasonType)
	if err != nil {
		return nil, err
	}

	reasons, total, err := s.repo.ListPage(ctx, restaurantID, interfaces.ReasonFilter{Type: rt}, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &interfaces.ReasonPage{
		Reasons: reasons,
		Pagination: interfaces.Pagination{
			Page:       page,
			Limit:      limit,
			TotalCount: total,
			TotalPages: totalPages,
		},
	}, nil
}

// Update applies a partial edit. An empty patch is rejected before touching
// the store.
func (s *Service) Update(ctx context.Context, id, restaurantID uuid.UUID, cmd interfaces.UpdateReasonCommand) (*domain.Reason, error) {
	if cmd.ReasonText == nil && cmd.IsActive == nil {
		return nil, domain.NewValidationError("", "no fields to update")
	}

	patch := interfaces.ReasonPatch{IsActive: cmd.IsActive}
	if cmd.ReasonText != nil {
		text := strings.TrimSpace(*cmd.ReasonText)
		if err := domain.ValidateReasonText(text); err != nil {
			return nil, err
		}
		patch.Text = &text
	}

	reason, err := s.repo.Update(ctx, id, restaurantID, patch)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, restaurantID)

	s.logger.Debug("reason_updated", "Reason updated", map[string]interface{}{
		"reason_id":     id,
		"restaurant_id": restaurantID,
	})
	return reason, nil
}

func parseReasonType(reasonType string) (*domain.ReasonType, error) {
	if reasonType == "" {
		return nil, nil
	}
	rt := domain.ReasonType(reasonType)
	if !rt.Valid() {
		return nil, domain.NewValidationError("reasonType", "reason type must be one of: waiting, rejected")
	}
	return &rt, nil
}
