package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

type reasonRepository struct {
	db DB
}

func NewReasonRepository(db DB) interfaces.ReasonRepository {
	return &reasonRepository{db: db}
}

const reasonColumns = `id, restaurant_id, reason_type, reason_text, is_active, created_by, created_at, updated_at`

func (r *reasonRepository) Create(ctx context.Context, reason *domain.Reason) error {
	query := `
		INSERT INTO action_reasons (id, restaurant_id, reason_type, reason_text, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		reason.ID, reason.RestaurantID, reason.Type, reason.Text,
		reason.IsActive, reason.CreatedBy, reason.CreatedAt, reason.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reason: %w", err)
	}
	return nil
}

func (r *reasonRepository) FindByID(ctx context.Context, id, restaurantID uuid.UUID) (*domain.Reason, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM action_reasons
		WHERE id = $1 AND restaurant_id = $2
	`, reasonColumns)

	reason, err := scanReason(r.db.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reason: %w", err)
	}
	return reason, nil
}

func (r *reasonRepository) List(ctx context.Context, restaurantID uuid.UUID, filter interfaces.ReasonFilter) ([]*domain.Reason, error) {
	query, args := buildReasonQuery(restaurantID, filter)
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reasons: %w", err)
	}
	defer rows.Close()

	return collectReasons(rows)
}

func (r *reasonRepository) ListPage(ctx context.Context, restaurantID uuid.UUID, filter interfaces.ReasonFilter, offset, limit int) ([]*domain.Reason, int, error) {
	countQuery, countArgs := buildReasonCountQuery(restaurantID, filter)

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reasons: %w", err)
	}

	query, args := buildReasonQuery(restaurantID, filter)
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))
	args = append(args, offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reasons: %w", err)
	}
	defer rows.Close()

	reasons, err := collectReasons(rows)
	if err != nil {
		return nil, 0, err
	}
	return reasons, total, nil
}

func (r *reasonRepository) Update(ctx context.Context, id, restaurantID uuid.UUID, patch interfaces.ReasonPatch) (*domain.Reason, error) {
	sets := []string{"updated_at = $1"}
	args := []any{time.Now()}

	if patch.Text != nil {
		args = append(args, *patch.Text)
		sets = append(sets, fmt.Sprintf("reason_text = $%d", len(args)))
	}
	if patch.IsActive != nil {
		args = append(args, *patch.IsActive)
		sets = append(sets, fmt.Sprintf("is_active = $%d", len(args)))
	}

	args = append(args, id, restaurantID)
	query := fmt.Sprintf(`
		UPDATE action_reasons
		SET %s
		WHERE id = $%d AND restaurant_id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args)-1, len(args), reasonColumns)

	reason, err := scanReason(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update reason: %w", err)
	}
	return reason, nil
}

func buildReasonQuery(restaurantID uuid.UUID, filter interfaces.ReasonFilter) (string, []any) {
	query := fmt.Sprintf(`SELECT %s FROM action_reasons WHERE restaurant_id = $1`, reasonColumns)
	args := []any{restaurantID}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(` AND reason_type = $%d`, len(args))
	}
	if filter.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	return query, args
}

func buildReasonCountQuery(restaurantID uuid.UUID, filter interfaces.ReasonFilter) (string, []any) {
	query := `SELECT COUNT(*) FROM action_reasons WHERE restaurant_id = $1`
	args := []any{restaurantID}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(` AND reason_type = $%d`, len(args))
	}
	if filter.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	return query, args
}

func scanReason(row Row) (*domain.Reason, error) {
	var reason domain.Reason
	err := row.Scan(
		&reason.ID, &reason.RestaurantID, &reason.Type, &reason.Text,
		&reason.IsActive, &reason.CreatedBy, &reason.CreatedAt, &reason.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reason, nil
}

func collectReasons(rows Rows) ([]*domain.Reason, error) {
	var reasons []*domain.Reason
	for rows.Next() {
		var reason domain.Reason
		if err := rows.Scan(
			&reason.ID, &reason.RestaurantID, &reason.Type, &reason.Text,
			&reason.IsActive, &reason.CreatedBy, &reason.CreatedAt, &reason.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reason: %w", err)
		}
		reasons = append(reasons, &reason)
	}
	return reasons, nil
}
