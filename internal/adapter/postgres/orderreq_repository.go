package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

type orderRequestRepository struct {
	db DB
}

func NewOrderRequestRepository(db DB) interfaces.OrderRequestRepository {
	return &orderRequestRepository{db: db}
}

const orderRequestColumns = `id, restaurant_id, number, customer_name, order_type, item_count,
	       guest_count, total_amount, requested_for, status, status_updated_by,
	       reason_id, waiting_time, created_at, updated_at`

// Create assigns the request number and inserts in one transaction. An
// advisory lock keyed by restaurant serializes number generation, so two
// concurrent ingests for the same restaurant cannot count the same sequence
// position.
func (r *orderRequestRepository) Create(ctx context.Context, req *domain.OrderRequest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, req.RestaurantID)
	if err != nil {
		return fmt.Errorf("failed to lock number sequence: %w", err)
	}

	number, err := nextNumber(ctx, tx, req.RestaurantID)
	if err != nil {
		return err
	}
	req.Number = number

	query := `
		INSERT INTO order_requests (id, restaurant_id, number, customer_name, order_type, item_count,
		                            guest_count, total_amount, requested_for, status, status_updated_by,
		                            reason_id, waiting_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = tx.Exec(ctx, query,
		req.ID, req.RestaurantID, req.Number, req.CustomerName, req.OrderType, req.ItemCount,
		req.GuestCount, req.TotalAmount, req.RequestedFor, req.Status, req.StatusUpdatedBy,
		req.ReasonID, req.WaitingTime, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order request: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *orderRequestRepository) FindByID(ctx context.Context, id, restaurantID uuid.UUID) (*domain.OrderRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM order_requests
		WHERE id = $1 AND restaurant_id = $2
	`, orderRequestColumns)

	req, err := scanOrderRequest(r.db.QueryRow(ctx, query, id, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order request: %w", err)
	}
	return req, nil
}

func (r *orderRequestRepository) List(ctx context.Context, restaurantID uuid.UUID, status *domain.Status, limit int) ([]*domain.OrderRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM order_requests WHERE restaurant_id = $1`, orderRequestColumns)
	args := []any{restaurantID}

	if status != nil {
		args = append(args, *status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list order requests: %w", err)
	}
	defer rows.Close()

	var reqs []*domain.OrderRequest
	for rows.Next() {
		var req domain.OrderRequest
		if err := scanOrderRequestFields(rows.Scan, &req); err != nil {
			return nil, fmt.Errorf("failed to scan order request: %w", err)
		}
		reqs = append(reqs, &req)
	}
	return reqs, nil
}

// UpdateStatus performs the guarded transition write. The WHERE clause is the
// tenancy boundary: id, restaurant_id and the expected current status must
// all match or nothing is updated and ErrNotFound is returned.
func (r *orderRequestRepository) UpdateStatus(ctx context.Context, upd interfaces.StatusUpdate) (*domain.OrderRequest, error) {
	query := fmt.Sprintf(`
		UPDATE order_requests
		SET status = $1, status_updated_by = $2, reason_id = $3, waiting_time = $4, updated_at = $5
		WHERE id = $6 AND restaurant_id = $7 AND status = $8
		RETURNING %s
	`, orderRequestColumns)

	req, err := scanOrderRequest(r.db.QueryRow(ctx, query,
		upd.To, upd.Actor, upd.ReasonID, upd.WaitingTime, time.Now(),
		upd.ID, upd.RestaurantID, upd.From,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order request status: %w", err)
	}
	return req, nil
}

// nextNumber mints REQ_YYYYMMDD_NNN within the caller's transaction.
func nextNumber(ctx context.Context, tx Tx, restaurantID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	prefix := fmt.Sprintf("REQ_%s_", now.Format("20060102"))

	query := `
		SELECT COUNT(*) FROM order_requests
		WHERE restaurant_id = $1 AND number LIKE $2
	`

	var count int
	if err := tx.QueryRow(ctx, query, restaurantID, prefix+"%").Scan(&count); err != nil {
		return "", fmt.Errorf("failed to count order requests: %w", err)
	}

	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}

func scanOrderRequest(row Row) (*domain.OrderRequest, error) {
	var req domain.OrderRequest
	if err := scanOrderRequestFields(row.Scan, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func scanOrderRequestFields(scan func(dest ...any) error, req *domain.OrderRequest) error {
	return scan(
		&req.ID, &req.RestaurantID, &req.Number, &req.CustomerName, &req.OrderType, &req.ItemCount,
		&req.GuestCount, &req.TotalAmount, &req.RequestedFor, &req.Status, &req.StatusUpdatedBy,
		&req.ReasonID, &req.WaitingTime, &req.CreatedAt, &req.UpdatedAt,
	)
}
