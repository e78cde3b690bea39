package repository

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	// Insert adds a new order unless one already exists for the same payment
	// intent. Returns inserted=false on the duplicate path (webhook retries).
	Insert(ctx context.Context, order *entity.Order) (inserted bool, err error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)
	LinkGuestOrders(ctx context.Context, userID uuid.UUID, email string) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

// Insert relies on the unique constraint on payment_intent_id for the
// idempotency gate: ON CONFLICT DO NOTHING means two concurrent webhook
// deliveries can never produce two rows.
func (r *orderRepository) Insert(ctx context.Context, order *entity.Order) (bool, error) {
	query := `
		INSERT INTO orders (id, user_id, email_snapshot, total, currency,
		                    status, payment_provider, payment_intent_id,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (payment_intent_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.EmailSnapshot,
		order.Total,
		order.Currency,
		order.Status,
		order.PaymentProvider,
		order.PaymentIntentID,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to insert order",
			zap.Error(err),
			zap.String("payment_intent_id", order.PaymentIntentID),
		)
		return false, fmt.Errorf("insert order for intent %s: %w", order.PaymentIntentID, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `
		SELECT id, user_id, email_snapshot, total, currency, status,
		       payment_provider, payment_intent_id, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id), id.String())
}

func (r *orderRepository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Order, error) {
	query := `
		SELECT id, user_id, email_snapshot, total, currency, status,
		       payment_provider, payment_intent_id, created_at, updated_at
		FROM orders
		WHERE payment_intent_id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, paymentIntentID), paymentIntentID)
}

func (r *orderRepository) scanOne(row pgx.Row, key string) (*entity.Order, error) {
	var order entity.Order
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.EmailSnapshot,
		&order.Total,
		&order.Currency,
		&order.Status,
		&order.PaymentProvider,
		&order.PaymentIntentID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("find order %s: %w", key, err)
	}

	return &order, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, user_id, email_snapshot, total, currency, status,
		       payment_provider, payment_intent_id, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list orders for user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list orders for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.EmailSnapshot,
			&order.Total,
			&order.Currency,
			&order.Status,
			&order.PaymentProvider,
			&order.PaymentIntentID,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

// LinkGuestOrders claims every unowned order whose checkout email matches,
// case-insensitively. The returned count is informational only.
func (r *orderRepository) LinkGuestOrders(ctx context.Context, userID uuid.UUID, email string) (int64, error) {
	query := `
		UPDATE orders
		SET user_id = $1, updated_at = NOW()
		WHERE user_id IS NULL
		  AND LOWER(email_snapshot) = LOWER($2)
	`

	result, err := r.db.Exec(ctx, query, userID, email)
	if err != nil {
		r.log.Error("Failed to link guest orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("link guest orders for user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update status for order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id.String())
	}

	return nil
}
