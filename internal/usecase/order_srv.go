package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordOrderParams carries the order fields extracted from a payment event.
// UserID is set when the purchaser already had an account at checkout time.
type RecordOrderParams struct {
	PaymentIntentID string
	Provider        string
	Email           string
	Total           float64
	Currency        string
	UserID          *uuid.UUID
}

type OrderService interface {
	// RecordOrder is the idempotency gate: at most one order per payment
	// intent. alreadyProcessed reports the duplicate path, which callers
	// must treat as success.
	RecordOrder(ctx context.Context, params RecordOrderParams) (order *entity.Order, alreadyProcessed bool, err error)
	LinkGuestOrders(ctx context.Context, userID uuid.UUID, email string) (int64, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log,
	}
}

func (s *orderService) RecordOrder(ctx context.Context, params RecordOrderParams) (*entity.Order, bool, error) {
	now := time.Now()
	order := &entity.Order{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          params.UserID,
		EmailSnapshot:   utils.NormalizeEmail(params.Email),
		Total:           params.Total,
		Currency:        params.Currency,
		Status:          entity.OrderStatusGathering,
		PaymentProvider: params.Provider,
		PaymentIntentID: params.PaymentIntentID,
	}

	inserted, err := s.repo.Order.Insert(ctx, order)
	if err != nil {
		return nil, false, err
	}

	if !inserted {
		// Duplicate delivery. Surface the original order so the caller can
		// answer with its identity.
		existing, err := s.repo.Order.FindByPaymentIntentID(ctx, params.PaymentIntentID)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, fmt.Errorf("order for intent %s missing after conflict", params.PaymentIntentID)
		}

		s.log.Info("Duplicate payment event ignored",
			zap.String("payment_intent_id", params.PaymentIntentID),
			zap.String("order_id", existing.ID.String()))

		return existing, true, nil
	}

	s.log.Info("Order recorded",
		zap.String("order_id", order.ID.String()),
		zap.String("payment_intent_id", params.PaymentIntentID),
		zap.Float64("total", params.Total))

	return order, false, nil
}

// LinkGuestOrders claims orders placed before the account existed. Email
// matching is a heuristic: whoever holds the account for that email owns
// its guest orders.
func (s *orderService) LinkGuestOrders(ctx context.Context, userID uuid.UUID, email string) (int64, error) {
	count, err := s.repo.Order.LinkGuestOrders(ctx, userID, email)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.log.Info("Guest orders linked",
			zap.String("user_id", userID.String()),
			zap.Int64("count", count))
	}

	return count, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	return s.repo.Order.FindByUserID(ctx, userID, limit, offset)
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// UpdateStatus moves the fulfilment status forward. Backward transitions
// have no defined meaning and are rejected.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrStatusTransition, order.Status, status)
	}

	if err := s.repo.Order.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order.Status = status
	return order, nil
}
