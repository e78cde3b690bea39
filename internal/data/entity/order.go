package entity

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusGathering OrderStatus = "gathering"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// statusRank orders the lifecycle for forward-only transition checks.
var statusRank = map[OrderStatus]int{
	OrderStatusGathering: 0,
	OrderStatusShipped:   1,
	OrderStatusDelivered: 2,
}

// CanTransitionTo allows any forward move (gathering -> delivered is legal),
// rejects backward moves and unknown statuses.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[target]
	if !ok {
		return false
	}
	return to > from
}

type Order struct {
	BaseNoDelete
	UserID          *uuid.UUID  `db:"user_id"`
	EmailSnapshot   string      `db:"email_snapshot"`
	Total           float64     `db:"total"`
	Currency        string      `db:"currency"`
	Status          OrderStatus `db:"status"`
	PaymentProvider string      `db:"payment_provider"`
	PaymentIntentID string      `db:"payment_intent_id"`
}

// IsGuest reports whether the order has not been linked to an account yet.
func (o *Order) IsGuest() bool {
	return o.UserID == nil
}
