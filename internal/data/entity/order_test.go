package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"gathering to shipped", OrderStatusGathering, OrderStatusShipped, true},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"gathering to delivered skips ahead", OrderStatusGathering, OrderStatusDelivered, true},
		{"shipped back to gathering", OrderStatusShipped, OrderStatusGathering, false},
		{"delivered back to shipped", OrderStatusDelivered, OrderStatusShipped, false},
		{"same status is not a move", OrderStatusShipped, OrderStatusShipped, false},
		{"unknown target", OrderStatusGathering, OrderStatus("cancelled"), false},
		{"unknown source", OrderStatus("bogus"), OrderStatusShipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrder_IsGuest(t *testing.T) {
	order := &Order{}
	assert.True(t, order.IsGuest())

	userID := uuid.New()
	order.UserID = &userID
	assert.False(t, order.IsGuest())
}
