package response

import (
	"time"

	"storefront/internal/data/entity"
)

type OrderResponse struct {
	ID              string    `json:"id"`
	UserID          *string   `json:"user_id,omitempty"`
	Email           string    `json:"email"`
	Total           float64   `json:"total"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	PaymentProvider string    `json:"payment_provider"`
	CreatedAt       time.Time `json:"created_at"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID.String(),
		Email:           order.EmailSnapshot,
		Total:           order.Total,
		Currency:        order.Currency,
		Status:          string(order.Status),
		PaymentProvider: order.PaymentProvider,
		CreatedAt:       order.CreatedAt,
	}

	if order.UserID != nil {
		id := order.UserID.String()
		resp.UserID = &id
	}

	return resp
}

func OrdersToResponse(orders []*entity.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToResponse(order))
	}
	return result
}
