package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/data/entity"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			utils.ResponseNotFound(w, "Order not found")
		case errors.Is(err, usecase.ErrStatusTransition):
			utils.ResponseBadRequest(w, err.Error(), nil)
		default:
			h.log.Error("Failed to update order status", zap.Error(err))
			utils.ResponseInternalError(w, "Internal server error")
		}
		return
	}

	utils.ResponseSuccess(w, "Order status updated", response.OrderToResponse(order))
}

// GetOrder handles GET /api/admin/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid order ID", nil)
		return
	}

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.ResponseNotFound(w, "Order not found")
			return
		}
		h.log.Error("Failed to get order", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Order retrieved", response.OrderToResponse(order))
}
