package adaptor

import (
	"errors"
	"net/http"

	"storefront/internal/dto/response"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type AccountHandler struct {
	account usecase.AccountService
	orders  usecase.OrderService
	log     *zap.Logger
}

func NewAccountHandler(account usecase.AccountService, orders usecase.OrderService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		account: account,
		orders:  orders,
		log:     log,
	}
}

// GetProfile handles GET /api/account/profile
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing authentication")
		return
	}

	profile, err := h.account.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.ResponseNotFound(w, "Account not found")
			return
		}
		h.log.Error("Failed to load profile", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", profile)
}

// GetOrders handles GET /api/account/orders?page=1&per_page=10
func (h *AccountHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Missing authentication")
		return
	}

	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	perPage := utils.ParseInt(r.URL.Query().Get("per_page"), 10)

	orders, err := h.orders.ListUserOrders(r.Context(), userID, perPage, (page-1)*perPage)
	if err != nil {
		h.log.Error("Failed to list orders", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Orders retrieved", response.OrdersToResponse(orders))
}
