package adaptor

import (
	"storefront/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth          *AuthHandler
	Account       *AccountHandler
	Webhook       *WebhookHandler
	PasswordSetup *PasswordSetupHandler
	Order         *OrderHandler
	Product       *ProductHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(service.Auth, log),
		Account:       NewAccountHandler(service.Account, service.Order, log),
		Webhook:       NewWebhookHandler(service.Webhook, log),
		PasswordSetup: NewPasswordSetupHandler(service.PasswordSetup, log),
		Order:         NewOrderHandler(service.Order, log),
		Product:       NewProductHandler(service.Product, log),
	}
}
