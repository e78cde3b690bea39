package usecase

import (
	"storefront/internal/data/repository"
	"storefront/pkg/mailer"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth          AuthService
	Account       AccountService
	Token         TokenService
	Order         OrderService
	Webhook       WebhookService
	PasswordSetup PasswordSetupService
	Product       ProductService
}

func NewService(repo *repository.Repository, config *utils.Config, mail mailer.Sender, log *zap.Logger) *Service {
	tokens := NewTokenService(repo, config, log)
	orders := NewOrderService(repo, log)
	account := NewAccountService(repo, log)

	return &Service{
		Auth:          NewAuthService(repo, orders, config, log),
		Account:       account,
		Token:         tokens,
		Order:         orders,
		Webhook:       NewWebhookService(repo, orders, account, tokens, mail, config, log),
		PasswordSetup: NewPasswordSetupService(repo, tokens, orders, mail, config, log),
		Product:       NewProductService(repo, log),
	}
}
