package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAccount(
	r chi.Router,
	accountHandler *adaptor.AccountHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Account routes - require authentication
	r.With(middleware.AuthSession(repo.Session, log)).Route("/api/account", func(r chi.Router) {
		r.Get("/profile", accountHandler.GetProfile)
		r.Get("/orders", accountHandler.GetOrders)
	})
}
