package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireOrder configures fulfilment routes, admin only
func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.With(
		middleware.AuthSession(repo.Session, log), // Check valid session
		middleware.Admin(repo.User, log),          // Check admin role
	).Route("/api/admin/orders", func(r chi.Router) {
		r.Get("/{id}", orderHandler.GetOrder)
		r.Patch("/{id}/status", orderHandler.UpdateStatus)
	})
}
