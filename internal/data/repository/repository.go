package repository

import (
	"storefront/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Token   TokenRepository
	Order   OrderRepository
	Product ProductRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Token:   NewTokenRepository(db, log),
		Order:   NewOrderRepository(db, log),
		Product: NewProductRepository(db, log),
	}
}
