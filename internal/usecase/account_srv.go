package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/response"
	"storefront/pkg/database"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProvisionResult is what checkout gets back when an email is resolved to
// an account. NeedsPassword gates the setup-email flow.
type ProvisionResult struct {
	User          *entity.User
	IsNew         bool
	NeedsPassword bool
}

type AccountService interface {
	FindOrCreate(ctx context.Context, email, name string, phone *string) (*ProvisionResult, error)
	HasPassword(ctx context.Context, userID uuid.UUID) (bool, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type accountService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAccountService(repo *repository.Repository, log *zap.Logger) AccountService {
	return &accountService{
		repo: repo,
		log:  log,
	}
}

// FindOrCreate resolves a checkout email to a user, creating a passwordless
// account when none exists. Emails are normalized before lookup so that
// "New@X.com" and "new@x.com" resolve to the same account.
func (s *accountService) FindOrCreate(ctx context.Context, email, name string, phone *string) (*ProvisionResult, error) {
	email = utils.NormalizeEmail(email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return &ProvisionResult{
			User:          user,
			IsNew:         false,
			NeedsPassword: !user.HasPassword(),
		}, nil
	}

	now := time.Now()
	user = &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email: email,
		Name:  name,
		Phone: phone,
		Role:  entity.RoleCustomer,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			// A concurrent checkout created the account between our lookup
			// and insert. Someone else won, re-fetch their row.
			existing, ferr := s.repo.User.FindByEmail(ctx, email)
			if ferr != nil {
				return nil, ferr
			}
			if existing == nil {
				return nil, fmt.Errorf("user %s vanished after unique violation", email)
			}
			return &ProvisionResult{
				User:          existing,
				IsNew:         false,
				NeedsPassword: !existing.HasPassword(),
			}, nil
		}
		return nil, err
	}

	s.log.Info("User auto-provisioned",
		zap.String("user_id", user.ID.String()),
		zap.String("email", email))

	return &ProvisionResult{
		User:          user,
		IsNew:         true,
		NeedsPassword: true,
	}, nil
}

func (s *accountService) HasPassword(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrNotFound
	}
	return user.HasPassword(), nil
}

func (s *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
