package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/mailer"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PasswordSetupService is the customer-facing side of the setup flow:
// status check behind the email link, the actual password set, and resend.
type PasswordSetupService interface {
	Status(ctx context.Context, rawToken string) (*response.TokenStatusResponse, error)
	Complete(ctx context.Context, req *request.SetPasswordRequest) (*response.AuthResponse, error)
	Resend(ctx context.Context, req *request.ResendRequest) error
}

type passwordSetupService struct {
	repo   *repository.Repository
	tokens TokenService
	orders OrderService
	mail   mailer.Sender
	config *utils.Config
	log    *zap.Logger
}

func NewPasswordSetupService(
	repo *repository.Repository,
	tokens TokenService,
	orders OrderService,
	mail mailer.Sender,
	config *utils.Config,
	log *zap.Logger,
) PasswordSetupService {
	return &passwordSetupService{
		repo:   repo,
		tokens: tokens,
		orders: orders,
		mail:   mail,
		config: config,
		log:    log,
	}
}

// Status validates without consuming, so refreshing the setup page does not
// burn the token. The email comes back masked; possession of the raw token
// is the only credential at this point.
func (s *passwordSetupService) Status(ctx context.Context, rawToken string) (*response.TokenStatusResponse, error) {
	user, err := s.tokens.Inspect(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	return &response.TokenStatusResponse{
		Email:       utils.MaskEmail(user.Email),
		NeedsAction: !user.HasPassword(),
	}, nil
}

// Complete consumes the token, stores the password, links guest orders, and
// logs the customer in. The password is hashed before the consume so the
// single-use token is not burned on a hashing failure.
func (s *passwordSetupService) Complete(ctx context.Context, req *request.SetPasswordRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set password validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	// Single-use gate: a concurrent submit of the same token fails here
	userID, err := s.tokens.Consume(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	if err := s.repo.User.SetPassword(ctx, userID, passwordHash); err != nil {
		s.log.Error("Failed to store password after token consume",
			zap.Error(err),
			zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to set password")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		s.log.Error("User lookup failed after password set",
			zap.Error(err),
			zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load account")
	}

	// Claim any guest orders placed under this email before the account
	if _, err := s.orders.LinkGuestOrders(ctx, user.ID, user.Email); err != nil {
		s.log.Warn("Guest order linking failed during password setup",
			zap.Error(err),
			zap.String("user_id", user.ID.String()))
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Warn("Failed to create session after password setup",
			zap.Error(err),
			zap.String("user_id", user.ID.String()))
		// Continue without session, the customer can log in normally
	}

	s.log.Info("Password set via setup token",
		zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// Resend issues a fresh token if the account still has no password. The
// response is identical whether or not an account exists so the endpoint
// cannot be used for enumeration. Earlier tokens stay valid until expiry.
func (s *passwordSetupService) Resend(ctx context.Context, req *request.ResendRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Resend validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := utils.NormalizeEmail(req.Email)

	if email == "" && req.OrderID != "" {
		orderID, err := uuid.Parse(req.OrderID)
		if err != nil {
			return fmt.Errorf("validation failed: order_id must be a valid UUID")
		}
		order, err := s.repo.Order.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			// Same outward behavior as an unknown email
			return nil
		}
		email = order.EmailSnapshot
	}

	if email == "" {
		return fmt.Errorf("validation failed: email or order_id is required")
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || user.HasPassword() {
		// Nothing to do; do not reveal which case applied
		s.log.Info("Resend requested for account that needs no setup")
		return nil
	}

	rawToken, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return err
	}

	body := setupEmailBody(s.config.App.BaseURL, rawToken, s.config.Token.ExpiryHours)
	if err := s.mail.Send(user.Email, setupEmailSubject(), body); err != nil {
		s.log.Error("Resend email dispatch failed",
			zap.Error(err),
			zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to send email")
	}

	s.log.Info("Setup email resent", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *passwordSetupService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: time.Now().Add(time.Duration(s.config.Token.SessionHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
