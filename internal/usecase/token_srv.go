package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenService issues and verifies single-use password-setup tokens.
// The raw token is returned exactly once from Issue; only its SHA-256 hash
// is stored. Multiple outstanding tokens per user are allowed - issuing a
// new one does not revoke older ones, they just expire.
type TokenService interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Inspect(ctx context.Context, rawToken string) (*entity.User, error)
	Consume(ctx context.Context, rawToken string) (uuid.UUID, error)
}

type tokenService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewTokenService(repo *repository.Repository, config *utils.Config, log *zap.Logger) TokenService {
	return &tokenService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

func (s *tokenService) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	rawToken, err := utils.GenerateSetupToken()
	if err != nil {
		s.log.Error("Failed to generate setup token", zap.Error(err))
		return "", fmt.Errorf("generate setup token: %w", err)
	}

	now := time.Now()
	token := &entity.PasswordSetupToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		TokenHash: utils.HashSetupToken(rawToken),
		ExpiresAt: now.Add(time.Duration(s.config.Token.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Token.Create(ctx, token); err != nil {
		return "", err
	}

	s.log.Info("Setup token issued",
		zap.String("user_id", userID.String()),
		zap.Time("expires_at", token.ExpiresAt))

	return rawToken, nil
}

// Inspect checks validity without consuming and returns the owning user.
// Used by the status endpoint behind the email link.
func (s *tokenService) Inspect(ctx context.Context, rawToken string) (*entity.User, error) {
	token, err := s.repo.Token.FindByHash(ctx, utils.HashSetupToken(rawToken))
	if err != nil {
		return nil, err
	}

	if err := s.classify(token); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Token outlived its user row, treat as invalid
		s.log.Warn("Setup token points to missing user",
			zap.String("user_id", token.UserID.String()))
		return nil, ErrTokenInvalid
	}

	return user, nil
}

// Consume atomically marks the token used and returns its user. The
// conditional update in the repository is the race gate; the re-read below
// only classifies the failure for logging and status mapping.
func (s *tokenService) Consume(ctx context.Context, rawToken string) (uuid.UUID, error) {
	tokenHash := utils.HashSetupToken(rawToken)

	userID, err := s.repo.Token.Consume(ctx, tokenHash)
	if err != nil {
		return uuid.Nil, err
	}
	if userID != uuid.Nil {
		return userID, nil
	}

	// Zero rows: missing, expired, or already used. Look the row up to log
	// the real reason; callers all present the same generic message.
	token, err := s.repo.Token.FindByHash(ctx, tokenHash)
	if err != nil {
		return uuid.Nil, err
	}

	reason := s.classify(token)
	if reason == nil {
		// Row became valid between the update and the re-read, should not
		// happen since tokens never transition back to valid
		reason = ErrTokenInvalid
	}

	s.log.Warn("Setup token rejected", zap.Error(reason))
	return uuid.Nil, reason
}

func (s *tokenService) classify(token *entity.PasswordSetupToken) error {
	switch {
	case token == nil:
		return ErrTokenInvalid
	case token.UsedAt != nil:
		return ErrTokenUsed
	case !time.Now().Before(token.ExpiresAt):
		return ErrTokenExpired
	default:
		return nil
	}
}
