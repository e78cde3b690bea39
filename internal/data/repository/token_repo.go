package repository

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordSetupToken) error
	FindByHash(ctx context.Context, tokenHash string) (*entity.PasswordSetupToken, error)
	// Consume marks the token used and returns the owning user in one
	// conditional update. Returns uuid.Nil and no error when the token is
	// missing, expired, or already used - callers cannot distinguish the
	// three from this call alone and must not need to.
	Consume(ctx context.Context, tokenHash string) (uuid.UUID, error)
}

type tokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "token")),
	}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.PasswordSetupToken) error {
	query := `
		INSERT INTO password_setup_tokens (id, user_id, token_hash,
		                                   expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
		token.UsedAt,
		token.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create password setup token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create setup token for user %s: %w", token.UserID.String(), err)
	}

	return nil
}

func (r *tokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.PasswordSetupToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, used_at, created_at
		FROM password_setup_tokens
		WHERE token_hash = $1
	`

	var token entity.PasswordSetupToken
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.UsedAt,
		&token.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find setup token", zap.Error(err))
		return nil, fmt.Errorf("find setup token: %w", err)
	}

	return &token, nil
}

// Consume is the single-use gate. Validity check and the used_at write are
// one statement so two concurrent submissions of the same token cannot both
// pass; the second sees zero rows.
func (r *tokenRepository) Consume(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	query := `
		UPDATE password_setup_tokens
		SET used_at = NOW()
		WHERE token_hash = $1
		  AND used_at IS NULL
		  AND expires_at > NOW()
		RETURNING user_id
	`

	var userID uuid.UUID
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(&userID)

	if err == pgx.ErrNoRows {
		return uuid.Nil, nil
	}
	if err != nil {
		r.log.Error("Failed to consume setup token", zap.Error(err))
		return uuid.Nil, fmt.Errorf("consume setup token: %w", err)
	}

	return userID, nil
}
