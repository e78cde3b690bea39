package entity

import (
	"time"

	"github.com/google/uuid"
)

// PasswordSetupToken is the stored side of a single-use password-setup
// credential. Only the SHA-256 hash of the raw token is persisted; the raw
// value travels out-of-band in the email link. Rows are append-only: expired
// or consumed tokens stay in the table as an audit trail.
type PasswordSetupToken struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
}

// IsValid checks expiry and single-use state against the given clock.
func (t *PasswordSetupToken) IsValid(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
