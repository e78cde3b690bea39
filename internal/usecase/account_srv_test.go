package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_FindOrCreate_NewUser(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()

	result, err := svc.Account.FindOrCreate(context.Background(), "New@Example.com", "New Customer", nil)
	require.NoError(t, err)

	assert.True(t, result.IsNew)
	assert.True(t, result.NeedsPassword)
	assert.Equal(t, "new@example.com", result.User.Email)
	assert.Equal(t, 1, env.users.count())
}

func TestAccountService_FindOrCreate_ExistingWithPassword(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()

	hash := "$2a$10$somethinghashed"
	user := env.seedUser("tania@example.com", &hash)

	result, err := svc.Account.FindOrCreate(context.Background(), "TANIA@example.com", "Different Name", nil)
	require.NoError(t, err)

	assert.False(t, result.IsNew)
	assert.False(t, result.NeedsPassword)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, 1, env.users.count())
}

func TestAccountService_FindOrCreate_ExistingWithoutPassword(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()

	user := env.seedUser("tania@example.com", nil)

	result, err := svc.Account.FindOrCreate(context.Background(), "tania@example.com", "Tania", nil)
	require.NoError(t, err)

	assert.False(t, result.IsNew)
	assert.True(t, result.NeedsPassword)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestAccountService_FindOrCreate_ConcurrentInsertLosesRace(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	// Both checkouts resolve the same email; storage enforces uniqueness and
	// the loser must come back with the winner's row
	first, err := svc.Account.FindOrCreate(ctx, "race@example.com", "First", nil)
	require.NoError(t, err)
	require.True(t, first.IsNew)

	// Hide the winner from the next lookup so the loser's insert hits the
	// unique violation and recovers through the re-fetch
	env.users.missOnce = true

	second, err := svc.Account.FindOrCreate(ctx, "race@example.com", "Second", nil)
	require.NoError(t, err)

	assert.False(t, second.IsNew)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, 1, env.users.count())
}

func TestAccountService_HasPassword(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	hash := "$2a$10$somethinghashed"
	withPassword := env.seedUser("set@example.com", &hash)
	withoutPassword := env.seedUser("unset@example.com", nil)

	has, err := svc.Account.HasPassword(ctx, withPassword.ID)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.Account.HasPassword(ctx, withoutPassword.ID)
	require.NoError(t, err)
	assert.False(t, has)
}
