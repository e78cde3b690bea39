package usecase

import (
	"context"
	"testing"

	"storefront/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndConsume(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	user := env.seedUser("tania@example.com", nil)

	rawToken, err := svc.Token.Issue(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, rawToken, 64)
	assert.Equal(t, 1, env.tokens.count())

	userID, err := svc.Token.Consume(ctx, rawToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestTokenService_ConsumeIsSingleUse(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	user := env.seedUser("tania@example.com", nil)

	rawToken, err := svc.Token.Issue(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.Token.Consume(ctx, rawToken)
	require.NoError(t, err)

	// Second submit of the same token must fail as already used
	userID, err := svc.Token.Consume(ctx, rawToken)
	assert.ErrorIs(t, err, ErrTokenUsed)
	assert.Equal(t, uuid.Nil, userID)
}

func TestTokenService_ConsumeExpired(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	user := env.seedUser("tania@example.com", nil)

	rawToken, err := svc.Token.Issue(ctx, user.ID)
	require.NoError(t, err)

	env.tokens.expire(utils.HashSetupToken(rawToken))

	userID, err := svc.Token.Consume(ctx, rawToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, uuid.Nil, userID)
}

func TestTokenService_ConsumeUnknownToken(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()

	userID, err := svc.Token.Consume(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.Equal(t, uuid.Nil, userID)
}

func TestTokenService_InspectDoesNotConsume(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	user := env.seedUser("tania@example.com", nil)

	rawToken, err := svc.Token.Issue(ctx, user.ID)
	require.NoError(t, err)

	// Inspect any number of times; the token stays consumable
	for i := 0; i < 3; i++ {
		inspected, err := svc.Token.Inspect(ctx, rawToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, inspected.ID)
	}

	userID, err := svc.Token.Consume(ctx, rawToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestTokenService_MultipleOutstandingTokens(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	user := env.seedUser("tania@example.com", nil)

	first, err := svc.Token.Issue(ctx, user.ID)
	require.NoError(t, err)
	second, err := svc.Token.Issue(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// Issuing a second token does not revoke the first
	userID, err := svc.Token.Consume(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	userID, err = svc.Token.Consume(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestTokenService_RawTokenNotStored(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	user := env.seedUser("tania@example.com", nil)

	rawToken, err := svc.Token.Issue(ctx, user.ID)
	require.NoError(t, err)

	stored, err := env.tokens.FindByHash(ctx, utils.HashSetupToken(rawToken))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, rawToken, stored.TokenHash)
}
