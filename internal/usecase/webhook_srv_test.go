package usecase

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentEvent(intentID, email string) *request.PaymentCompletedEvent {
	return &request.PaymentCompletedEvent{
		PaymentIntentID: intentID,
		Provider:        "stripe",
		Email:           email,
		Name:            "Checkout Customer",
		Total:           89.90,
		Currency:        "USD",
	}
}

func TestWebhookService_FirstPurchase(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()

	result, err := svc.Webhook.HandlePaymentCompleted(context.Background(), paymentEvent("pi_1", "First@Example.com"))
	require.NoError(t, err)

	assert.False(t, result.AlreadyProcessed)
	assert.True(t, result.UserCreated)
	assert.True(t, result.TokenIssued)
	assert.True(t, result.EmailSent)

	// One order, one auto-provisioned passwordless user, linked together
	assert.Equal(t, 1, env.orders.count())
	assert.Equal(t, 1, env.users.count())

	user, err := env.users.FindByEmail(context.Background(), "first@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.HasPassword())

	order, err := env.orders.FindByID(context.Background(), result.OrderID)
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, user.ID, *order.UserID)

	// Setup email goes to the purchaser and carries the setup link
	mail := env.mail.lastMail()
	assert.Equal(t, "first@example.com", mail.To)
	assert.Contains(t, mail.Body, "set-password?token=")
}

func TestWebhookService_RetriedDelivery(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	first, err := svc.Webhook.HandlePaymentCompleted(ctx, paymentEvent("pi_1", "first@example.com"))
	require.NoError(t, err)

	second, err := svc.Webhook.HandlePaymentCompleted(ctx, paymentEvent("pi_1", "first@example.com"))
	require.NoError(t, err)

	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, first.OrderID, second.OrderID)

	// No duplicate side effects on the retry
	assert.Equal(t, 1, env.orders.count())
	assert.Equal(t, 1, env.users.count())
	assert.Equal(t, 1, env.tokens.count())
	assert.Equal(t, 1, env.mail.sentCount())
}

func TestWebhookService_ExistingCustomer(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	hash := "$2a$10$somethinghashed"
	user := env.seedUser("known@example.com", &hash)

	result, err := svc.Webhook.HandlePaymentCompleted(ctx, paymentEvent("pi_1", "Known@Example.com"))
	require.NoError(t, err)

	assert.False(t, result.UserCreated)
	assert.False(t, result.TokenIssued)
	assert.True(t, result.EmailSent)
	assert.Equal(t, user.ID, result.UserID)

	// Order linked at creation, no setup token for an account with a password
	order, err := env.orders.FindByID(ctx, result.OrderID)
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, user.ID, *order.UserID)
	assert.Equal(t, 0, env.tokens.count())

	// Confirmation instead of a setup link
	mail := env.mail.lastMail()
	assert.Equal(t, "known@example.com", mail.To)
	assert.NotContains(t, mail.Body, "set-password?token=")
}

func TestWebhookService_ProvisionedCustomerSecondPurchase(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()
	ctx := context.Background()

	// First purchase auto-provisions; the customer never sets a password
	_, err := svc.Webhook.HandlePaymentCompleted(ctx, paymentEvent("pi_1", "guest@example.com"))
	require.NoError(t, err)

	result, err := svc.Webhook.HandlePaymentCompleted(ctx, paymentEvent("pi_2", "guest@example.com"))
	require.NoError(t, err)

	// Still one account, and the setup email goes out again
	assert.False(t, result.UserCreated)
	assert.True(t, result.TokenIssued)
	assert.Equal(t, 1, env.users.count())
	assert.Equal(t, 2, env.orders.count())
	assert.Equal(t, 2, env.tokens.count())
	assert.Equal(t, 2, env.mail.sentCount())
}

func TestWebhookService_EmailFailureDoesNotFailIntake(t *testing.T) {
	env := newTestEnv()
	env.mail.fail = true
	svc := env.newService()

	result, err := svc.Webhook.HandlePaymentCompleted(context.Background(), paymentEvent("pi_1", "first@example.com"))
	require.NoError(t, err)

	// Order and user persist; only the email is reported as not sent
	assert.True(t, result.TokenIssued)
	assert.False(t, result.EmailSent)
	assert.Equal(t, 1, env.orders.count())
	assert.Equal(t, 1, env.users.count())
}

func TestWebhookService_SetupLinkUsesBaseURL(t *testing.T) {
	env := newTestEnv()
	svc := env.newService()

	_, err := svc.Webhook.HandlePaymentCompleted(context.Background(), paymentEvent("pi_1", "first@example.com"))
	require.NoError(t, err)

	mail := env.mail.lastMail()
	idx := strings.Index(mail.Body, env.config.App.BaseURL+"/set-password?token=")
	require.GreaterOrEqual(t, idx, 0)

	// The link carries the 64-char raw token
	token := mail.Body[idx+len(env.config.App.BaseURL+"/set-password?token="):]
	if cut := strings.IndexAny(token, " \n"); cut >= 0 {
		token = token[:cut]
	}
	assert.Len(t, token, 64)
}
