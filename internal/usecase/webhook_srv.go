package usecase

import (
	"context"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/pkg/mailer"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WebhookResult reports what the intake did with a payment event. EmailSent
// is informational; a false value never fails the webhook.
type WebhookResult struct {
	OrderID          uuid.UUID
	UserID           uuid.UUID
	AlreadyProcessed bool
	UserCreated      bool
	TokenIssued      bool
	EmailSent        bool
}

// WebhookService orchestrates the post-purchase flow: idempotent order
// intake, user provisioning, setup-token issuance, and email dispatch.
type WebhookService interface {
	HandlePaymentCompleted(ctx context.Context, event *request.PaymentCompletedEvent) (*WebhookResult, error)
}

type webhookService struct {
	repo    *repository.Repository
	orders  OrderService
	account AccountService
	tokens  TokenService
	mail    mailer.Sender
	config  *utils.Config
	log     *zap.Logger
}

func NewWebhookService(
	repo *repository.Repository,
	orders OrderService,
	account AccountService,
	tokens TokenService,
	mail mailer.Sender,
	config *utils.Config,
	log *zap.Logger,
) WebhookService {
	return &webhookService{
		repo:    repo,
		orders:  orders,
		account: account,
		tokens:  tokens,
		mail:    mail,
		config:  config,
		log:     log,
	}
}

// HandlePaymentCompleted runs the full intake. The order row is the
// integrity boundary: everything up to and including user provisioning
// returns an error (the provider retries on non-2xx), while token issuance
// and email dispatch degrade to a logged warning because the customer can
// trigger a resend later.
func (s *webhookService) HandlePaymentCompleted(ctx context.Context, event *request.PaymentCompletedEvent) (*WebhookResult, error) {
	email := utils.NormalizeEmail(event.Email)

	// Resolve an existing account first so a known customer's order is
	// linked at creation time instead of back-filled.
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	var knownUserID *uuid.UUID
	if existing != nil {
		knownUserID = &existing.ID
	}

	order, alreadyProcessed, err := s.orders.RecordOrder(ctx, RecordOrderParams{
		PaymentIntentID: event.PaymentIntentID,
		Provider:        event.Provider,
		Email:           email,
		Total:           event.Total,
		Currency:        event.Currency,
		UserID:          knownUserID,
	})
	if err != nil {
		return nil, err
	}

	if alreadyProcessed {
		// Webhook retry, all side effects already happened on first sight
		result := &WebhookResult{OrderID: order.ID, AlreadyProcessed: true}
		if order.UserID != nil {
			result.UserID = *order.UserID
		}
		return result, nil
	}

	provision, err := s.account.FindOrCreate(ctx, email, event.Name, event.Phone)
	if err != nil {
		// The order exists and stays; the provider will retry but hit the
		// idempotency gate. Escalate so the failure is visible.
		s.log.Error("User provisioning failed after order creation",
			zap.Error(err),
			zap.String("order_id", order.ID.String()))
		return nil, err
	}

	result := &WebhookResult{
		OrderID:     order.ID,
		UserID:      provision.User.ID,
		UserCreated: provision.IsNew,
	}

	// Back-fill this order and any older guest orders under the same email
	if _, err := s.orders.LinkGuestOrders(ctx, provision.User.ID, email); err != nil {
		s.log.Warn("Guest order linking failed, will retry on next login",
			zap.Error(err),
			zap.String("user_id", provision.User.ID.String()))
	}

	if provision.NeedsPassword {
		s.issueAndSendSetupEmail(ctx, provision.User.ID, email, result)
	} else {
		s.sendConfirmationEmail(email, order, result)
	}

	s.log.Info("Payment event processed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", provision.User.ID.String()),
		zap.Bool("user_created", provision.IsNew),
		zap.Bool("token_issued", result.TokenIssued),
		zap.Bool("email_sent", result.EmailSent))

	return result, nil
}

// issueAndSendSetupEmail is best-effort: the customer charged for goods must
// get a 200 back to the provider even if the token or the email failed. The
// resend endpoint covers recovery.
func (s *webhookService) issueAndSendSetupEmail(ctx context.Context, userID uuid.UUID, email string, result *WebhookResult) {
	rawToken, err := s.tokens.Issue(ctx, userID)
	if err != nil {
		s.log.Warn("Setup token issuance failed, customer can use resend",
			zap.Error(err),
			zap.String("user_id", userID.String()))
		return
	}
	result.TokenIssued = true

	body := setupEmailBody(s.config.App.BaseURL, rawToken, s.config.Token.ExpiryHours)
	if err := s.mail.Send(email, setupEmailSubject(), body); err != nil {
		s.log.Warn("Setup email dispatch failed, customer can use resend",
			zap.Error(err),
			zap.String("user_id", userID.String()))
		return
	}
	result.EmailSent = true
}

func (s *webhookService) sendConfirmationEmail(email string, order *entity.Order, result *WebhookResult) {
	if err := s.mail.Send(email, confirmationEmailSubject(order), confirmationEmailBody(order)); err != nil {
		s.log.Warn("Confirmation email dispatch failed",
			zap.Error(err),
			zap.String("order_id", order.ID.String()))
		return
	}
	result.EmailSent = true
}
