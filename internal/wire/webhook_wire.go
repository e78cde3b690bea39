package wire

import (
	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireWebhook mounts the payment provider callback. No session auth here;
// the provider is expected to be verified at the network boundary.
func wireWebhook(r chi.Router, webhookHandler *adaptor.WebhookHandler) {
	r.Post("/webhooks/payment", webhookHandler.PaymentCompleted)
}
