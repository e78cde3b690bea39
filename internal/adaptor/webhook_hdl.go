package adaptor

import (
	"encoding/json"
	"net/http"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type WebhookHandler struct {
	service usecase.WebhookService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.WebhookService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log,
	}
}

// PaymentCompleted handles POST /webhooks/payment.
// The provider retries delivery on any non-2xx, so only unrecoverable
// internal errors may fail this request. Duplicates are success.
func (h *WebhookHandler) PaymentCompleted(w http.ResponseWriter, r *http.Request) {
	var event request.PaymentCompletedEvent

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate event
	if validationErrors := utils.ValidateStruct(event); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.HandlePaymentCompleted(r.Context(), &event)
	if err != nil {
		// Storage failure, let the provider redeliver
		h.log.Error("Payment webhook failed",
			zap.Error(err),
			zap.String("payment_intent_id", event.PaymentIntentID))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	if result.AlreadyProcessed {
		utils.ResponseSuccess(w, "Event already processed", map[string]any{
			"order_id": result.OrderID.String(),
		})
		return
	}

	utils.ResponseSuccess(w, "Order recorded", map[string]any{
		"order_id":     result.OrderID.String(),
		"user_id":      result.UserID.String(),
		"user_created": result.UserCreated,
		"email_sent":   result.EmailSent,
	})
}
