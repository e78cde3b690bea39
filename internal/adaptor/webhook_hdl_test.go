package adaptor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubWebhookService struct {
	result *usecase.WebhookResult
	err    error
}

func (s *stubWebhookService) HandlePaymentCompleted(ctx context.Context, event *request.PaymentCompletedEvent) (*usecase.WebhookResult, error) {
	return s.result, s.err
}

func postPaymentEvent(handler *WebhookHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.PaymentCompleted(rec, req)
	return rec
}

const validEventBody = `{
	"payment_intent_id": "pi_123",
	"provider": "stripe",
	"email": "buyer@example.com",
	"name": "Buyer",
	"total": 89.90,
	"currency": "USD"
}`

func TestWebhookHandler_PaymentCompleted(t *testing.T) {
	handler := NewWebhookHandler(&stubWebhookService{
		result: &usecase.WebhookResult{
			OrderID:     uuid.New(),
			UserID:      uuid.New(),
			UserCreated: true,
			EmailSent:   true,
		},
	}, zap.NewNop())

	rec := postPaymentEvent(handler, validEventBody)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookHandler_PaymentCompleted_Duplicate(t *testing.T) {
	handler := NewWebhookHandler(&stubWebhookService{
		result: &usecase.WebhookResult{
			OrderID:          uuid.New(),
			AlreadyProcessed: true,
		},
	}, zap.NewNop())

	// Duplicates must still be 2xx or the provider keeps retrying forever
	rec := postPaymentEvent(handler, validEventBody)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookHandler_PaymentCompleted_StorageFailure(t *testing.T) {
	handler := NewWebhookHandler(&stubWebhookService{
		err: fmt.Errorf("connection refused"),
	}, zap.NewNop())

	// Non-2xx so the provider redelivers
	rec := postPaymentEvent(handler, validEventBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWebhookHandler_PaymentCompleted_BadPayload(t *testing.T) {
	handler := NewWebhookHandler(&stubWebhookService{}, zap.NewNop())

	rec := postPaymentEvent(handler, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing required fields
	rec = postPaymentEvent(handler, `{"provider":"stripe"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Zero total
	rec = postPaymentEvent(handler, `{
		"payment_intent_id": "pi_123",
		"provider": "stripe",
		"email": "buyer@example.com",
		"total": 0,
		"currency": "USD"
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
