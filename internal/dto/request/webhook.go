package request

// PaymentCompletedEvent is the payload the payment provider delivers on a
// completed charge. Providers retry delivery on any non-2xx response, so the
// same event can arrive more than once.
type PaymentCompletedEvent struct {
	PaymentIntentID string  `json:"payment_intent_id" validate:"required"`
	Provider        string  `json:"provider" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Name            string  `json:"name"`
	Phone           *string `json:"phone,omitempty"`
	Total           float64 `json:"total" validate:"required,gt=0"`
	Currency        string  `json:"currency" validate:"required,len=3"`
}
