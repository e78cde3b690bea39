package request

type SetPasswordRequest struct {
	Token    string `json:"token" validate:"required,len=64"`
	Password string `json:"password" validate:"required,min=6"`
}

// ResendRequest accepts either an email or an order id. With an order id the
// email snapshot on the order is used.
type ResendRequest struct {
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	OrderID string `json:"order_id,omitempty" validate:"omitempty,uuid"`
}
