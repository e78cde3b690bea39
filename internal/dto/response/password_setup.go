package response

// TokenStatusResponse is returned by the setup-link status check. The email
// is masked; the raw token is the only proof of ownership at this point.
type TokenStatusResponse struct {
	Email       string `json:"email"`
	NeedsAction bool   `json:"needs_action"`
}
