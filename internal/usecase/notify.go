package usecase

import (
	"fmt"

	"storefront/internal/data/entity"
)

// Email bodies for the post-purchase flow. Plain text, the storefront
// frontend owns anything fancier.

func setupEmailSubject() string {
	return "Secure your account"
}

func setupEmailBody(baseURL, rawToken string, expiryHours int) string {
	link := fmt.Sprintf("%s/set-password?token=%s", baseURL, rawToken)

	return fmt.Sprintf(
		"Thanks for your purchase!\n\n"+
			"We created an account for you so you can track your order. "+
			"Set a password using the link below:\n\n"+
			"%s\n\n"+
			"The link is valid for %d hours and can be used once. "+
			"If it expires you can request a new one from the order status page.\n",
		link, expiryHours)
}

func confirmationEmailSubject(order *entity.Order) string {
	return fmt.Sprintf("Order confirmed - %s", order.ID.String()[:8])
}

func confirmationEmailBody(order *entity.Order) string {
	return fmt.Sprintf(
		"Thanks for your purchase!\n\n"+
			"Your order %s is confirmed: %.2f %s.\n"+
			"Track it any time from your account.\n",
		order.ID.String()[:8], order.Total, order.Currency)
}
