package wire

import (
	"storefront/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wirePasswordSetup mounts the setup-link flow. All routes are public: the
// raw token in the request is the credential.
func wirePasswordSetup(r chi.Router, handler *adaptor.PasswordSetupHandler) {
	r.Get("/api/password-setup", handler.Status)
	r.Post("/api/password-setup", handler.Complete)
	r.Post("/api/password-setup/resend", handler.Resend)
}
