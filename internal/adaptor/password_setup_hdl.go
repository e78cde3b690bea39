package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// Every token failure shows the same message so the response body does not
// reveal whether a guessed token ever existed. The status code still follows
// the API contract (400 invalid, 409 used, 410 expired).
const setupLinkMessage = "This link is invalid or expired. Request a new one from your order status page."

type PasswordSetupHandler struct {
	service usecase.PasswordSetupService
	log     *zap.Logger
}

func NewPasswordSetupHandler(service usecase.PasswordSetupService, log *zap.Logger) *PasswordSetupHandler {
	return &PasswordSetupHandler{
		service: service,
		log:     log,
	}
}

// Status handles GET /api/password-setup?token=...
func (h *PasswordSetupHandler) Status(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.ResponseBadRequest(w, "Missing token", nil)
		return
	}

	status, err := h.service.Status(r.Context(), token)
	if err != nil {
		h.handleTokenError(w, err, "token status")
		return
	}

	utils.ResponseSuccess(w, "Token is valid", status)
}

// Complete handles POST /api/password-setup
func (h *PasswordSetupHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req request.SetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	response, err := h.service.Complete(r.Context(), &req)
	if err != nil {
		h.handleTokenError(w, err, "set password")
		return
	}

	utils.ResponseSuccess(w, "Password set successfully", response)
}

// Resend handles POST /api/password-setup/resend.
// Always 200 on a well-formed request, whether or not an email went out.
func (h *PasswordSetupHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var req request.ResendRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.Resend(r.Context(), &req); err != nil {
		if isValidationError(err) {
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}
		h.log.Error("Resend failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "If the account needs a password, an email is on its way", nil)
}

func (h *PasswordSetupHandler) handleTokenError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrTokenUsed):
		h.log.Warn(operation+" rejected - token already used", zap.Error(err))
		utils.ResponseConflict(w, setupLinkMessage)

	case errors.Is(err, usecase.ErrTokenExpired):
		h.log.Warn(operation+" rejected - token expired", zap.Error(err))
		utils.ResponseGone(w, setupLinkMessage)

	case errors.Is(err, usecase.ErrTokenInvalid):
		h.log.Warn(operation+" rejected - token unknown", zap.Error(err))
		utils.ResponseBadRequest(w, setupLinkMessage, nil)

	case isValidationError(err):
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
