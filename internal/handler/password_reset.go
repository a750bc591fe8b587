package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/taskboardhq/taskboard-api/internal/httpjson"
	"github.com/taskboardhq/taskboard-api/internal/payload"
	"github.com/taskboardhq/taskboard-api/internal/usecase"
	"github.com/taskboardhq/taskboard-api/shared/validator"
)

// PasswordResetHandler handles the forgot-password and reset-password flows.
type PasswordResetHandler struct {
	passwordResetUsecase usecase.PasswordResetUsecase
	validate             *validator.Validator
	logger               *zerolog.Logger
}

// NewPasswordResetHandler creates a new PasswordResetHandler instance.
func NewPasswordResetHandler(
	passwordResetUsecase usecase.PasswordResetUsecase,
	validate *validator.Validator,
	logger *zerolog.Logger,
) *PasswordResetHandler {
	return &PasswordResetHandler{
		passwordResetUsecase: passwordResetUsecase,
		validate:             validate,
		logger:               logger,
	}
}

func (h *PasswordResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("failed to request password reset")

		if errors.Is(err, usecase.ErrEmailDelivery) {
			httpjson.Error(w, http.StatusInternalServerError, "Failed to send password reset email. Please try again.")
			return
		}

		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	// Same body whether or not the account exists.
	httpjson.Write(w, http.StatusOK, payload.MessageResponse{
		Message: "If an account with that email exists, a password reset link has been sent.",
	})
}

func (h *PasswordResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, usecase.ErrPasswordTooShort):
			httpjson.Error(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		case errors.Is(err, usecase.ErrInvalidResetToken):
			httpjson.Error(w, http.StatusBadRequest, "Invalid or expired reset token")
		default:
			h.logger.Error().Err(err).Msg("failed to reset password")
			httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		}
		return
	}

	httpjson.Write(w, http.StatusOK, payload.MessageResponse{
		Message: "Password reset successful. You can now login with your new password.",
	})
}
