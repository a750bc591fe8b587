package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/taskboardhq/taskboard-api/internal/httpjson"
	"github.com/taskboardhq/taskboard-api/internal/middleware"
	"github.com/taskboardhq/taskboard-api/internal/model"
	"github.com/taskboardhq/taskboard-api/internal/payload"
	"github.com/taskboardhq/taskboard-api/internal/usecase"
	"github.com/taskboardhq/taskboard-api/shared/validator"
)

// AuthHandler handles registration, login, email verification and the
// authenticated user lookup.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validate    *validator.Validator
	logger      *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validate *validator.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validate:    validate,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			httpjson.Error(w, http.StatusBadRequest, "User already exists")
			return
		}

		h.logger.Error().Err(err).Msg("failed to register user")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httpjson.Write(w, http.StatusCreated, payload.AuthResponse{
		Message: "Registration successful! Please check your email to verify your account.",
		User:    user,
		Token:   token,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			httpjson.Error(w, http.StatusBadRequest, "Invalid credentials")
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in user")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	message := "Login successful"
	if !user.IsVerified {
		message = "Login successful! Please verify your email to access all features."
	}

	httpjson.Write(w, http.StatusOK, payload.AuthResponse{
		Message: message,
		User:    user,
		Token:   token,
	})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	user, err := h.authUsecase.VerifyEmail(r.Context(), token)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidVerificationToken) {
			httpjson.Error(w, http.StatusBadRequest, "Invalid or expired verification token")
			return
		}

		h.logger.Error().Err(err).Msg("failed to verify email")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httpjson.Write(w, http.StatusOK, payload.AuthResponse{
		Message: "Email verified successfully! You can now use all features.",
		User:    user,
	})
}

func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req payload.ResendVerificationRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authUsecase.ResendVerification(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			httpjson.Error(w, http.StatusNotFound, "User not found")
		case errors.Is(err, usecase.ErrAlreadyVerified):
			httpjson.Error(w, http.StatusBadRequest, "Email is already verified")
		case errors.Is(err, usecase.ErrEmailDelivery):
			h.logger.Error().Err(err).Msg("failed to resend verification email")
			httpjson.Error(w, http.StatusInternalServerError, "Failed to send verification email. Please try again.")
		default:
			h.logger.Error().Err(err).Msg("failed to resend verification email")
			httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		}
		return
	}

	httpjson.Write(w, http.StatusOK, payload.MessageResponse{
		Message: "Verification email sent successfully",
	})
}

func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := h.authUsecase.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			httpjson.Error(w, http.StatusNotFound, "User not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to get user")
		httpjson.Error(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	httpjson.Write(w, http.StatusOK, struct {
		User *model.User `json:"user"`
	}{User: user})
}
