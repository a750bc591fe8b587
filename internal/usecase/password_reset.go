package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taskboardhq/taskboard-api/internal/repository"
	"github.com/taskboardhq/taskboard-api/shared/security"
)

// resetTokenTTL bounds the password-reset window.
const resetTokenTTL = time.Hour

// minResetPasswordLength is the floor applied to replacement passwords.
const minResetPasswordLength = 6

// PasswordResetUsecase defines the business logic for password reset.
type PasswordResetUsecase interface {
	// RequestPasswordReset opens a reset window for the account and emails a
	// reset link. A missing account is not an error, to prevent email
	// enumeration; a failed delivery is.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and stores the new password.
	// Expired and unknown tokens fail identically.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

var (
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	ErrPasswordTooShort  = errors.New("password too short")
)

type passwordResetUsecase struct {
	userRepo    repository.UserRepository
	mailer      Mailer
	frontendURL string
	logger      *zerolog.Logger
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	mailer Mailer,
	frontendURL string,
	logger *zerolog.Logger,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:    userRepo,
		mailer:      mailer,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Do not reveal whether the email exists.
			return nil
		}
		return err
	}

	resetToken, err := newSecretToken()
	if err != nil {
		return err
	}

	// Replaces any previously issued token; only one reset window is active
	// per user.
	if err := u.userRepo.SetResetToken(ctx, user.ID.Hex(), resetToken, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", u.frontendURL, resetToken)
	err = u.mailer.SendHTML(
		[]string{user.Email},
		"Password Reset Request - Taskboard",
		passwordResetEmailHTML(user.Name, resetURL),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minResetPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := u.userRepo.GetUserByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidResetToken
		}
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return u.userRepo.ResetPassword(ctx, user.ID.Hex(), passwordHash)
}
