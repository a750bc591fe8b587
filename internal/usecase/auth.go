package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taskboardhq/taskboard-api/internal/model"
	"github.com/taskboardhq/taskboard-api/internal/repository"
	"github.com/taskboardhq/taskboard-api/shared/auth"
	"github.com/taskboardhq/taskboard-api/shared/security"
)

// Mailer sends outbound email. The interface lives on the consumer side so
// tests can substitute a fake sender.
type Mailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	// Register creates an unverified account and returns it together with a
	// signed identity token. A verification email is attempted; its failure
	// does not fail the registration.
	Register(ctx context.Context, params RegisterParams) (*model.User, string, error)

	// Login authenticates by email and password. It succeeds regardless of
	// verification state; callers decide how to phrase the response.
	Login(ctx context.Context, params LoginParams) (*model.User, string, error)

	// VerifyEmail consumes a verification token and marks the account verified.
	VerifyEmail(ctx context.Context, token string) (*model.User, error)

	// ResendVerification replaces the verification token and sends a new
	// email. Unlike Register, a delivery failure is surfaced to the caller.
	ResendVerification(ctx context.Context, email string) error

	// GetUser returns the account for the given id.
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	ErrEmailTaken               = errors.New("user already exists")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
	ErrAlreadyVerified          = errors.New("email is already verified")
	ErrUserNotFound             = errors.New("user not found")
	ErrEmailDelivery            = errors.New("email delivery failed")
)

type authUsecase struct {
	userRepo    repository.UserRepository
	jwtAuth     auth.JWTAuthenticator
	mailer      Mailer
	frontendURL string
	logger      *zerolog.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	mailer Mailer,
	frontendURL string,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		jwtAuth:     jwtAuth,
		mailer:      mailer,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, string, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, "", err
	}

	verificationToken, err := newSecretToken()
	if err != nil {
		return nil, "", err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:              strings.TrimSpace(params.Name),
		Email:             normalizeEmail(params.Email),
		PasswordHash:      passwordHash,
		IsVerified:        false,
		VerificationToken: &verificationToken,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrEmailTaken
		}

		return nil, "", err
	}

	// The user can request a resend, so a failed delivery here must not undo
	// an otherwise successful registration.
	if err := u.sendVerificationEmail(user, verificationToken); err != nil {
		u.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to send verification email")
	}

	token, err := u.jwtAuth.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.jwtAuth.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	user, err := u.userRepo.GetUserByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidVerificationToken
		}

		return nil, err
	}

	return u.userRepo.MarkVerified(ctx, user.ID.Hex())
}

func (u *authUsecase) ResendVerification(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	// A new token invalidates any previously issued one.
	verificationToken, err := newSecretToken()
	if err != nil {
		return err
	}

	if err := u.userRepo.SetVerificationToken(ctx, user.ID.Hex(), verificationToken); err != nil {
		return err
	}

	if err := u.sendVerificationEmail(user, verificationToken); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	return nil
}

func (u *authUsecase) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) sendVerificationEmail(user *model.User, token string) error {
	verificationURL := fmt.Sprintf("%s/verify-email/%s", u.frontendURL, token)

	return u.mailer.SendHTML(
		[]string{user.Email},
		"Verify Your Email - Taskboard",
		verificationEmailHTML(user.Name, verificationURL),
	)
}

// normalizeEmail lowercases and trims an email so lookups and the unique
// index always see the same key.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
