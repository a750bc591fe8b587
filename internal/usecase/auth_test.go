package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/taskboardhq/taskboard-api/internal/model"
	"github.com/taskboardhq/taskboard-api/shared/auth"
	"github.com/taskboardhq/taskboard-api/shared/security"
)

const testFrontendURL = "http://localhost:5173"

func newTestAuthUsecase(userRepo *mockUserRepository, mail *mockMailer) (AuthUsecase, auth.JWTAuthenticator) {
	logger := zerolog.Nop()
	jwtAuth := auth.NewJWTAuthenticator("test-secret", time.Hour)

	return NewAuthUsecase(userRepo, jwtAuth, mail, testFrontendURL, &logger), jwtAuth
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("creates unverified user with hashed password", func(t *testing.T) {
		var created *model.User
		userRepo := &mockUserRepository{
			CreateUserFunc: func(_ context.Context, user *model.User) (*model.User, error) {
				user.ID = bson.NewObjectID()
				created = user
				return user, nil
			},
		}
		mail := &mockMailer{}
		uc, jwtAuth := newTestAuthUsecase(userRepo, mail)

		user, token, err := uc.Register(context.Background(), RegisterParams{
			Name:     "  Alice  ",
			Email:    " Alice@Example.COM ",
			Password: "Aa1!aaaa",
		})
		require.NoError(t, err)

		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.False(t, user.IsVerified)

		require.NotNil(t, created)
		assert.NotEqual(t, "Aa1!aaaa", created.PasswordHash)
		ok, err := security.VerifyPassword("Aa1!aaaa", created.PasswordHash)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NotNil(t, created.VerificationToken)
		assert.Len(t, *created.VerificationToken, 64)

		claims, err := jwtAuth.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.Hex(), claims.UserID)
	})

	t.Run("sends verification email with token link", func(t *testing.T) {
		var issuedToken string
		userRepo := &mockUserRepository{
			CreateUserFunc: func(_ context.Context, user *model.User) (*model.User, error) {
				user.ID = bson.NewObjectID()
				issuedToken = *user.VerificationToken
				return user, nil
			},
		}
		mail := &mockMailer{}
		uc, _ := newTestAuthUsecase(userRepo, mail)

		_, _, err := uc.Register(context.Background(), RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "Aa1!aaaa",
		})
		require.NoError(t, err)

		require.Equal(t, 1, mail.sentCount())
		email := mail.lastSent()
		assert.Equal(t, []string{"alice@example.com"}, email.to)
		assert.Contains(t, email.htmlBody, testFrontendURL+"/verify-email/"+issuedToken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := &mockUserRepository{
			CreateUserFunc: func(_ context.Context, _ *model.User) (*model.User, error) {
				return nil, mongo.WriteException{
					WriteErrors: []mongo.WriteError{{Code: 11000}},
				}
			},
		}
		uc, _ := newTestAuthUsecase(userRepo, &mockMailer{})

		_, _, err := uc.Register(context.Background(), RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "Aa1!aaaa",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("email delivery failure does not fail registration", func(t *testing.T) {
		userRepo := &mockUserRepository{
			CreateUserFunc: func(_ context.Context, user *model.User) (*model.User, error) {
				user.ID = bson.NewObjectID()
				return user, nil
			},
		}
		mail := &mockMailer{failWith: errors.New("smtp down")}
		uc, _ := newTestAuthUsecase(userRepo, mail)

		user, token, err := uc.Register(context.Background(), RegisterParams{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "Aa1!aaaa",
		})
		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, token)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	hash, err := security.HashPassword("Aa1!aaaa")
	require.NoError(t, err)

	stored := &model.User{
		ID:           bson.NewObjectID(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}

	userRepo := &mockUserRepository{
		GetUserByEmailFunc: func(_ context.Context, email string) (*model.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, mongo.ErrNoDocuments
		},
	}
	uc, jwtAuth := newTestAuthUsecase(userRepo, &mockMailer{})

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := uc.Login(context.Background(), LoginParams{
			Email:    "Alice@Example.com",
			Password: "Aa1!aaaa",
		})
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)

		claims, err := jwtAuth.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, stored.ID.Hex(), claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := uc.Login(context.Background(), LoginParams{
			Email:    "alice@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := uc.Login(context.Background(), LoginParams{
			Email:    "nobody@example.com",
			Password: "Aa1!aaaa",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthUsecase_VerifyEmail(t *testing.T) {
	t.Run("consumes token and marks verified", func(t *testing.T) {
		verificationToken := "tok-123"
		stored := &model.User{
			ID:                bson.NewObjectID(),
			Email:             "alice@example.com",
			VerificationToken: &verificationToken,
		}

		var markedID string
		userRepo := &mockUserRepository{
			GetUserByVerificationTokenFunc: func(_ context.Context, token string) (*model.User, error) {
				if token == verificationToken {
					return stored, nil
				}
				return nil, mongo.ErrNoDocuments
			},
			MarkVerifiedFunc: func(_ context.Context, id string) (*model.User, error) {
				markedID = id
				verified := *stored
				verified.IsVerified = true
				verified.VerificationToken = nil
				return &verified, nil
			},
		}
		uc, _ := newTestAuthUsecase(userRepo, &mockMailer{})

		user, err := uc.VerifyEmail(context.Background(), verificationToken)
		require.NoError(t, err)
		assert.Equal(t, stored.ID.Hex(), markedID)
		assert.True(t, user.IsVerified)
		assert.Nil(t, user.VerificationToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		uc, _ := newTestAuthUsecase(&mockUserRepository{}, &mockMailer{})

		_, err := uc.VerifyEmail(context.Background(), "no-such-token")
		assert.ErrorIs(t, err, ErrInvalidVerificationToken)
	})
}

func TestAuthUsecase_ResendVerification(t *testing.T) {
	unverified := &model.User{
		ID:    bson.NewObjectID(),
		Name:  "Alice",
		Email: "alice@example.com",
	}

	t.Run("replaces token and resends", func(t *testing.T) {
		var newToken string
		userRepo := &mockUserRepository{
			GetUserByEmailFunc: func(_ context.Context, _ string) (*model.User, error) {
				return unverified, nil
			},
			SetVerificationTokenFunc: func(_ context.Context, id, token string) error {
				assert.Equal(t, unverified.ID.Hex(), id)
				newToken = token
				return nil
			},
		}
		mail := &mockMailer{}
		uc, _ := newTestAuthUsecase(userRepo, mail)

		err := uc.ResendVerification(context.Background(), "alice@example.com")
		require.NoError(t, err)

		require.NotEmpty(t, newToken)
		require.Equal(t, 1, mail.sentCount())
		assert.Contains(t, mail.lastSent().htmlBody, newToken)
	})

	t.Run("unknown email", func(t *testing.T) {
		uc, _ := newTestAuthUsecase(&mockUserRepository{}, &mockMailer{})

		err := uc.ResendVerification(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("already verified", func(t *testing.T) {
		userRepo := &mockUserRepository{
			GetUserByEmailFunc: func(_ context.Context, _ string) (*model.User, error) {
				return &model.User{ID: bson.NewObjectID(), IsVerified: true}, nil
			},
		}
		uc, _ := newTestAuthUsecase(userRepo, &mockMailer{})

		err := uc.ResendVerification(context.Background(), "alice@example.com")
		assert.ErrorIs(t, err, ErrAlreadyVerified)
	})

	t.Run("delivery failure is surfaced", func(t *testing.T) {
		userRepo := &mockUserRepository{
			GetUserByEmailFunc: func(_ context.Context, _ string) (*model.User, error) {
				return unverified, nil
			},
		}
		uc, _ := newTestAuthUsecase(userRepo, &mockMailer{failWith: errors.New("smtp down")})

		err := uc.ResendVerification(context.Background(), "alice@example.com")
		assert.ErrorIs(t, err, ErrEmailDelivery)
	})
}

func TestAuthUsecase_GetUser(t *testing.T) {
	stored := &model.User{ID: bson.NewObjectID(), Name: "Alice"}

	userRepo := &mockUserRepository{
		GetUserFunc: func(_ context.Context, id string) (*model.User, error) {
			if id == stored.ID.Hex() {
				return stored, nil
			}
			return nil, mongo.ErrNoDocuments
		},
	}
	uc, _ := newTestAuthUsecase(userRepo, &mockMailer{})

	user, err := uc.GetUser(context.Background(), stored.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, stored, user)

	_, err = uc.GetUser(context.Background(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
