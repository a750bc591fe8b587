package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	jwtAuth := NewJWTAuthenticator("test-secret", time.Hour)

	token, err := jwtAuth.GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtAuth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestJWTAuthenticator_ExpiredToken(t *testing.T) {
	jwtAuth := NewJWTAuthenticator("test-secret", -time.Minute)

	token, err := jwtAuth.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = jwtAuth.ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTAuthenticator_WrongSecret(t *testing.T) {
	issuer := NewJWTAuthenticator("secret-a", time.Hour)
	verifier := NewJWTAuthenticator("secret-b", time.Hour)

	token, err := issuer.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTAuthenticator_MalformedToken(t *testing.T) {
	jwtAuth := NewJWTAuthenticator("test-secret", time.Hour)

	_, err := jwtAuth.ValidateToken("not-a-token")
	require.Error(t, err)
}
