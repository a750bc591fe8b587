package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,strongpassword"`
}

func TestValidator_Struct(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	t.Run("valid payload", func(t *testing.T) {
		err := v.Struct(registerPayload{
			Name:     "Alice",
			Email:    "alice@x.com",
			Password: "Aa1!aaaa",
		})
		assert.NoError(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		err := v.Struct(registerPayload{
			Name:     "Alice",
			Email:    "not-an-email",
			Password: "Aa1!aaaa",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email")
	})

	t.Run("missing name", func(t *testing.T) {
		err := v.Struct(registerPayload{
			Email:    "alice@x.com",
			Password: "Aa1!aaaa",
		})
		assert.Error(t, err)
	})
}

func TestValidator_StrongPassword(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"meets policy", "Aa1!aaaa", true},
		{"long mixed", "Sup3r$ecretPass", true},
		{"too short", "Aa1!a", false},
		{"no uppercase", "aa1!aaaa", false},
		{"no lowercase", "AA1!AAAA", false},
		{"no digit", "Aa!!aaaa", false},
		{"no special", "Aa1aaaaa", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(registerPayload{
				Name:     "Alice",
				Email:    "alice@x.com",
				Password: tc.password,
			})
			if tc.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "Password")
			}
		})
	}
}
