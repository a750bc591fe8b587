package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. The password hash and the one-shot
// credential tokens never leave the backend: they are excluded from JSON
// marshaling so every user payload is sanitized by construction.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"          json:"id"`
	Name         string        `bson:"name"                   json:"name"`
	Email        string        `bson:"email"                  json:"email"`
	PasswordHash string        `bson:"password_hash"          json:"-"`
	IsVerified   bool          `bson:"is_verified"            json:"isVerified"`

	// VerificationToken is present only while the account is unverified and
	// the token unconsumed.
	VerificationToken *string `bson:"verification_token" json:"-"`

	// ResetToken and ResetTokenExpiry are present only during an active
	// password-reset window.
	ResetToken       *string    `bson:"reset_token"            json:"-"`
	ResetTokenExpiry *time.Time `bson:"reset_token_expires_at" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
