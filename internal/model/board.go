package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultBoardColor is applied when a board is created without a color.
const DefaultBoardColor = "#3B82F6"

// Board represents a collection of tasks belonging to exactly one user.
type Board struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title"         json:"title"`
	Description string        `bson:"description"   json:"description"`
	Color       string        `bson:"color"         json:"color"`
	OwnerID     bson.ObjectID `bson:"user_id"       json:"userId"`
	IsArchived  bool          `bson:"is_archived"   json:"isArchived"`
	CreatedAt   time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updated_at"    json:"updatedAt"`
}
