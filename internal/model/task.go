package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Priority levels a task can carry.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task represents a single unit of work. A task belongs to exactly one board
// at a time and must share the board's owner.
type Task struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title"         json:"title"`
	Description string        `bson:"description"   json:"description"`
	OwnerID     bson.ObjectID `bson:"user_id"       json:"userId"`
	BoardID     bson.ObjectID `bson:"board_id"      json:"boardId"`
	Completed   bool          `bson:"completed"     json:"completed"`
	Priority    string        `bson:"priority"      json:"priority"`
	DueDate     *time.Time    `bson:"due_date"      json:"dueDate"`
	CreatedAt   time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updated_at"    json:"updatedAt"`
}
