package payload

import "time"

type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"required,max=1000"`
	BoardID     string     `json:"boardId"     validate:"required"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	BoardID     *string    `json:"boardId"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

type TaskResponse struct {
	Message string `json:"message"`
	Task    any    `json:"task"`
}
