package payload

type CreateBoardRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Color       string `json:"color"       validate:"omitempty,len=7,hexcolor"`
}

type UpdateBoardRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color"       validate:"omitempty,len=7,hexcolor"`
	IsArchived  *bool   `json:"isArchived"`
}

type BoardResponse struct {
	Message string `json:"message"`
	Board   any    `json:"board"`
}
