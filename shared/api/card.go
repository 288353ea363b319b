package api

// Request DTOs

type CreateCardRequest struct {
	Title string `json:"title" validate:"required"`
	Color string `json:"color,omitempty" validate:"omitempty,csscolor"`
}

type UpdateCardColorRequest struct {
	Color string `json:"color" validate:"required,csscolor"`
}
