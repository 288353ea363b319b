package api

// Request DTOs

type CreateBoardRequest struct {
	Title string `json:"title" validate:"required"`
}
