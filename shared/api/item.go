package api

import "github.com/taskboard-dev/taskboard/shared/domain"

// Request DTOs

type CreateItemRequest struct {
	Title    string `json:"title" validate:"required"`
	Priority string `json:"priority,omitempty"`
}

// both fields optional, the service rejects a body carrying neither
type UpdateItemRequest struct {
	Completed *bool            `json:"completed,omitempty"`
	Priority  *domain.Priority `json:"priority,omitempty"`
}

type MoveItemRequest struct {
	TargetCardId string `json:"targetCardId"`
}

// Response DTOs

// ItemListResponse wraps a page of items
type ItemListResponse struct {
	Success bool          `json:"success"`
	Data    []domain.Item `json:"data"`
}
