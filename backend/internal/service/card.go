package service

import (
	"context"

	"github.com/taskboard-dev/taskboard/shared/domain"
)

type CardService interface {
	Create(ctx context.Context, boardId domain.BoardId, title string, color domain.Color) (*domain.Card, error)
	UpdateColor(ctx context.Context, id domain.CardId, color domain.Color) (*domain.Card, error)
	Delete(ctx context.Context, id domain.CardId) error
}

type Card struct {
	storage   CardStorage
	validator TitleValidator
}

type CardStorage interface {
	CreateCard(ctx context.Context, data domain.CardCreationData) (*domain.Card, error)
	UpdateCardColor(ctx context.Context, id domain.CardId, color domain.Color) (*domain.Card, error)
	DeleteCard(ctx context.Context, id domain.CardId) error
}

func NewCard(storage CardStorage, validator TitleValidator) CardService {
	return &Card{storage, validator}
}

// Create does not look the board up first; an unknown board fails on the foreign key.
func (c *Card) Create(ctx context.Context, boardId domain.BoardId, title string, color domain.Color) (*domain.Card, error) {
	title, err := c.validator.Title(title)
	if err != nil {
		return nil, err
	}
	if color == "" {
		color = domain.DefaultCardColor
	}
	return c.storage.CreateCard(ctx, domain.CardCreationData{BoardId: boardId, Title: title, Color: color})
}

func (c *Card) UpdateColor(ctx context.Context, id domain.CardId, color domain.Color) (*domain.Card, error) {
	return c.storage.UpdateCardColor(ctx, id, color)
}

func (c *Card) Delete(ctx context.Context, id domain.CardId) error {
	return c.storage.DeleteCard(ctx, id)
}
