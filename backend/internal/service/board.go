package service

import (
	"context"

	"github.com/taskboard-dev/taskboard/shared/domain"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, title string) (*domain.Board, error)
	GetAll(ctx context.Context) ([]domain.Board, error)
	Delete(ctx context.Context, id domain.BoardId) error
}

type Board struct {
	storage   BoardStorage
	validator TitleValidator
}

type BoardStorage interface {
	CreateBoard(ctx context.Context, data domain.BoardCreationData) (*domain.Board, error)
	GetBoards(ctx context.Context) ([]domain.Board, error)
	DeleteBoard(ctx context.Context, id domain.BoardId) error
}

type TitleValidator interface {
	Title(title string) (string, error)
}

func NewBoard(storage BoardStorage, validator TitleValidator) BoardService {
	return &Board{storage, validator}
}

func (b *Board) Create(ctx context.Context, title string) (*domain.Board, error) {
	title, err := b.validator.Title(title)
	if err != nil {
		return nil, err
	}
	return b.storage.CreateBoard(ctx, domain.BoardCreationData{Title: title})
}

func (b *Board) GetAll(ctx context.Context) ([]domain.Board, error) {
	return b.storage.GetBoards(ctx)
}

func (b *Board) Delete(ctx context.Context, id domain.BoardId) error {
	return b.storage.DeleteBoard(ctx, id)
}
